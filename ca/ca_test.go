package ca

import (
	"testing"
	"time"

	"github.com/aurel3d/aletheia/certutil"
	"github.com/aurel3d/aletheia/edkey"
	"github.com/aurel3d/aletheia/envelope"
)

func TestNewRootIsSelfSignedAndValid(t *testing.T) {
	key, err := edkey.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	root, err := NewRootAt(key, "did:example:root", "Root CA", time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("NewRootAt: %v", err)
	}
	if root.Certificate.IssuerID != root.Certificate.SubjectID {
		t.Errorf("root is not self-signed: issuer=%q subject=%q", root.Certificate.IssuerID, root.Certificate.SubjectID)
	}
	// A lone root is not a valid chain on its own: index 0 of any chain
	// must not be a CA, and a root is always a CA.
	err = certutil.ValidateStructure([]envelope.Certificate{root.Certificate})
	if _, ok := err.(*certutil.CreatorIsCaError); !ok {
		t.Fatalf("ValidateStructure: got %T, want *certutil.CreatorIsCaError", err)
	}
}

func TestIssueProducesVerifiableChain(t *testing.T) {
	rootKey, _ := edkey.Generate()
	root, err := NewRootAt(rootKey, "did:example:root", "Root CA", time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("NewRootAt: %v", err)
	}

	leafKey, _ := edkey.Generate()
	leafCert, err := root.IssueAt("did:example:creator", "Creator", leafKey.Public, false, time.Unix(1700000001, 0))
	if err != nil {
		t.Fatalf("IssueAt: %v", err)
	}

	chain := []envelope.Certificate{leafCert, root.Certificate}
	if err := certutil.ValidateStructure(chain); err != nil {
		t.Fatalf("ValidateStructure: %v", err)
	}
}

func TestIssueFailsWhenNotACa(t *testing.T) {
	rootKey, _ := edkey.Generate()
	root, err := NewRootAt(rootKey, "did:example:root", "Root CA", time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("NewRootAt: %v", err)
	}

	leafKey, _ := edkey.Generate()
	leafCert, err := root.IssueAt("did:example:creator", "Creator", leafKey.Public, false, time.Unix(1700000001, 0))
	if err != nil {
		t.Fatalf("IssueAt: %v", err)
	}
	notACA := FromKeyAndCertificate(leafKey, leafCert)

	grandchildKey, _ := edkey.Generate()
	_, err = notACA.Issue("did:example:grandchild", "Grandchild", grandchildKey.Public, false)
	if _, ok := err.(*NotACaError); !ok {
		t.Errorf("got %T, want *NotACaError", err)
	}
}
