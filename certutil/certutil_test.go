package certutil

import (
	"testing"

	"github.com/aurel3d/aletheia/edkey"
	"github.com/aurel3d/aletheia/envelope"
)

func mustSign(t *testing.T, kp edkey.KeyPair, cert envelope.Certificate) envelope.Certificate {
	t.Helper()
	signable, err := SignableBytes(cert)
	if err != nil {
		t.Fatalf("SignableBytes: %v", err)
	}
	cert.Signature = kp.Sign(signable)
	return cert
}

func buildValidChain(t *testing.T) []envelope.Certificate {
	t.Helper()
	rootKP, err := edkey.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	leafKP, err := edkey.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	rootSerial, _ := GenerateSerial()
	root := envelope.Certificate{
		Version:     1,
		Serial:      rootSerial,
		SubjectID:   "did:example:root",
		SubjectName: "Root CA",
		PublicKey:   rootKP.Public,
		IssuerID:    "did:example:root",
		IssuedAt:    1700000000,
		IsCA:        true,
	}
	root = mustSign(t, rootKP, root)

	leafSerial, _ := GenerateSerial()
	leaf := envelope.Certificate{
		Version:     1,
		Serial:      leafSerial,
		SubjectID:   "did:example:creator",
		SubjectName: "Creator",
		PublicKey:   leafKP.Public,
		IssuerID:    "did:example:root",
		IssuedAt:    1700000001,
		IsCA:        false,
	}
	leaf = mustSign(t, rootKP, leaf)

	return []envelope.Certificate{leaf, root}
}

func TestValidateStructureAccepts(t *testing.T) {
	chain := buildValidChain(t)
	if err := ValidateStructure(chain); err != nil {
		t.Fatalf("ValidateStructure: %v", err)
	}
}

func TestValidateStructureRejectsEmpty(t *testing.T) {
	if err := ValidateStructure(nil); err == nil {
		t.Errorf("ValidateStructure(nil) succeeded")
	} else if _, ok := err.(*EmptyChainError); !ok {
		t.Errorf("got %T, want *EmptyChainError", err)
	}
}

func TestValidateStructureRejectsBrokenIssuer(t *testing.T) {
	chain := buildValidChain(t)
	chain[0].IssuerID = "did:example:someone-else"
	err := ValidateStructure(chain)
	if _, ok := err.(*IssuerChainBrokenError); !ok {
		t.Errorf("got %T, want *IssuerChainBrokenError", err)
	}
}

func TestValidateStructureRejectsNonCaIssuer(t *testing.T) {
	chain := buildValidChain(t)
	chain[1].IsCA = false
	err := ValidateStructure(chain)
	if _, ok := err.(*IntermediateNotCaError); !ok {
		t.Errorf("got %T, want *IntermediateNotCaError", err)
	}
}

func TestValidateStructureRejectsBadSignature(t *testing.T) {
	chain := buildValidChain(t)
	chain[0].Signature[0] ^= 0xff
	err := ValidateStructure(chain)
	if _, ok := err.(*CertSignatureInvalidError); !ok {
		t.Errorf("got %T, want *CertSignatureInvalidError", err)
	}
}

func TestValidateStructureRejectsNonSelfSignedRoot(t *testing.T) {
	chain := buildValidChain(t)
	chain[1].IssuerID = "did:example:not-root"
	err := ValidateStructure(chain)
	if _, ok := err.(*RootNotSelfSignedError); !ok {
		t.Errorf("got %T, want *RootNotSelfSignedError", err)
	}
}

func TestValidateStructureRejectsCreatorMarkedCa(t *testing.T) {
	chain := buildValidChain(t)
	chain[0].IsCA = true
	err := ValidateStructure(chain)
	if _, ok := err.(*CreatorIsCaError); !ok {
		t.Errorf("got %T, want *CreatorIsCaError", err)
	}
}

func TestValidateStructureRejectsLengthOneSelfSignedChain(t *testing.T) {
	rootKP, err := edkey.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	rootSerial, _ := GenerateSerial()
	root := envelope.Certificate{
		Version:     1,
		Serial:      rootSerial,
		SubjectID:   "did:example:root",
		SubjectName: "Root CA",
		PublicKey:   rootKP.Public,
		IssuerID:    "did:example:root",
		IssuedAt:    1700000000,
		IsCA:        true,
	}
	root = mustSign(t, rootKP, root)

	err = ValidateStructure([]envelope.Certificate{root})
	if _, ok := err.(*CreatorIsCaError); !ok {
		t.Errorf("got %T, want *CreatorIsCaError", err)
	}
}

func TestLeafAndRoot(t *testing.T) {
	chain := buildValidChain(t)
	if Leaf(chain).SubjectID != "did:example:creator" {
		t.Errorf("Leaf() = %+v", Leaf(chain))
	}
	if Root(chain).SubjectID != "did:example:root" {
		t.Errorf("Root() = %+v", Root(chain))
	}
}
