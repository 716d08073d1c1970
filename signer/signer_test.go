package signer

import (
	"bytes"
	"testing"
	"time"

	"github.com/aurel3d/aletheia/ca"
	"github.com/aurel3d/aletheia/edkey"
	"github.com/aurel3d/aletheia/envelope"
)

func buildChain(t *testing.T) (edkey.KeyPair, []envelope.Certificate) {
	t.Helper()
	rootKey, err := edkey.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	root, err := ca.NewRootAt(rootKey, "did:example:root", "Root CA", time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("NewRootAt: %v", err)
	}
	leafKey, err := edkey.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	leafCert, err := root.IssueAt("did:example:creator", "Creator", leafKey.Public, false, time.Unix(1700000001, 0))
	if err != nil {
		t.Fatalf("IssueAt: %v", err)
	}
	return leafKey, []envelope.Certificate{leafCert, root.Certificate}
}

func TestNewRejectsMismatchedKey(t *testing.T) {
	_, chain := buildChain(t)
	otherKey, _ := edkey.Generate()
	if _, err := New(otherKey, chain); err == nil {
		t.Errorf("New accepted a key that doesn't match the chain leaf")
	}
}

func TestSignProducesParsableEnvelope(t *testing.T) {
	leafKey, chain := buildChain(t)
	s, err := New(leafKey, chain)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := s.SignAt(envelope.Header{ContentType: "text/plain"}, []byte("hello"), Options{}, time.Unix(1700000002, 0))
	if err != nil {
		t.Fatalf("SignAt: %v", err)
	}
	parsed, err := envelope.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Header.CreatorID != "did:example:creator" {
		t.Errorf("CreatorID = %q", parsed.Header.CreatorID)
	}
	if !bytes.Equal(parsed.Payload, []byte("hello")) {
		t.Errorf("Payload = %q", parsed.Payload)
	}
	if parsed.Compressed() {
		t.Errorf("envelope marked compressed without Options.Compress")
	}
}

func TestSignWithCompression(t *testing.T) {
	leafKey, chain := buildChain(t)
	s, err := New(leafKey, chain)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	payload := bytes.Repeat([]byte("aletheia-payload-"), 200)
	data, err := s.SignAt(envelope.Header{}, payload, Options{Compress: true}, time.Unix(1700000002, 0))
	if err != nil {
		t.Fatalf("SignAt: %v", err)
	}
	parsed, err := envelope.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !parsed.Compressed() {
		t.Errorf("envelope not marked compressed")
	}
	if bytes.Equal(parsed.Payload, payload) {
		t.Errorf("stored payload equals uncompressed payload; compression not applied")
	}
}
