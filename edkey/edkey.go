// Package edkey wraps Ed25519 key generation and signing for Aletheia
// identities and certificate authorities. Every signable byte sequence in
// the system — a certificate's signable form, an envelope's signature
// input — is signed and verified here, never re-implemented at the call
// site.
package edkey

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
)

// KeyPair holds an Ed25519 identity: a 32-byte public key and its
// corresponding private key (which embeds the 32-byte seed).
type KeyPair struct {
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// Generate creates a new random Ed25519 key pair.
func Generate() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, err
	}
	return KeyPair{Public: pub, Private: priv}, nil
}

// FromSeed reconstructs a key pair from a raw 32-byte Ed25519 seed, as
// produced by ed25519.PrivateKey.Seed or by mnemonic decoding.
func FromSeed(seed []byte) (KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return KeyPair{}, errors.New("edkey: seed must be 32 bytes")
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return KeyPair{Public: pub, Private: priv}, nil
}

// Seed returns the 32-byte seed this key pair was derived from.
func (k KeyPair) Seed() []byte {
	return k.Private.Seed()
}

// Sign signs message directly (Ed25519 hashes internally; callers must
// never pre-hash the message themselves).
func (k KeyPair) Sign(message []byte) []byte {
	return ed25519.Sign(k.Private, message)
}

// Verify checks a signature over message against a raw 32-byte public key.
// Unlike ed25519.Verify, it never panics on malformed input: a wrong-length
// key or signature is simply treated as a failed verification.
func Verify(publicKey, message, signature []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize {
		return false
	}
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(publicKey, message, signature)
}
