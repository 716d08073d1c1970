// Package certutil holds certificate-chain logic shared by ca, signer, and
// verifier: the signable byte form of a certificate, serial generation,
// and the structural walk that checks a chain is internally consistent
// (each certificate properly issued by the next, ending in a self-signed
// root). It deliberately stops short of deciding whether that root is
// *trusted* — that policy question belongs to verifier.
package certutil

import (
	"crypto/rand"

	"github.com/aurel3d/aletheia/edkey"
	"github.com/aurel3d/aletheia/envelope"
)

// SerialSize is the fixed width of a generated certificate serial number.
const SerialSize = 16

// GenerateSerial returns a fresh random serial number.
func GenerateSerial() ([]byte, error) {
	serial := make([]byte, SerialSize)
	if _, err := rand.Read(serial); err != nil {
		return nil, err
	}
	return serial, nil
}

// SignableBytes returns the exact byte sequence an issuer signs (and a
// verifier re-derives) for cert: the canonical certificate record with its
// own signature field omitted.
func SignableBytes(cert envelope.Certificate) ([]byte, error) {
	return envelope.EncodeCertRecord(cert, false)
}

// ChainLink describes one step of a broken chain, for error reporting.
type ChainLink struct {
	Index int
	Cert  envelope.Certificate
}

// ValidateStructure checks chain against every invariant but trust:
//
//  1. chain is non-empty; the creator (index 0) is not a CA; every
//     certificate from index 1 onward is a CA.
//  2. for each non-root certificate, its issuer_id matches the next
//     certificate's subject_id, and its signature verifies under that
//     next certificate's public key.
//  3. the root (last element) is self-signed (issuer_id == subject_id)
//     and its signature verifies under its own public key.
//
// Checks run in this order and stop at the first failure, matching the
// order a verifier must use so that tampering always surfaces the same
// error regardless of what else is wrong with the chain. It does not
// check whether the root is a member of any trust store — callers that
// care about trust anchors must do that separately.
func ValidateStructure(chain []envelope.Certificate) error {
	if len(chain) == 0 {
		return &EmptyChainError{}
	}
	if chain[0].IsCA {
		return &CreatorIsCaError{}
	}
	for i := 1; i < len(chain); i++ {
		if !chain[i].IsCA {
			return &IntermediateNotCaError{Index: i}
		}
	}

	for i := 0; i < len(chain)-1; i++ {
		cert, issuer := chain[i], chain[i+1]
		if cert.IssuerID != issuer.SubjectID {
			return &IssuerChainBrokenError{Index: i}
		}
		signable, err := SignableBytes(cert)
		if err != nil {
			return err
		}
		if !edkey.Verify(issuer.PublicKey, signable, cert.Signature) {
			return &CertSignatureInvalidError{Index: i}
		}
	}

	root := chain[len(chain)-1]
	if root.IssuerID != root.SubjectID {
		return &RootNotSelfSignedError{}
	}
	signable, err := SignableBytes(root)
	if err != nil {
		return err
	}
	if !edkey.Verify(root.PublicKey, signable, root.Signature) {
		return &CertSignatureInvalidError{Index: len(chain) - 1}
	}

	return nil
}

// Leaf returns the first certificate in the chain: the one whose subject
// is the entity that produced the signature the chain accompanies.
func Leaf(chain []envelope.Certificate) envelope.Certificate {
	return chain[0]
}

// Root returns the last certificate in the chain: the self-signed anchor.
func Root(chain []envelope.Certificate) envelope.Certificate {
	return chain[len(chain)-1]
}
