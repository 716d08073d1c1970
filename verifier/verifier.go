// Package verifier checks whether an Aletheia envelope's contents are
// authentic: that its certificate chain is internally consistent, rooted
// in a trusted key, and that its signature covers exactly the bytes
// presented.
package verifier

import (
	"bytes"

	"github.com/aurel3d/aletheia/certutil"
	"github.com/aurel3d/aletheia/edkey"
	"github.com/aurel3d/aletheia/envelope"
)

// Result carries the facts a caller cares about once verification
// succeeds.
type Result struct {
	CreatorID   string
	CreatorName string
	SignedAt    int64
	ContentType string
	Description string
}

// options holds the optional inputs VerifyOption can set.
type options struct {
	revoked map[string]struct{}
}

// VerifyOption customizes a Verify call.
type VerifyOption func(*options)

// WithRevokedSerials rejects a chain containing any certificate whose
// serial (as a raw byte string) appears in serials. This is a purely
// verifier-side extension: revocation status is never encoded in the
// envelope or the certificate itself.
func WithRevokedSerials(serials [][]byte) VerifyOption {
	return func(o *options) {
		o.revoked = make(map[string]struct{}, len(serials))
		for _, s := range serials {
			o.revoked[string(s)] = struct{}{}
		}
	}
}

// Verify checks data as a complete Aletheia envelope against trustedRoots
// (the raw 32-byte Ed25519 public keys this caller trusts as chain
// anchors). It never returns a Result without every check below passing.
func Verify(data []byte, trustedRoots [][]byte, opts ...VerifyOption) (Result, error) {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	parsed, err := envelope.Parse(data)
	if err != nil {
		return Result{}, &ParseFailedError{Cause: err}
	}

	if err := certutil.ValidateStructure(parsed.Chain); err != nil {
		return Result{}, err
	}

	root := certutil.Root(parsed.Chain)
	if !isTrusted(root.PublicKey, trustedRoots) {
		return Result{}, &RootNotTrustedError{}
	}

	if cfg.revoked != nil {
		for i, cert := range parsed.Chain {
			if _, revoked := cfg.revoked[string(cert.Serial)]; revoked {
				return Result{}, &CertRevokedError{Index: i}
			}
		}
	}

	leaf := certutil.Leaf(parsed.Chain)
	if parsed.Header.CreatorID != leaf.SubjectID {
		return Result{}, &CreatorIDMismatchError{
			HeaderCreatorID: parsed.Header.CreatorID,
			CertSubjectID:   leaf.SubjectID,
		}
	}

	signatureInput := envelope.SignatureInput(parsed.Flags, parsed.HeaderBytes, parsed.Payload, parsed.ChainBytes)
	if !edkey.Verify(leaf.PublicKey, signatureInput, parsed.Signature[:]) {
		return Result{}, &FileSignatureInvalidError{}
	}

	return Result{
		CreatorID:   leaf.SubjectID,
		CreatorName: leaf.SubjectName,
		SignedAt:    parsed.Header.SignedAt,
		ContentType: parsed.Header.ContentType,
		Description: parsed.Header.Description,
	}, nil
}

func isTrusted(publicKey []byte, trustedRoots [][]byte) bool {
	for _, root := range trustedRoots {
		if bytes.Equal(publicKey, root) {
			return true
		}
	}
	return false
}
