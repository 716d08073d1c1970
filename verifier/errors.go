package verifier

import "fmt"

// ParseFailedError wraps a structural parse failure from envelope.Parse.
type ParseFailedError struct{ Cause error }

func (e *ParseFailedError) Error() string { return "parse failed: " + e.Cause.Error() }
func (e *ParseFailedError) Unwrap() error { return e.Cause }

// RootNotTrustedError reports that the chain's root certificate is not
// among the caller's trusted root keys.
type RootNotTrustedError struct{}

func (e *RootNotTrustedError) Error() string { return "root certificate is not trusted" }

// CertRevokedError reports that the certificate at Index has been revoked.
type CertRevokedError struct{ Index int }

func (e *CertRevokedError) Error() string {
	return fmt.Sprintf("certificate at index %d has been revoked", e.Index)
}

// CreatorIDMismatchError reports that the envelope header's creator_id
// does not match the chain leaf's subject_id.
type CreatorIDMismatchError struct {
	HeaderCreatorID string
	CertSubjectID   string
}

func (e *CreatorIDMismatchError) Error() string {
	return fmt.Sprintf("creator id mismatch: header says %q, certificate says %q", e.HeaderCreatorID, e.CertSubjectID)
}

// FileSignatureInvalidError reports that the envelope's trailing signature
// does not verify against the chain leaf's public key.
type FileSignatureInvalidError struct{}

func (e *FileSignatureInvalidError) Error() string { return "envelope signature is invalid" }
