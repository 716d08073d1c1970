package certutil

import "fmt"

// EmptyChainError reports a zero-length certificate chain.
type EmptyChainError struct{}

func (e *EmptyChainError) Error() string { return "certificate chain is empty" }

// CreatorIsCaError reports that the chain's creator (index 0) is marked
// as a CA, which the chain invariant forbids.
type CreatorIsCaError struct{}

func (e *CreatorIsCaError) Error() string { return "creator certificate is marked as a CA" }

// IntermediateNotCaError reports that the certificate at Index, which
// issued another certificate in the chain, is not marked as a CA.
type IntermediateNotCaError struct{ Index int }

func (e *IntermediateNotCaError) Error() string {
	return fmt.Sprintf("certificate at index %d issued a certificate but is not a CA", e.Index)
}

// IssuerChainBrokenError reports that the certificate at Index names an
// issuer that does not match the subject of the next certificate.
type IssuerChainBrokenError struct{ Index int }

func (e *IssuerChainBrokenError) Error() string {
	return fmt.Sprintf("certificate at index %d has an issuer_id not matching the next certificate's subject_id", e.Index)
}

// CertSignatureInvalidError reports that the certificate at Index does not
// verify against its issuer's public key.
type CertSignatureInvalidError struct{ Index int }

func (e *CertSignatureInvalidError) Error() string {
	return fmt.Sprintf("certificate at index %d has an invalid signature", e.Index)
}

// RootNotSelfSignedError reports that the last certificate in the chain is
// not self-signed (issuer_id != subject_id).
type RootNotSelfSignedError struct{}

func (e *RootNotSelfSignedError) Error() string {
	return "root certificate is not self-signed"
}
