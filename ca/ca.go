// Package ca implements a minimal certificate authority: a self-signed
// root and the ability to issue subordinate certificates under it.
package ca

import (
	"time"

	"github.com/aurel3d/aletheia/certutil"
	"github.com/aurel3d/aletheia/edkey"
	"github.com/aurel3d/aletheia/envelope"
)

// Authority holds a signing key together with the certificate that
// authorizes it to sign — either a self-signed root or a certificate this
// authority itself received from a parent CA.
type Authority struct {
	Key         edkey.KeyPair
	Certificate envelope.Certificate
}

// NewRoot creates a new self-signed root authority for subjectID.
func NewRoot(key edkey.KeyPair, subjectID, subjectName string) (Authority, error) {
	return NewRootAt(key, subjectID, subjectName, time.Now())
}

// NewRootAt is NewRoot with an injectable timestamp, for deterministic tests.
func NewRootAt(key edkey.KeyPair, subjectID, subjectName string, issuedAt time.Time) (Authority, error) {
	serial, err := certutil.GenerateSerial()
	if err != nil {
		return Authority{}, err
	}
	cert := envelope.Certificate{
		Version:     1,
		Serial:      serial,
		SubjectID:   subjectID,
		SubjectName: subjectName,
		PublicKey:   key.Public,
		IssuerID:    subjectID,
		IssuedAt:    issuedAt.Unix(),
		IsCA:        true,
	}
	signable, err := certutil.SignableBytes(cert)
	if err != nil {
		return Authority{}, err
	}
	cert.Signature = key.Sign(signable)
	return Authority{Key: key, Certificate: cert}, nil
}

// FromKeyAndCertificate wraps an existing signing key and the certificate
// that authorizes it, for an authority that is itself an intermediate
// (issued by some other CA rather than self-signed).
func FromKeyAndCertificate(key edkey.KeyPair, cert envelope.Certificate) Authority {
	return Authority{Key: key, Certificate: cert}
}

// Issue creates a new certificate for subjectID/subjectKey, signed by this
// authority. It fails with NotACaError if the authority's own certificate
// is not marked as a CA — the original reference implementation this
// system was distilled from omits this check, but Aletheia enforces it.
func (a Authority) Issue(subjectID, subjectName string, subjectKey []byte, isCA bool) (envelope.Certificate, error) {
	return a.IssueAt(subjectID, subjectName, subjectKey, isCA, time.Now())
}

// IssueAt is Issue with an injectable timestamp, for deterministic tests.
func (a Authority) IssueAt(subjectID, subjectName string, subjectKey []byte, isCA bool, issuedAt time.Time) (envelope.Certificate, error) {
	if !a.Certificate.IsCA {
		return envelope.Certificate{}, &NotACaError{IssuerID: a.Certificate.SubjectID}
	}
	serial, err := certutil.GenerateSerial()
	if err != nil {
		return envelope.Certificate{}, err
	}
	cert := envelope.Certificate{
		Version:     1,
		Serial:      serial,
		SubjectID:   subjectID,
		SubjectName: subjectName,
		PublicKey:   subjectKey,
		IssuerID:    a.Certificate.SubjectID,
		IssuedAt:    issuedAt.Unix(),
		IsCA:        isCA,
	}
	signable, err := certutil.SignableBytes(cert)
	if err != nil {
		return envelope.Certificate{}, err
	}
	cert.Signature = a.Key.Sign(signable)
	return cert, nil
}
