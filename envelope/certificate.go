package envelope

// Certificate is the envelope's canonical-map certificate record (spec §3).
//
// The wire order of fields is set by canonicalEncMode's key sorting, not by
// the declaration order below; the same sorting applies to the full record
// and to the signable (signature-omitted) form.
type Certificate struct {
	Version     uint8  `cbor:"version"`
	Serial      []byte `cbor:"serial"`
	SubjectID   string `cbor:"subject_id"`
	SubjectName string `cbor:"subject_name"`
	PublicKey   []byte `cbor:"public_key"`
	IssuerID    string `cbor:"issuer_id"`
	IssuedAt    int64  `cbor:"issued_at"`
	IsCA        bool   `cbor:"is_ca"`
	Signature   []byte `cbor:"signature"`
}

// unsignedCertificate mirrors Certificate but omits Signature; it is the
// wire shape signed by an issuer and verified against that issuer's key.
type unsignedCertificate struct {
	Version     uint8  `cbor:"version"`
	Serial      []byte `cbor:"serial"`
	SubjectID   string `cbor:"subject_id"`
	SubjectName string `cbor:"subject_name"`
	PublicKey   []byte `cbor:"public_key"`
	IssuerID    string `cbor:"issuer_id"`
	IssuedAt    int64  `cbor:"issued_at"`
	IsCA        bool   `cbor:"is_ca"`
}

// EncodeCertRecord canonically serializes cert. When includeSignature is
// false, the Signature field is omitted entirely from the encoding (not
// merely zeroed) — this is the exact byte sequence an issuer signs and a
// verifier re-derives to check that signature.
func EncodeCertRecord(cert Certificate, includeSignature bool) ([]byte, error) {
	if includeSignature {
		return canonicalEncMode.Marshal(cert)
	}
	return canonicalEncMode.Marshal(unsignedCertificate{
		Version:     cert.Version,
		Serial:      cert.Serial,
		SubjectID:   cert.SubjectID,
		SubjectName: cert.SubjectName,
		PublicKey:   cert.PublicKey,
		IssuerID:    cert.IssuerID,
		IssuedAt:    cert.IssuedAt,
		IsCA:        cert.IsCA,
	})
}

// DecodeCertRecord parses a single canonically-encoded certificate record.
// It is permissive of map key order and unknown fields. It requires a
// nonzero version, non-empty subject_id and issuer_id, a 32-byte public_key
// and a 64-byte signature; a missing serial, subject_name, issued_at or
// is_ca is not detected and decodes as the zero value.
func DecodeCertRecord(b []byte) (Certificate, error) {
	var cert Certificate
	if err := decMode.Unmarshal(b, &cert); err != nil {
		return Certificate{}, &CertDecodeError{Reason: err.Error()}
	}
	if err := validateCertShape(cert); err != nil {
		return Certificate{}, &CertDecodeError{Reason: err.Error()}
	}
	return cert, nil
}

func validateCertShape(cert Certificate) error {
	switch {
	case cert.Version == 0:
		return errString("missing required field version")
	case cert.SubjectID == "":
		return errString("missing required field subject_id")
	case cert.IssuerID == "":
		return errString("missing required field issuer_id")
	case len(cert.PublicKey) != 32:
		return errString("public_key must be 32 bytes")
	case len(cert.Signature) != 64:
		return errString("signature must be 64 bytes")
	}
	return nil
}

type errString string

func (e errString) Error() string { return string(e) }

// EncodeChain canonically serializes an ordered certificate chain as a
// CBOR array; array order is preserved exactly (never reordered).
func EncodeChain(chain []Certificate) ([]byte, error) {
	return canonicalEncMode.Marshal(chain)
}

// DecodeChain parses a canonically-encoded certificate chain.
func DecodeChain(b []byte) ([]Certificate, error) {
	var raw []Certificate
	if err := decMode.Unmarshal(b, &raw); err != nil {
		return nil, &ChainDecodeError{Reason: err.Error()}
	}
	for i, cert := range raw {
		if err := validateCertShape(cert); err != nil {
			return nil, &ChainDecodeError{Reason: err.Error() + " at index " + itoa(i)}
		}
	}
	return raw, nil
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
