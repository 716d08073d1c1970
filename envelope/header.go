package envelope

// Header is the envelope's canonical-map metadata record (spec §3).
//
// The wire order of fields is set by canonicalEncMode's key sorting, not by
// the declaration order below.
// Optional fields are omitted from the encoded form when empty/nil.
type Header struct {
	CreatorID    string            `cbor:"creator_id"`
	SignedAt     int64             `cbor:"signed_at"`
	ContentType  string            `cbor:"content_type,omitempty"`
	OriginalName string            `cbor:"original_name,omitempty"`
	Description  string            `cbor:"description,omitempty"`
	Custom       map[string]string `cbor:"custom,omitempty"`
}

// EncodeHeader canonically serializes h. The encoding is deterministic:
// logically-equal headers always produce byte-identical output.
func EncodeHeader(h Header) ([]byte, error) {
	if h.CreatorID == "" {
		return nil, &HeaderDecodeError{Reason: "creator_id is required"}
	}
	return canonicalEncMode.Marshal(h)
}

// DecodeHeader parses a canonically-encoded header. It is permissive of
// map key order and unknown fields.
func DecodeHeader(b []byte) (Header, error) {
	var h Header
	if err := decMode.Unmarshal(b, &h); err != nil {
		return Header{}, &HeaderDecodeError{Reason: err.Error()}
	}
	if h.CreatorID == "" {
		return Header{}, &HeaderDecodeError{Reason: "missing required field creator_id"}
	}
	return h, nil
}
