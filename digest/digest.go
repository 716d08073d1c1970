// Package digest computes content identifiers for Aletheia payloads and
// envelopes. These CIDs are a display and content-addressing convenience
// only — sign and verify never consult them.
package digest

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// CIDv1RawSHA256 returns the CIDv1 (raw codec, sha2-256) string for data.
func CIDv1RawSHA256(data []byte) (string, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", err
	}
	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

// PayloadCID returns the content identifier for an envelope's payload. It
// hashes exactly the bytes it is given; the caller decides whether that is
// the stored (possibly compressed) form or the decompressed payload.
func PayloadCID(payload []byte) (string, error) {
	return CIDv1RawSHA256(payload)
}

// EnvelopeCID returns the content identifier for a complete envelope's
// bytes, useful for referring to a specific signed artifact independent
// of where it is stored.
func EnvelopeCID(envelopeBytes []byte) (string, error) {
	return CIDv1RawSHA256(envelopeBytes)
}
