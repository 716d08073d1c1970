// Package envelope implements the Aletheia binary container: the byte
// layout of a .alx file, exact byte-range tracking for every region, and
// canonical encoding/decoding of the header and certificate records that
// live inside it.
//
// The package has no knowledge of trust policy or chain semantics — it
// only knows how to turn bytes into a structured view and back,
// byte-exactly. Signature computation and chain validation live in
// edkey/certutil/signer/verifier.
package envelope

// Magic is the fixed 8-byte tag at the start of every envelope.
var Magic = [8]byte{'A', 'L', 'E', 'T', 'H', 'E', 'I', 'A'}

const (
	// VersionMajor is the only version-major this package can read or write.
	VersionMajor byte = 1
	// VersionMinor is the minor version this package writes.
	VersionMinor byte = 0
)

// Flag bits within the 2-byte, little-endian flags field.
const (
	FlagCompressed uint16 = 1 << 0
	flagReservedMask       = ^FlagCompressed
)

// SignatureSize is the fixed width of the trailing Ed25519 signature.
const SignatureSize = 64

// fixed-width region sizes that don't depend on H/P/C.
const (
	magicSize      = 8
	versionSize    = 2
	flagsSize      = 2
	headerLenSize  = 4
	payloadLenSize = 8
	chainLenSize   = 4
)

// minHeaderOffset is the offset of the header-length field (and thus also
// the number of fixed bytes preceding header/payload/chain/signature).
const minHeaderOffset = magicSize + versionSize + flagsSize // 12

// Range is a half-open byte interval [Start, End) within the envelope.
type Range struct {
	Start, End int
}

// Len returns the width of the range.
func (r Range) Len() int { return r.End - r.Start }

// Region names used as keys of ParsedEnvelope.Ranges. Per region spans the
// length-prefix field it introduces, so that the seven ranges are
// contiguous and their union is exactly [0, len(data)).
const (
	RegionMagic     = "magic"
	RegionVersion   = "version"
	RegionFlags     = "flags"
	RegionHeader    = "header"
	RegionPayload   = "payload"
	RegionChain     = "chain"
	RegionSignature = "signature"
)

// RegionOrder is the fixed, spec-mandated order of envelope regions.
var RegionOrder = []string{
	RegionMagic, RegionVersion, RegionFlags, RegionHeader,
	RegionPayload, RegionChain, RegionSignature,
}
