package compress

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// lengthPrefixSize is the width of the little-endian uncompressed-size
// prefix written before the raw LZ4 block (or before the raw bytes of an
// incompressible payload, see rawMarker).
const lengthPrefixSize = 8

// LZ4 implements Codec using a raw LZ4 block preceded by an 8-byte
// little-endian uncompressed length, rather than the LZ4 frame format.
type LZ4 struct{}

// Compress returns the length-prefixed LZ4 block for payload.
func (LZ4) Compress(payload []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(payload))
	out := make([]byte, lengthPrefixSize+bound)
	binary.LittleEndian.PutUint64(out[:lengthPrefixSize], uint64(len(payload)))

	var compressor lz4.Compressor
	n, err := compressor.CompressBlock(payload, out[lengthPrefixSize:])
	if err != nil {
		return nil, err
	}
	if n == 0 && len(payload) > 0 {
		// Incompressible input: lz4 leaves the block empty. Store raw
		// bytes behind the same length-prefixed envelope so Decompress
		// has a single code path.
		return storeRaw(payload), nil
	}
	return out[:lengthPrefixSize+n], nil
}

// Decompress reverses Compress.
func (LZ4) Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) < lengthPrefixSize {
		return nil, fmt.Errorf("compress: truncated length prefix")
	}
	raw := isRawStored(compressed)
	uncompressedLen := binary.LittleEndian.Uint64(compressed[:lengthPrefixSize]) &^ rawMarker
	block := compressed[lengthPrefixSize:]

	out := make([]byte, uncompressedLen)
	if uncompressedLen == 0 {
		return out, nil
	}
	if raw {
		if uint64(len(block)) != uncompressedLen {
			return nil, fmt.Errorf("compress: raw block length %d, expected %d", len(block), uncompressedLen)
		}
		copy(out, block)
		return out, nil
	}
	n, err := lz4.UncompressBlock(block, out)
	if err != nil {
		return nil, err
	}
	if uint64(n) != uncompressedLen {
		return nil, fmt.Errorf("compress: decompressed to %d bytes, expected %d", n, uncompressedLen)
	}
	return out, nil
}

// rawMarker distinguishes a stored-raw block from a genuine LZ4 block: it
// is written as the high bit of the length prefix, which uncompressed
// payload lengths in practice never approach.
const rawMarker = uint64(1) << 63

func storeRaw(payload []byte) []byte {
	out := make([]byte, lengthPrefixSize+len(payload))
	binary.LittleEndian.PutUint64(out[:lengthPrefixSize], uint64(len(payload))|rawMarker)
	copy(out[lengthPrefixSize:], payload)
	return out
}

func isRawStored(compressed []byte) bool {
	return binary.LittleEndian.Uint64(compressed[:lengthPrefixSize])&rawMarker != 0
}
