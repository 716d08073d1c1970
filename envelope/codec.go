package envelope

import "encoding/binary"

// ParsedEnvelope is the structural view of a .alx file produced by Parse.
// HeaderBytes, Payload, and ChainBytes are slices into Raw — Parse never
// copies payload bytes out of the input buffer.
type ParsedEnvelope struct {
	VersionMajor, VersionMinor byte
	Flags                      uint16
	HeaderBytes                []byte
	Header                     Header
	Payload                    []byte
	ChainBytes                 []byte
	Chain                      []Certificate
	Signature                  [SignatureSize]byte
	Ranges                     map[string]Range
	Raw                        []byte
}

// Compressed reports whether the flags field's compressed bit is set.
func (p *ParsedEnvelope) Compressed() bool { return p.Flags&FlagCompressed != 0 }

// SignedRange returns the byte range that was fed to the signature
// algorithm: everything except the trailing signature itself.
func (p *ParsedEnvelope) SignedRange() Range {
	return Range{Start: 0, End: p.Ranges[RegionSignature].Start}
}

// Parse reads data as an Aletheia envelope. It performs every structural
// check the format defines, in the order a streaming reader would
// encounter them, but never verifies the trailing signature — that is
// signer/verifier's job, not this package's.
func Parse(data []byte) (*ParsedEnvelope, error) {
	need := func(offset, n int) error {
		if offset+n > len(data) {
			return &TruncatedInputError{Offset: offset, Need: n}
		}
		return nil
	}

	ranges := make(map[string]Range, len(RegionOrder))
	offset := 0

	if err := need(offset, magicSize); err != nil {
		return nil, err
	}
	var got [8]byte
	copy(got[:], data[offset:offset+magicSize])
	if got != Magic {
		return nil, &BadMagicError{Got: got}
	}
	ranges[RegionMagic] = Range{offset, offset + magicSize}
	offset += magicSize

	if err := need(offset, versionSize); err != nil {
		return nil, err
	}
	major, minor := data[offset], data[offset+1]
	if major != VersionMajor {
		return nil, &UnsupportedVersionError{Major: major}
	}
	ranges[RegionVersion] = Range{offset, offset + versionSize}
	offset += versionSize

	if err := need(offset, flagsSize); err != nil {
		return nil, err
	}
	flags := binary.LittleEndian.Uint16(data[offset : offset+flagsSize])
	if flags&flagReservedMask != 0 {
		return nil, &ReservedFlagsSetError{Bits: flags & flagReservedMask}
	}
	flagsRangeStart := offset
	offset += flagsSize

	if err := need(offset, headerLenSize); err != nil {
		return nil, err
	}
	headerLen := binary.LittleEndian.Uint32(data[offset : offset+headerLenSize])
	headerRegionStart := offset
	offset += headerLenSize

	if err := need(offset, int(headerLen)); err != nil {
		return nil, err
	}
	headerBytes := data[offset : offset+int(headerLen)]
	offset += int(headerLen)
	ranges[RegionHeader] = Range{headerRegionStart, offset}

	header, err := DecodeHeader(headerBytes)
	if err != nil {
		return nil, err
	}

	if err := need(offset, payloadLenSize); err != nil {
		return nil, err
	}
	payloadLen := binary.LittleEndian.Uint64(data[offset : offset+payloadLenSize])
	payloadRegionStart := offset
	offset += payloadLenSize

	if payloadLen > uint64(maxInt-offset) {
		return nil, &PayloadLengthOverflowError{}
	}
	if err := need(offset, int(payloadLen)); err != nil {
		return nil, err
	}
	payload := data[offset : offset+int(payloadLen)]
	offset += int(payloadLen)
	ranges[RegionPayload] = Range{payloadRegionStart, offset}

	if err := need(offset, chainLenSize); err != nil {
		return nil, err
	}
	chainLen := binary.LittleEndian.Uint32(data[offset : offset+chainLenSize])
	chainRegionStart := offset
	offset += chainLenSize

	if err := need(offset, int(chainLen)); err != nil {
		return nil, err
	}
	chainBytes := data[offset : offset+int(chainLen)]
	offset += int(chainLen)
	ranges[RegionChain] = Range{chainRegionStart, offset}

	chain, err := DecodeChain(chainBytes)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, &EmptyChainError{}
	}

	sigRegionStart := offset
	remaining := len(data) - offset
	if remaining < SignatureSize {
		return nil, &SignatureLengthMismatchError{Got: remaining}
	}
	if remaining > SignatureSize {
		return nil, &TrailingBytesError{N: remaining - SignatureSize}
	}
	var sig [SignatureSize]byte
	copy(sig[:], data[offset:offset+SignatureSize])
	ranges[RegionSignature] = Range{sigRegionStart, sigRegionStart + SignatureSize}

	ranges[RegionFlags] = Range{flagsRangeStart, flagsRangeStart + flagsSize}

	return &ParsedEnvelope{
		VersionMajor: major,
		VersionMinor: minor,
		Flags:        flags,
		HeaderBytes:  headerBytes,
		Header:       header,
		Payload:      payload,
		ChainBytes:   chainBytes,
		Chain:        chain,
		Signature:    sig,
		Ranges:       ranges,
		Raw:          data,
	}, nil
}

const maxInt = int(^uint(0) >> 1)

// SignatureInput assembles the exact byte sequence that is signed and that
// a verifier must reproduce to check a signature: every envelope region
// except the trailing signature itself.
func SignatureInput(flags uint16, headerBytes, payload, chainBytes []byte) []byte {
	out := make([]byte, 0, minHeaderOffset+headerLenSize+len(headerBytes)+
		payloadLenSize+len(payload)+chainLenSize+len(chainBytes))
	out = append(out, Magic[:]...)
	out = append(out, VersionMajor, VersionMinor)

	var flagsBuf [flagsSize]byte
	binary.LittleEndian.PutUint16(flagsBuf[:], flags)
	out = append(out, flagsBuf[:]...)

	var headerLenBuf [headerLenSize]byte
	binary.LittleEndian.PutUint32(headerLenBuf[:], uint32(len(headerBytes)))
	out = append(out, headerLenBuf[:]...)
	out = append(out, headerBytes...)

	var payloadLenBuf [payloadLenSize]byte
	binary.LittleEndian.PutUint64(payloadLenBuf[:], uint64(len(payload)))
	out = append(out, payloadLenBuf[:]...)
	out = append(out, payload...)

	var chainLenBuf [chainLenSize]byte
	binary.LittleEndian.PutUint32(chainLenBuf[:], uint32(len(chainBytes)))
	out = append(out, chainLenBuf[:]...)
	out = append(out, chainBytes...)

	return out
}

// Build assembles a complete envelope from its parts and a precomputed
// signature over SignatureInput(flags, headerBytes, payload, chainBytes).
func Build(flags uint16, headerBytes, payload, chainBytes, signature []byte) ([]byte, error) {
	if len(signature) != SignatureSize {
		return nil, &SignatureLengthMismatchError{Got: len(signature)}
	}
	out := SignatureInput(flags, headerBytes, payload, chainBytes)
	out = append(out, signature...)
	return out, nil
}
