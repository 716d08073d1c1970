// Package signer assembles and signs Aletheia envelopes: given a header,
// a payload, and the signing identity's certificate chain, it produces
// the complete signed .alx byte sequence.
package signer

import (
	"bytes"
	"time"

	"github.com/aurel3d/aletheia/certutil"
	"github.com/aurel3d/aletheia/compress"
	"github.com/aurel3d/aletheia/edkey"
	"github.com/aurel3d/aletheia/envelope"
)

// Signer signs payloads on behalf of the identity named by chain[0],
// using key. The key must correspond to chain[0]'s public key — a signer
// whose key doesn't match the leaf certificate could never produce a
// verifiable envelope, so New rejects that case up front.
type Signer struct {
	key   edkey.KeyPair
	chain []envelope.Certificate
}

// New builds a Signer for key, authorized by chain. chain must be
// structurally valid (see certutil.ValidateStructure) and its leaf
// (index 0) must carry key's public key.
func New(key edkey.KeyPair, chain []envelope.Certificate) (*Signer, error) {
	if len(chain) == 0 {
		return nil, &certutil.EmptyChainError{}
	}
	if err := certutil.ValidateStructure(chain); err != nil {
		return nil, err
	}
	leaf := certutil.Leaf(chain)
	if !bytes.Equal(leaf.PublicKey, key.Public) {
		return nil, &InvalidChainError{Reason: "signing key does not match chain leaf's public key"}
	}
	return &Signer{key: key, chain: chain}, nil
}

// Options controls optional behavior of Sign.
type Options struct {
	// Compress enables LZ4 payload compression (flag bit 0).
	Compress bool
	// Codec is used to compress the payload when Compress is true.
	// Defaults to compress.LZ4 when nil.
	Codec compress.Codec
}

// Sign produces a complete, signed envelope for payload under header.
// CreatorID in header is overwritten with the chain leaf's subject_id and
// SignedAt with the current time, so callers never need to keep those two
// values in sync with the chain by hand.
func (s *Signer) Sign(header envelope.Header, payload []byte, opts Options) ([]byte, error) {
	return s.signAt(header, payload, opts, time.Now())
}

// SignAt is Sign with an injectable timestamp, for deterministic tests.
func (s *Signer) SignAt(header envelope.Header, payload []byte, opts Options, signedAt time.Time) ([]byte, error) {
	return s.signAt(header, payload, opts, signedAt)
}

func (s *Signer) signAt(header envelope.Header, payload []byte, opts Options, signedAt time.Time) ([]byte, error) {
	header.CreatorID = certutil.Leaf(s.chain).SubjectID
	header.SignedAt = signedAt.Unix()

	var flags uint16
	body := payload
	if opts.Compress {
		codec := opts.Codec
		if codec == nil {
			codec = compress.LZ4{}
		}
		compressed, err := codec.Compress(payload)
		if err != nil {
			return nil, err
		}
		body = compressed
		flags |= envelope.FlagCompressed
	}

	headerBytes, err := envelope.EncodeHeader(header)
	if err != nil {
		return nil, err
	}
	chainBytes, err := envelope.EncodeChain(s.chain)
	if err != nil {
		return nil, err
	}

	signatureInput := envelope.SignatureInput(flags, headerBytes, body, chainBytes)
	signature := s.key.Sign(signatureInput)

	return envelope.Build(flags, headerBytes, body, chainBytes, signature)
}
