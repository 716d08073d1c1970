package compress

import (
	"bytes"
	"testing"
)

func TestLZ4RoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte(""),
		[]byte("a"),
		[]byte("hello world hello world hello world hello world"),
		bytes.Repeat([]byte("aletheia"), 4096),
	}
	var codec LZ4
	for _, payload := range cases {
		compressed, err := codec.Compress(payload)
		if err != nil {
			t.Fatalf("Compress(%d bytes): %v", len(payload), err)
		}
		decompressed, err := codec.Decompress(compressed)
		if err != nil {
			t.Fatalf("Decompress(%d bytes): %v", len(payload), err)
		}
		if !bytes.Equal(decompressed, payload) {
			t.Errorf("round trip mismatch for %d-byte payload", len(payload))
		}
	}
}

func TestLZ4CompressesRepetitiveData(t *testing.T) {
	var codec LZ4
	payload := bytes.Repeat([]byte("aletheia-aletheia-aletheia-"), 1000)
	compressed, err := codec.Compress(payload)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(compressed) >= len(payload) {
		t.Errorf("compressed size %d not smaller than input %d", len(compressed), len(payload))
	}
}

func TestLZ4DecompressRejectsTruncated(t *testing.T) {
	var codec LZ4
	if _, err := codec.Decompress([]byte{1, 2, 3}); err == nil {
		t.Errorf("Decompress accepted a too-short input")
	}
}
