// Package codec converts raw chunk bytes to their stored form and back,
// verifying an MD5 digest of the raw bytes on the way out.
package codec

import (
	"bytes"
	"crypto/md5" // #nosec G501 -- integrity fingerprint, not a security boundary
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm names a store-wide compression format. Artifacts carry no header,
// so every artifact under one storage root must use the same algorithm.
type Algorithm string

const (
	AlgorithmZlib Algorithm = "zlib"
	AlgorithmZstd Algorithm = "zstd"
	AlgorithmLZ4  Algorithm = "lz4"
)

var (
	// ErrCorruption is the umbrella for every unrecoverable chunk read failure.
	ErrCorruption = errors.New("chunk corrupted")
	// ErrDigestMismatch means the decoded bytes do not hash to the recorded digest.
	ErrDigestMismatch = fmt.Errorf("%w: digest mismatch", ErrCorruption)
	// ErrMalformedChunk means the stored stream could not be decoded at all.
	ErrMalformedChunk = fmt.Errorf("%w: malformed compressed stream", ErrCorruption)

	ErrUnknownAlgorithm = errors.New("unknown compression algorithm")
)

// zstd encoder and decoder are safe for concurrent use and expensive to build.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

// ParseAlgorithm validates an algorithm name. Empty selects zlib.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case "", AlgorithmZlib:
		return AlgorithmZlib, nil
	case AlgorithmZstd:
		return AlgorithmZstd, nil
	case AlgorithmLZ4:
		return AlgorithmLZ4, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// Codec is stateless apart from its algorithm and safe for concurrent use.
type Codec struct {
	algorithm Algorithm
}

// New returns a codec for the given algorithm.
func New(algorithm Algorithm) (*Codec, error) {
	alg, err := ParseAlgorithm(string(algorithm))
	if err != nil {
		return nil, err
	}
	return &Codec{algorithm: alg}, nil
}

// Algorithm reports the configured compression format.
func (c *Codec) Algorithm() Algorithm {
	return c.algorithm
}

// Digest returns the hex MD5 of data.
func Digest(data []byte) string {
	sum := md5.Sum(data) // #nosec G401
	return hex.EncodeToString(sum[:])
}

// Store compresses raw and returns the stored bytes with the digest of raw.
func (c *Codec) Store(raw []byte) ([]byte, string, error) {
	digest := Digest(raw)
	compressed, err := c.compress(raw)
	if err != nil {
		return nil, "", fmt.Errorf("%s compress: %w", c.algorithm, err)
	}
	return compressed, digest, nil
}

// Load decompresses stored bytes and checks them against expectedDigest.
// Both failure modes wrap ErrCorruption.
func (c *Codec) Load(compressed []byte, expectedDigest string) ([]byte, error) {
	raw, err := c.decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrMalformedChunk, c.algorithm, err)
	}
	if actual := Digest(raw); actual != expectedDigest {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrDigestMismatch, expectedDigest, actual)
	}
	return raw, nil
}

func (c *Codec) compress(raw []byte) ([]byte, error) {
	switch c.algorithm {
	case AlgorithmZstd:
		return zstdEncoder.EncodeAll(raw, nil), nil
	case AlgorithmLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(raw); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		if _, err := w.Write(raw); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

func (c *Codec) decompress(compressed []byte) ([]byte, error) {
	switch c.algorithm {
	case AlgorithmZstd:
		return zstdDecoder.DecodeAll(compressed, nil)
	case AlgorithmLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(compressed)))
	default:
		r, err := zlib.NewReader(bytes.NewReader(compressed))
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		return io.ReadAll(r)
	}
}
