// Package compression provides optional client-side zstd framing for
// stored content. The mothership treats content as opaque bytes, so
// compressing before a put is purely a client choice; the frame magic
// makes it detectable on the way back out.
package compression

import (
	"github.com/klauspost/compress/zstd"
)

// zstd frame magic (RFC 8878).
var frameMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// IsZstd reports whether data starts with a zstd frame.
func IsZstd(data []byte) bool {
	if len(data) < len(frameMagic) {
		return false
	}
	for i, b := range frameMagic {
		if data[i] != b {
			return false
		}
	}
	return true
}

// Compress returns data wrapped in a zstd frame.
func Compress(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, err
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// MaybeDecompress unwraps data when it carries the zstd frame magic and
// returns it untouched otherwise.
func MaybeDecompress(data []byte) ([]byte, error) {
	if !IsZstd(data) {
		return data, nil
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()
	return decoder.DecodeAll(data, nil)
}
