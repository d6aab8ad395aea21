package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressRoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte("tagged content "), 200)

	compressed, err := Compress(original)
	require.NoError(t, err)
	require.True(t, IsZstd(compressed))
	require.Less(t, len(compressed), len(original))

	restored, err := MaybeDecompress(compressed)
	require.NoError(t, err)
	require.Equal(t, original, restored)
}

func TestMaybeDecompressPassesPlainBytesThrough(t *testing.T) {
	plain := []byte("never compressed")
	require.False(t, IsZstd(plain))

	out, err := MaybeDecompress(plain)
	require.NoError(t, err)
	require.Equal(t, plain, out)
}

func TestIsZstdShortInput(t *testing.T) {
	require.False(t, IsZstd(nil))
	require.False(t, IsZstd([]byte{0x28, 0xb5}))
}
