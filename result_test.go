package motherlib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeResultRecordList(t *testing.T) {
	result, err := decodeResult([]byte(`[
		{"ref": "a", "tags": ["log"], "created": "2020-10-29T00:38:50+00:00"},
		{"ref": "b", "tags": ["log", "dev"], "created": "2020-10-29T00:38:23+00:00"}
	]`))
	require.NoError(t, err)
	require.False(t, result.Unique())
	require.Len(t, result.Records, 2)
	require.Empty(t, result.Content)
}

func TestDecodeResultRawContent(t *testing.T) {
	body := []byte("arbitrary bytes \x00\x01 not json")
	result, err := decodeResult(body)
	require.NoError(t, err)
	require.True(t, result.Unique())
	require.Equal(t, body, result.Content)
	require.Empty(t, result.Records)
}

// Stored content may itself start with '[' without being a JSON list; the
// sniffer must fall back to treating it as bytes.
func TestDecodeResultBracketButNotJSON(t *testing.T) {
	body := []byte("[section] key=value")
	result, err := decodeResult(body)
	require.NoError(t, err)
	require.True(t, result.Unique())
	require.Equal(t, body, result.Content)
}

// A JSON object (not a list) is not the record-list shape; it is content.
func TestDecodeResultJSONObjectIsContent(t *testing.T) {
	body := []byte(`{"some": "stored json"}`)
	result, err := decodeResult(body)
	require.NoError(t, err)
	require.True(t, result.Unique())
	require.Equal(t, body, result.Content)
}

func TestDecodeResultEmptyList(t *testing.T) {
	result, err := decodeResult([]byte(`[]`))
	require.NoError(t, err)
	require.False(t, result.Unique())
	require.Empty(t, result.Records)
}

func TestDecodeResultMalformedRecordInList(t *testing.T) {
	_, err := decodeResult([]byte(`[{"ref": "a", "tags": ["log"], "created": "not-a-time"}]`))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}
