package motherlib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagPathDeterministic(t *testing.T) {
	first := tagPath([]string{"log", "dev", "alice"})
	second := tagPath([]string{"alice", "log", "dev"})
	require.Equal(t, first, second)
	require.Equal(t, "alice/dev/log", first)
}

func TestTagPathCollapsesDuplicatesAndBlanks(t *testing.T) {
	require.Equal(t, "dev/log", tagPath([]string{"log", "dev", "log", ""}))
}

func TestTagURIExactRequiresTags(t *testing.T) {
	_, err := tagURI("/latest/", nil, false)
	require.ErrorIs(t, err, ErrNoTags)

	_, err = tagURI("/history/", []string{""}, false)
	require.ErrorIs(t, err, ErrNoTags)
}

func TestTagURIExact(t *testing.T) {
	uri, err := tagURI("/latest/", []string{"log", "dev"}, false)
	require.NoError(t, err)
	require.Equal(t, "/latest/dev/log", uri)
}

func TestTagURISupersetTrailingSlash(t *testing.T) {
	uri, err := tagURI("/history/", []string{"log", "dev"}, true)
	require.NoError(t, err)
	require.Equal(t, "/history/dev/log/", uri)
}

func TestTagURISupersetEmptyMatchesEverything(t *testing.T) {
	uri, err := tagURI("/history/", nil, true)
	require.NoError(t, err)
	require.Equal(t, "/history/", uri)
}
