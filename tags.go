package motherlib

import (
	"sort"
	"strings"
)

// normalizeTags returns the canonical form of a tag set: blanks dropped,
// duplicates collapsed, sorted lexicographically. Tag sets are unordered on
// the wire, so a fixed ordering is required for the URI to be deterministic.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// tagPath encodes a tag set as a URI path segment.
func tagPath(tags []string) string {
	return strings.Join(normalizeTags(tags), "/")
}

// tagURI builds the request URI for a latest/history endpoint. Exact
// lookups require a non-empty tag set; superset lookups signal their
// matching semantics to the server with a trailing slash.
func tagURI(endpoint string, tags []string, superset bool) (string, error) {
	segment := tagPath(tags)
	if !superset && segment == "" {
		return "", ErrNoTags
	}
	uri := endpoint + segment
	if superset && segment != "" {
		uri += "/"
	}
	return uri, nil
}
