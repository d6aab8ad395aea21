// Package motherlibtest provides an in-memory mothership server that
// implements the wire contract the client speaks: tag-addressed puts with
// content-derived refs, exact and superset lookups, the unique-match
// bytes-vs-record-list response shape, and JSON error bodies.
//
// It is an http.Handler, so tests typically wrap it:
//
//	server := httptest.NewServer(motherlibtest.NewServer())
//	defer server.Close()
//	client, _ := motherlib.New(server.URL)
package motherlibtest

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// createdFormat renders UTC timestamps with an explicit +00:00 offset, the
// way the real server does.
const createdFormat = "2006-01-02T15:04:05-07:00"

type storedRecord struct {
	ref     string
	tags    []string // sorted
	created time.Time
}

func (r storedRecord) wire() map[string]any {
	return map[string]any{
		"ref":     r.ref,
		"tags":    r.tags,
		"created": r.created.Format(createdFormat),
	}
}

// Server is an in-memory mothership.
type Server struct {
	echo *echo.Echo

	// Token, when set, makes every request require a matching bearer
	// token and answer 401 otherwise.
	Token string

	mu      sync.Mutex
	blobs   map[string][]byte
	records []storedRecord // insertion order; served newest first
}

// NewServer creates an empty in-memory mothership.
func NewServer() *Server {
	s := &Server{
		blobs: make(map[string][]byte),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(s.checkAuth)

	e.PUT("/latest/*", s.putLatest)
	e.GET("/latest/*", s.getLatest)
	e.GET("/history/*", s.getHistory)
	e.DELETE("/history/*", s.deleteHistory)
	e.GET("/blob/:ref", s.getBlob)
	e.GET("/auth/:provider/login", s.getLoginInfo)

	s.echo = e
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// RecordCount reports how many records are stored.
func (s *Server) RecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Server) checkAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.Token != "" && c.Request().Header.Get("Authorization") != "Bearer "+s.Token {
			return apiErrorJSON(c, http.StatusUnauthorized, "unauthorized", "invalid or missing bearer token")
		}
		return next(c)
	}
}

// tagQuery splits the wildcard path segment into the queried tag set and
// the match mode. A trailing slash (or an empty segment) means superset.
func tagQuery(c echo.Context) (tags []string, superset bool) {
	segment := c.Param("*")
	superset = segment == "" || strings.HasSuffix(segment, "/")
	for _, tag := range strings.Split(strings.Trim(segment, "/"), "/") {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, superset
}

func (s *Server) putLatest(c echo.Context) error {
	tags, _ := tagQuery(c)
	if len(tags) == 0 {
		return apiErrorJSON(c, http.StatusBadRequest, "bad-request", "at least one tag required")
	}

	content, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apiErrorJSON(c, http.StatusBadRequest, "bad-request", "unreadable body")
	}

	sum := sha256.Sum256(content)
	ref := hex.EncodeToString(sum[:])

	s.mu.Lock()
	s.blobs[ref] = content
	s.records = append(s.records, storedRecord{
		ref:     ref,
		tags:    tags,
		created: time.Now().UTC(),
	})
	s.mu.Unlock()

	c.Response().Header().Set("Location", "/blob/"+ref)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getLatest(c echo.Context) error {
	tags, superset := tagQuery(c)
	matches := s.match(tags, superset, true)
	switch len(matches) {
	case 0:
		return apiErrorJSON(c, http.StatusNotFound, "not-found", "no matching records")
	case 1:
		// Unique match: the stored bytes themselves, no envelope.
		s.mu.Lock()
		content := s.blobs[matches[0].ref]
		s.mu.Unlock()
		return c.Blob(http.StatusOK, "application/octet-stream", content)
	default:
		return c.JSON(http.StatusOK, wireRecords(matches))
	}
}

func (s *Server) getHistory(c echo.Context) error {
	tags, superset := tagQuery(c)
	matches := s.match(tags, superset, false)
	if len(matches) == 0 {
		return apiErrorJSON(c, http.StatusNotFound, "not-found", "no matching records")
	}
	// History is always a list, even for a single match.
	return c.JSON(http.StatusOK, wireRecords(matches))
}

func (s *Server) deleteHistory(c echo.Context) error {
	tags, superset := tagQuery(c)

	s.mu.Lock()
	kept := s.records[:0]
	removed := 0
	for _, rec := range s.records {
		if tagsMatch(rec.tags, tags, superset) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	s.mu.Unlock()

	if removed == 0 {
		return apiErrorJSON(c, http.StatusNotFound, "not-found", "no matching records")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getBlob(c echo.Context) error {
	ref := c.Param("ref")

	s.mu.Lock()
	content, ok := s.blobs[ref]
	s.mu.Unlock()

	if !ok {
		return apiErrorJSON(c, http.StatusNotFound, "not-found", "no blob for ref "+ref)
	}
	return c.Blob(http.StatusOK, "application/octet-stream", content)
}

func (s *Server) getLoginInfo(c echo.Context) error {
	provider := c.Param("provider")
	return c.JSON(http.StatusOK, map[string]string{
		"provider":      provider,
		"provider_name": strings.ToUpper(provider[:1]) + provider[1:],
		"auth_url":      "https://auth.example.com/" + provider + "/authorize?state=test",
	})
}

// match returns the records matching the query, newest first. With
// latestOnly set, only the newest record per distinct stored tag set
// survives; history keeps them all.
func (s *Server) match(tags []string, superset, latestOnly bool) []storedRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []storedRecord
	seen := make(map[string]struct{})
	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if !tagsMatch(rec.tags, tags, superset) {
			continue
		}
		if latestOnly {
			key := strings.Join(rec.tags, "/")
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		matches = append(matches, rec)
	}
	return matches
}

// tagsMatch implements the two matching modes over sorted tag sets: exact
// equality, or containment of the query in the stored set.
func tagsMatch(stored, query []string, superset bool) bool {
	if !superset {
		if len(stored) != len(query) {
			return false
		}
		for i := range stored {
			if stored[i] != query[i] {
				return false
			}
		}
		return true
	}
	have := make(map[string]struct{}, len(stored))
	for _, tag := range stored {
		have[tag] = struct{}{}
	}
	for _, tag := range query {
		if _, ok := have[tag]; !ok {
			return false
		}
	}
	return true
}

func wireRecords(records []storedRecord) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.wire())
	}
	return out
}

func apiErrorJSON(c echo.Context, code int, kind, message string) error {
	return c.JSON(code, map[string]any{
		"kind":       kind,
		"message":    message,
		"statuscode": code,
	})
}
