package motherlibtest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, server *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestPutSetsLocationAndStoresBlob(t *testing.T) {
	server := NewServer()

	rec := doRequest(t, server, http.MethodPut, "/latest/dev/log", []byte("payload"))
	require.Equal(t, http.StatusNoContent, rec.Code)

	location := rec.Header().Get("Location")
	require.Contains(t, location, "/blob/")

	blob := doRequest(t, server, http.MethodGet, location, nil)
	require.Equal(t, http.StatusOK, blob.Code)
	require.Equal(t, "payload", blob.Body.String())
}

func TestPutWithoutTagsIsRejected(t *testing.T) {
	server := NewServer()
	rec := doRequest(t, server, http.MethodPut, "/latest/", []byte("x"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUniqueLatestAnswersWithRawBytes(t *testing.T) {
	server := NewServer()
	doRequest(t, server, http.MethodPut, "/latest/dev/log", []byte("the bytes"))

	rec := doRequest(t, server, http.MethodGet, "/latest/dev/log", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	require.Equal(t, "the bytes", rec.Body.String())
}

func TestAmbiguousLatestAnswersWithRecordList(t *testing.T) {
	server := NewServer()
	doRequest(t, server, http.MethodPut, "/latest/dev/log", []byte("a"))
	doRequest(t, server, http.MethodPut, "/latest/alice/log", []byte("b"))

	rec := doRequest(t, server, http.MethodGet, "/latest/log/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 2)
	require.NotEmpty(t, records[0]["ref"])
	require.NotEmpty(t, records[0]["created"])
}

func TestExactMatchIgnoresSupersets(t *testing.T) {
	server := NewServer()
	doRequest(t, server, http.MethodPut, "/latest/dev/log", []byte("narrow"))
	doRequest(t, server, http.MethodPut, "/latest/alice/dev/log", []byte("wide"))

	rec := doRequest(t, server, http.MethodGet, "/history/dev/log", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
}

func TestNotFoundIsStructuredError(t *testing.T) {
	server := NewServer()

	rec := doRequest(t, server, http.MethodGet, "/history/nothing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	require.Equal(t, "not-found", apiErr["kind"])
	require.Equal(t, float64(http.StatusNotFound), apiErr["statuscode"])
}

func TestDeleteRemovesMatchingHistory(t *testing.T) {
	server := NewServer()
	doRequest(t, server, http.MethodPut, "/latest/dev/log", []byte("a"))
	doRequest(t, server, http.MethodPut, "/latest/dev/log", []byte("b"))

	rec := doRequest(t, server, http.MethodDelete, "/history/dev/log", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, 0, server.RecordCount())

	rec = doRequest(t, server, http.MethodDelete, "/history/dev/log", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
