package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testRetrier(t *testing.T, attempts int) *Retrier {
	t.Helper()
	retrier, err := NewRetrier(testTransport(t), attempts, time.Millisecond, nil)
	require.NoError(t, err)
	return retrier
}

func countingServer(t *testing.T, count *atomic.Int32, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewRetrierRejectsZeroAttempts(t *testing.T) {
	_, err := NewRetrier(testTransport(t), 0, time.Millisecond, nil)
	require.Error(t, err)

	_, err = NewRetrier(testTransport(t), -1, time.Millisecond, nil)
	require.Error(t, err)
}

func TestRetryBudgetSpentOnRetryableFailure(t *testing.T) {
	var count atomic.Int32
	server := countingServer(t, &count, http.StatusInternalServerError)

	_, err := testRetrier(t, 3).Do(context.Background(), Request{
		Method: http.MethodGet,
		URL:    server.URL + "/latest/dev",
	})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	require.Equal(t, int32(3), count.Load())
}

func TestUnauthorizedIsNeverRetried(t *testing.T) {
	var count atomic.Int32
	server := countingServer(t, &count, http.StatusUnauthorized)

	_, err := testRetrier(t, 5).Do(context.Background(), Request{
		Method: http.MethodGet,
		URL:    server.URL + "/latest/dev",
	})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	require.Equal(t, int32(1), count.Load())
}

func TestSingleAttemptMeansNoRetry(t *testing.T) {
	var count atomic.Int32
	server := countingServer(t, &count, http.StatusBadGateway)

	_, err := testRetrier(t, 1).Do(context.Background(), Request{
		Method: http.MethodGet,
		URL:    server.URL + "/latest/dev",
	})

	require.Error(t, err)
	require.Equal(t, int32(1), count.Load())
}

func TestRetrySucceedsAfterTransientFailure(t *testing.T) {
	var count atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if count.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	resp, err := testRetrier(t, 3).Do(context.Background(), Request{
		Method: http.MethodGet,
		URL:    server.URL + "/latest/dev",
	})
	require.NoError(t, err)
	require.Equal(t, []byte("ok"), resp.Body)
	require.Equal(t, int32(3), count.Load())
}

func TestConnFailureIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	start := time.Now()
	_, err := testRetrier(t, 3).Do(context.Background(), Request{
		Method: http.MethodGet,
		URL:    server.URL + "/latest/dev",
	})
	require.Less(t, time.Since(start), 10*time.Second)

	var connErr *ConnError
	require.ErrorAs(t, err, &connErr)
}
