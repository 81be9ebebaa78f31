package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	store := NewMemoryReplayStore(time.Minute)
	defer store.Stop()

	calls := 0
	handler := Idempotency(store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Package created successfully"}`))
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/packages", strings.NewReader("{}"))
		req.Header.Set(IdempotencyHeader, "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"message":"Package created successfully"}`, rec.Body.String())
	}

	assert.Equal(t, 1, calls, "the second request must be served from the cache")
}

func TestIdempotencyScopesKeyByMethodAndPath(t *testing.T) {
	store := NewMemoryReplayStore(time.Minute)
	defer store.Stop()

	calls := 0
	handler := Idempotency(store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/api/admin/packages", "/api/admin/special-fares"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		req.Header.Set(IdempotencyHeader, "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 2, calls, "the same key on a different endpoint is a different request")
}

func TestIdempotencyPassesThroughWithoutKey(t *testing.T) {
	store := NewMemoryReplayStore(time.Minute)
	defer store.Stop()

	calls := 0
	handler := Idempotency(store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/packages", strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}

	assert.Equal(t, 2, calls)
}

func TestIdempotencyDoesNotCacheFailures(t *testing.T) {
	store := NewMemoryReplayStore(time.Minute)
	defer store.Stop()

	calls := 0
	handler := Idempotency(store, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/packages", strings.NewReader("{}"))
	req.Header.Set(IdempotencyHeader, "retry-me")
	handler.ServeHTTP(first, req)
	require.Equal(t, http.StatusInternalServerError, first.Code)

	second := httptest.NewRecorder()
	retry := httptest.NewRequest(http.MethodPost, "/api/admin/packages", strings.NewReader("{}"))
	retry.Header.Set(IdempotencyHeader, "retry-me")
	handler.ServeHTTP(second, retry)

	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, 2, calls, "a failed request may be retried with the same key")
}

func TestMemoryReplayStoreExpiresEntries(t *testing.T) {
	store := NewMemoryReplayStore(time.Millisecond)
	defer store.Stop()

	store.Set("k", &StoredResponse{StatusCode: http.StatusOK, StoredAt: time.Now()})
	time.Sleep(5 * time.Millisecond)

	_, ok := store.Get("k")
	assert.False(t, ok)
}
