package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"roamly/pkg/logger"
)

const IdempotencyHeader = "Idempotency-Key"

// ReplayStore caches responses to mutating requests so that a retried
// request carrying the same Idempotency-Key gets the original response
// back instead of running the handler twice.
type ReplayStore interface {
	Get(key string) (*StoredResponse, bool)
	Set(key string, resp *StoredResponse)
	Stop()
}

type StoredResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	StoredAt   time.Time
}

// MemoryReplayStore holds cached responses in process memory with a TTL.
// Expired entries are dropped by a background sweep.
type MemoryReplayStore struct {
	mu      sync.RWMutex
	entries map[string]*StoredResponse
	ttl     time.Duration
	stopCh  chan struct{}
}

func NewMemoryReplayStore(ttl time.Duration) *MemoryReplayStore {
	s := &MemoryReplayStore{
		entries: make(map[string]*StoredResponse),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go s.cleanup()

	return s
}

func (s *MemoryReplayStore) cleanup() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for key, entry := range s.entries {
				if time.Since(entry.StoredAt) > s.ttl {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *MemoryReplayStore) Stop() {
	close(s.stopCh)
}

func (s *MemoryReplayStore) Get(key string) (*StoredResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok || time.Since(entry.StoredAt) > s.ttl {
		return nil, false
	}
	return entry, true
}

func (s *MemoryReplayStore) Set(key string, resp *StoredResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = resp
}

// responseRecorder buffers the handler's response so a successful one can
// be stored for replay.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.statusCode = code
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	rr.body.Write(b)
	return rr.ResponseWriter.Write(b)
}

// Idempotency replays cached responses for requests that repeat an
// Idempotency-Key. Keys are scoped to method and path so the same key can
// be reused across endpoints. Only 2xx responses are cached; a failed
// request may be retried with the same key.
func Idempotency(store ReplayStore, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" || !requiresContentType(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			scopedKey := r.Method + " " + r.URL.Path + " " + key

			if cached, ok := store.Get(scopedKey); ok {
				log.Info("Replaying cached response",
					"request_id", RequestIDFrom(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				for name, values := range cached.Headers {
					for _, v := range values {
						w.Header().Add(name, v)
					}
				}
				w.WriteHeader(cached.StatusCode)
				_, _ = w.Write(cached.Body)
				return
			}

			recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(recorder, r)

			if recorder.statusCode >= 200 && recorder.statusCode < 300 {
				store.Set(scopedKey, &StoredResponse{
					StatusCode: recorder.statusCode,
					Headers:    w.Header().Clone(),
					Body:       recorder.body.Bytes(),
					StoredAt:   time.Now(),
				})
			}
		})
	}
}
