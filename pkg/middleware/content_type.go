package middleware

import (
	"net/http"
	"slices"
	"strings"

	"roamly/pkg/logger"
)

// ContentTypeValidation rejects mutating requests whose body is not JSON.
// Paths listed in formPaths additionally accept form-encoded bodies; the
// registration endpoint is posted to by plain HTML forms as well as the
// dashboard.
func ContentTypeValidation(log *logger.Logger, formPaths ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requiresContentType(r.Method) {
				contentType := extractContentType(r.Header.Get("Content-Type"))
				if !contentTypeAllowed(contentType, r.URL.Path, formPaths) {
					log.Warn("Invalid Content-Type header",
						"request_id", RequestIDFrom(r.Context()),
						"content_type", contentType,
						"path", r.URL.Path,
						"method", r.Method,
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnsupportedMediaType)
					_, _ = w.Write([]byte(`{"error":"Content-Type must be application/json"}`))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func contentTypeAllowed(contentType, path string, formPaths []string) bool {
	if contentType == "application/json" {
		return true
	}
	if contentType == "application/x-www-form-urlencoded" {
		return slices.Contains(formPaths, path)
	}
	return false
}

func requiresContentType(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

func extractContentType(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Split(header, ";")
	return strings.TrimSpace(parts[0])
}
