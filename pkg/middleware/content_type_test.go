package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"roamly/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Output: io.Discard})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestContentTypeValidationRejectsNonJSONBody(t *testing.T) {
	handler := ContentTypeValidation(testLogger())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/packages", strings.NewReader("x=1"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.JSONEq(t, `{"error":"Content-Type must be application/json"}`, rec.Body.String())
}

func TestContentTypeValidationAllowsJSON(t *testing.T) {
	handler := ContentTypeValidation(testLogger())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/packages", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContentTypeValidationAllowsFormOnListedPaths(t *testing.T) {
	handler := ContentTypeValidation(testLogger(), "/api/register")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("name=Asha"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContentTypeValidationRejectsFormOnOtherPaths(t *testing.T) {
	handler := ContentTypeValidation(testLogger(), "/api/register")(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/packages", strings.NewReader("name=Asha"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestContentTypeValidationIgnoresGET(t *testing.T) {
	handler := ContentTypeValidation(testLogger())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/packages", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
