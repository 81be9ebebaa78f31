package token

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCookie = "admin_token"

func newTestManager(ttl time.Duration) *Manager {
	return NewManager("test-secret", ttl, testCookie)
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager(time.Hour)

	signed, err := m.Issue("user-1", "admin@example.com", "Admin")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "Admin", claims.Name)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	m := newTestManager(-time.Minute)

	signed, err := m.Issue("user-1", "admin@example.com", "Admin")
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := newTestManager(time.Hour).Issue("user-1", "a@b.co", "A")
	require.NoError(t, err)

	other := NewManager("different-secret", time.Hour, testCookie)
	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyEmptyToken(t *testing.T) {
	_, err := newTestManager(time.Hour).Verify("")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestVerifyGarbageToken(t *testing.T) {
	_, err := newTestManager(time.Hour).Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractPrefersAuthorizationHeader(t *testing.T) {
	m := newTestManager(time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	r.AddCookie(&http.Cookie{Name: testCookie, Value: "cookie-token"})

	assert.Equal(t, "header-token", m.Extract(r))
}

func TestExtractFallsBackToCookie(t *testing.T) {
	m := newTestManager(time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil)
	r.AddCookie(&http.Cookie{Name: testCookie, Value: "cookie-token"})

	assert.Equal(t, "cookie-token", m.Extract(r))
}

func TestExtractNoCredential(t *testing.T) {
	m := newTestManager(time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil)
	assert.Empty(t, m.Extract(r))
}

func TestExtractIgnoresNonBearerScheme(t *testing.T) {
	m := newTestManager(time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	assert.Empty(t, m.Extract(r))
}
