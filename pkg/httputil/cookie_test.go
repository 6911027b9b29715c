package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMatchCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetMatchCookie(rec, "abc", "tok", time.Hour, false)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, MatchCookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/api/matches/abc", c.Path)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestSetMatchCookieProduction(t *testing.T) {
	rec := httptest.NewRecorder()
	SetMatchCookie(rec, "abc", "tok", time.Hour, true)

	c := rec.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
}

func TestGetTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetTokenFromRequest(req)
	assert.Error(t, err)

	req.Header.Set("Authorization", "Bearer from-header")
	token, err := GetTokenFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "from-header", token)

	req.AddCookie(&http.Cookie{Name: MatchCookieName, Value: "from-cookie"})
	token, err = GetTokenFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "from-cookie", token)
}
