package httputil

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const MatchCookieName = "match_token"

// MatchCookiePath scopes a match token cookie to that match's routes, so a
// browser can hold tokens for several matches at once
func MatchCookiePath(matchID string) string {
	return "/api/matches/" + matchID
}

func SetMatchCookie(w http.ResponseWriter, matchID, token string, ttl time.Duration, isProduction bool) {
	cookie := &http.Cookie{
		Name:     MatchCookieName,
		Value:    token,
		Path:     MatchCookiePath(matchID),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   isProduction, // Only require HTTPS in production
	}

	// SameSite=None requires Secure=true, so use Lax for development
	if isProduction {
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, cookie)
}

func ClearMatchCookie(w http.ResponseWriter, matchID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     MatchCookieName,
		Value:    "",
		Path:     MatchCookiePath(matchID),
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// GetTokenFromRequest reads the match token from the cookie, falling back to
// an "Authorization: Bearer" header for clients without cookies
func GetTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(MatchCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader != "" {
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return strings.TrimSpace(token), nil
		}
		return authHeader, nil
	}

	return "", errors.New("no match token found in cookie or header")
}
