package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-classic/pkg/auth"
	"github.com/iamasit07/connect4-classic/pkg/httputil"
)

const MatchIDKey = "match_id"

// MatchAuthMiddleware only lets requests through that carry a token issued
// for the match named by the :id route parameter
func MatchAuthMiddleware(signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID := c.Param("id")

		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := signer.Authorize(tokenString, matchID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(MatchIDKey, matchID)
		c.Next()
	}
}
