package middleware

import (
	"context"
	"net/http"
	"strings"

	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// OptionalEmployerAuth identifies the calling employer from a bearer token
// or the auth_token cookie. Requests without a token pass through
// anonymously; a token that fails verification is rejected.
func OptionalEmployerAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string
		if header := c.GetHeader("Authorization"); header != "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		} else if cookie, err := c.Cookie("auth_token"); err == nil {
			tokenString = cookie
		}

		if tokenString == "" || !tokens.Enabled() {
			c.Next()
			return
		}

		employerID, err := tokens.ParseEmployerToken(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyEmployerID), employerID)
		ctx := context.WithValue(c.Request.Context(), domain.KeyEmployerID, employerID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
