package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shopkart-io/shopkart/internal/server/auth"
)

const contextUserID = "userID"

// requireAuth verifies the bearer token and stores the authenticated user's
// id on the request context. Missing, malformed or expired tokens all yield
// 401 with a detail message.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"detail": "Authentication credentials were not provided."})
			return
		}

		claims, err := auth.ParseAccessToken(token, s.secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"detail": "Given token not valid for any token type"})
			return
		}

		c.Set(contextUserID, claims.UserID)
		c.Next()
	}
}

func userID(c *gin.Context) int64 {
	return c.GetInt64(contextUserID)
}
