package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/accountsapi/auth"
	"github.com/princinho/accountsapi/models"
	"github.com/princinho/accountsapi/utils"
)

// AuthMiddleware gates a route group behind the session gate. Every denial
// (missing credential, bad token, insufficient role) gets the same response
// body so clients cannot probe for the reason.
func AuthMiddleware(gate *auth.Gate, required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claim, err := gate.Authorize(extractCredential(c), required)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": utils.UnauthorizedErr})
			return
		}

		c.Set("userID", claim.UserID)
		c.Set("role", string(claim.Role))
		c.Next()
	}
}

// extractCredential looks for the session cookie first, then an
// Authorization bearer header. Returns "" if neither is present.
func extractCredential(c *gin.Context) string {
	if cookie, err := c.Cookie(utils.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
