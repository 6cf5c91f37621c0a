package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabinrental/internal/domain"
	"cabinrental/internal/pkg/jwt"
	"cabinrental/internal/pkg/response"
)

const adminIdentityKey = "admin_identity"

// AdminSession requires a valid session cookie and stores the admin identity
// on the gin context for handlers to pick up with AdminFromContext.
func AdminSession(jwtService *jwt.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Admin session required")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "INVALID_SESSION", "Session is invalid or expired")
			return
		}

		SetAdmin(c, domain.AdminIdentity{AdminID: claims.AdminID, Username: claims.Username})
		c.Next()
	}
}

func SetAdmin(c *gin.Context, admin domain.AdminIdentity) {
	c.Set(adminIdentityKey, admin)
}

func AdminFromContext(c *gin.Context) (domain.AdminIdentity, bool) {
	v, ok := c.Get(adminIdentityKey)
	if !ok {
		return domain.AdminIdentity{}, false
	}
	admin, ok := v.(domain.AdminIdentity)
	if !ok || admin.IsZero() {
		return domain.AdminIdentity{}, false
	}
	return admin, true
}
