package middleware

import (
	"net/http"
	"strings"

	"auth/models"
	"auth/utils"

	"github.com/gin-gonic/gin"
)

// JWTMiddleware rejects requests without a valid Bearer token and stores the
// authenticated identity in the gin context.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalJWTMiddleware stores the identity when a valid token is present
// but never rejects the request.
func OptionalJWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := claimsFromHeader(c); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context) (*utils.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}

	claims, err := utils.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}

	return claims, true
}

func setIdentity(c *gin.Context, claims *utils.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
	c.Set("user_handle", claims.Handle)
	c.Set("user_roles", claims.Roles)
}

// GetUserID returns the authenticated user's id
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// GetUserEmail returns the authenticated user's email
func GetUserEmail(c *gin.Context) (string, bool) {
	value, exists := c.Get("user_email")
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	return email, ok
}

// GetUserHandle returns the authenticated user's campus handle. The handle
// is the identity the ladder operates on.
func GetUserHandle(c *gin.Context) (string, bool) {
	value, exists := c.Get("user_handle")
	if !exists {
		return "", false
	}
	handle, ok := value.(string)
	return handle, ok
}

// HasRole checks the authenticated user's token roles without a database
// lookup. Use RequireRole when the check must reflect current database
// state.
func HasRole(c *gin.Context, role string) bool {
	value, exists := c.Get("user_roles")
	if !exists {
		return false
	}
	roles, ok := value.(models.Roles)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
