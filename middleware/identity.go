package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastehub/tastehub-api/config"
	"github.com/tastehub/tastehub-api/models"
)

// Identity arrives as a trusted User-Email header set by the external
// identity provider in front of this service. The middleware never verifies
// it; it only resolves the role for admin-gated routes.

const userEmailHeader = "User-Email"

// GetUserEmail extracts the caller's email from the request headers
func GetUserEmail(c *gin.Context) (string, error) {
	email := c.GetHeader(userEmailHeader)
	if email == "" {
		return "", errors.New("user email header missing")
	}
	return email, nil
}

// RequireAdmin gates a route to members of the admin pool. It resolves the
// role from the users table on every request so role changes apply
// immediately.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, err := GetUserEmail(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "User email required",
				},
			})
			return
		}

		db := config.GetDB()
		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil || user.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Admin access required",
				},
			})
			return
		}

		c.Set("user_email", email)
		c.Next()
	}
}
