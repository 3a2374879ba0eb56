package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kadoshsoftwares/quickcart-api/pkg/global"
)

const userIDKey = "userID"

// AuthMiddleware resolves the caller's identity from a bearer token issued
// by the external identity provider. The subject claim carries the user id.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Authorization header required", []global.ValidationError{
				{Field: "Authorization", Message: "bearer token is required", Code: "required"},
			}))
			c.Abort()
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid token format", []global.ValidationError{
				{Field: "Authorization", Message: "expected 'Bearer <token>'", Code: "invalid_format"},
			}))
			c.Abort()
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid or expired token", nil))
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Next()
	}
}
