// internal/api/middleware/auth.go
package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/satishkumarramakoti33/sb-works/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	authorizationHeader = "Authorization"

	// IdentityContextKey is the gin context key holding the validated
	// models.Identity for the request.
	IdentityContextKey = "identity"
)

// tokenClaims mirrors the claims minted by the user service: subject is the
// user ID, Role the role string.
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuthMiddleware creates a Gin middleware that validates the bearer token
// and attaches the caller identity to the context. The role string is
// normalized to the enum exactly once, here at the boundary.
func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
			return
		}

		token, err := jwt.ParseWithClaims(headerParts[1], &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			log.Printf("Auth middleware: Error parsing token: %v", err)
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		claims, ok := token.Claims.(*tokenClaims)
		if !ok || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			log.Printf("Auth middleware: Error parsing user ID from token subject '%s': %v", claims.Subject, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user identifier in token"})
			return
		}
		role, err := models.ParseRole(claims.Role)
		if err != nil {
			log.Printf("Auth middleware: Invalid role in token for user %s: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid role in token"})
			return
		}

		c.Set(IdentityContextKey, models.Identity{UserID: userID, Role: role})
		c.Next()
	}
}

// GetIdentityFromContext returns the validated caller identity stored by
// JWTAuthMiddleware.
func GetIdentityFromContext(c *gin.Context) (models.Identity, error) {
	identityAny, exists := c.Get(IdentityContextKey)
	if !exists {
		return models.Identity{}, errors.New("identity not found in context")
	}
	identity, ok := identityAny.(models.Identity)
	if !ok {
		return models.Identity{}, errors.New("identity in context is of invalid type")
	}
	return identity, nil
}
