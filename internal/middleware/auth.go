package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/udaan-app/udaan-backend/internal/logger"
	"github.com/udaan-app/udaan-backend/internal/repos"
	"github.com/udaan-app/udaan-backend/internal/types"
)

const contextUserKey = "current_user"

// AuthOptional attaches the authenticated user to the context when a valid
// bearer token is present and silently continues without one otherwise.
// Routes that need a guaranteed identity stack RequireUser on top.
func AuthOptional(userRepo repos.UserRepo, secret string, baseLog *logger.Logger) gin.HandlerFunc {
	log := baseLog.With("middleware", "AuthOptional")
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Debug("Ignoring invalid bearer token", "error", err)
			c.Next()
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			c.Next()
			return
		}
		userID, err := uuid.Parse(sub)
		if err != nil {
			c.Next()
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), nil, userID)
		if err != nil {
			log.Debug("Token subject has no matching user", "user_id", userID)
			c.Next()
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireUser rejects requests that AuthOptional did not resolve to a user.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(contextUserKey); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *types.User {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*types.User)
	return user
}
