package router

import (
	"net/http"

	"attrition-go/internal/handlers"
	"attrition-go/internal/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserLoaderMiddleware checks for a userID in the session.
// If found, it loads the user from the database and adds it to the context.
// This ensures we don't have "zombie" sessions for users who no longer exist.
func UserLoaderMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(handlers.UserIDSessionKey).(uint)
		if !ok {
			c.Next()
			return
		}

		user, err := repository.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			log.Warn("Clearing session for unknown user", zap.Uint("userID", userID), zap.Error(err))
			session.Delete(handlers.UserIDSessionKey)
			session.Save()
			c.Next()
			return
		}

		c.Set(handlers.UserContextKey, user)
		c.Next()
	}
}

// AuthRequired rejects requests without a logged-in admin.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(handlers.UserContextKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		c.Next()
	}
}
