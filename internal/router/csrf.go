package router

import (
	"net/http"

	"attrition-go/internal/handlers"
	"attrition-go/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	csrfTokenSessionKey = "csrf_token"
	csrfTokenFormKey    = "_csrf"
	csrfTokenHeaderKey  = "X-CSRF-Token"
)

// CSRFProtection issues a per-session token and requires it back on every
// state-changing request, in the X-CSRF-Token header or the _csrf form
// field.
func CSRFProtection() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		token, _ := session.Get(csrfTokenSessionKey).(string)
		if token == "" {
			newToken, err := utils.GenerateSecureToken(32)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to generate CSRF token"})
				return
			}
			token = newToken
			session.Set(csrfTokenSessionKey, token)
			if err := session.Save(); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
				return
			}
		}

		c.Set(handlers.CSRFContextKey, token)

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			submitted := c.GetHeader(csrfTokenHeaderKey)
			if submitted == "" {
				submitted = c.PostForm(csrfTokenFormKey)
			}
			if submitted == "" || submitted != token {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid CSRF token"})
				return
			}
		}

		c.Next()
	}
}
