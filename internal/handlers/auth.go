package handlers

import (
	"errors"
	"net/http"

	"attrition-go/internal/models"
	"attrition-go/internal/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Session and context keys shared with the router middleware.
const (
	UserIDSessionKey = "userID"
	UserContextKey   = "user"
	CSRFContextKey   = "csrf_token"
)

type AuthHandler struct {
	log *zap.Logger
}

func NewAuthHandler(log *zap.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	user, err := repository.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.log.Error("Failed to look up user", zap.Error(err))
	}
	if err != nil || !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	session := sessions.Default(c)
	session.Set(UserIDSessionKey, user.ID)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	h.log.Info("Admin logged in", zap.Uint("userID", user.ID))
	c.JSON(http.StatusOK, gin.H{"email": user.Email})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Session reports the CSRF token for this session and whether an admin is
// logged in.
func (h *AuthHandler) Session(c *gin.Context) {
	token, _ := c.Get(CSRFContextKey)
	resp := gin.H{"csrfToken": token, "authenticated": false}
	if user, ok := CurrentUser(c); ok {
		resp["authenticated"] = true
		resp["email"] = user.Email
	}
	c.JSON(http.StatusOK, resp)
}

// CurrentUser returns the admin loaded for this request, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(UserContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
