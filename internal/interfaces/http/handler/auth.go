package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/application/identity"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login exchanges username and password for an access token.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresIn:   result.ExpiresIn,
		ExpiresAt:   formatTime(result.ExpiresAt),
	})
}

// Logout revokes the token the request was made with.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), principal); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Logged out successfully"})
}

// Me returns the authenticated user.
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toUserResponse(*user))
}
