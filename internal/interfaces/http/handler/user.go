package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/rentdesk/backend/internal/application/identity"
	"github.com/rentdesk/backend/internal/domain/identity"
	"github.com/samber/lo"
)

// UserHandler handles user management requests. Every route is admin-only.
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List returns every user.
// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := lo.Map(users, func(u appidentity.UserInfo, _ int) UserResponse {
		return toUserResponse(u)
	})
	h.SuccessList(c, resp, len(resp))
}

// Create adds a user. A taken username is a 400.
// POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), appidentity.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     identity.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toUserResponse(*user))
}
