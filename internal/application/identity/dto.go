package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/identity"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	ExpiresIn   int64 // seconds
	User        UserInfo
}

// UserInfo is the public view of a user
type UserInfo struct {
	ID          uuid.UUID
	Username    string
	Role        identity.Role
	IsActive    bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

// Principal is the authenticated caller of a request
type Principal struct {
	UserID    uuid.UUID
	Username  string
	Role      identity.Role
	TokenJTI  string
	ExpiresAt time.Time
}

// IsAdmin returns true if the caller has the admin role
func (p *Principal) IsAdmin() bool {
	return p.Role == identity.RoleAdmin
}

// CreateUserInput contains the input for creating a user
type CreateUserInput struct {
	Username string
	Password string
	Role     identity.Role
}

// ToUserInfo converts a domain user to UserInfo
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
