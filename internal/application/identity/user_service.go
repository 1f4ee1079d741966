package identity

import (
	"context"

	"github.com/rentdesk/backend/internal/domain/identity"
	"github.com/rentdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService manages operator accounts
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers returns every user ordered by username
func (s *UserService) ListUsers(ctx context.Context) ([]UserInfo, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]UserInfo, len(users))
	for i, u := range users {
		infos[i] = ToUserInfo(u)
	}
	return infos, nil
}

// CreateUser creates a new active user
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Username already exists")
	}

	user, err := identity.NewUser(input.Username, input.Password, input.Role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()))

	info := ToUserInfo(user)
	return &info, nil
}

// EnsureAdmin creates the administrator account unless the username is taken.
// It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if _, err := s.CreateUser(ctx, CreateUserInput{
		Username: username,
		Password: password,
		Role:     identity.RoleAdmin,
	}); err != nil {
		return false, err
	}

	s.logger.Info("Bootstrap administrator created", zap.String("username", username))
	return true, nil
}
