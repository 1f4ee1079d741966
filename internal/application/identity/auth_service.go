package identity

import (
	"context"
	"errors"
	"time"

	"github.com/rentdesk/backend/internal/domain/identity"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates a user and issues an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username))

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to load user during login", zap.Error(err))
			return nil, err
		}
		s.logger.Warn("User not found during login", zap.String("username", input.Username))
		return nil, shared.ErrInvalidCredentials
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", input.Username))
		return nil, shared.ErrInvalidCredentials
	}

	if !user.CanLogin() {
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", input.Username))
		return nil, shared.NewDomainError(shared.CodeForbidden, "Account has been deactivated")
	}

	token, err := s.jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
	})
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, err
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Update(ctx, user); err != nil {
		// the token is already issued; a stale last_login_at is not worth failing for
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken: token.Token,
		TokenType:   "bearer",
		ExpiresAt:   token.ExpiresAt,
		ExpiresIn:   int64(s.jwtService.GetAccessTokenExpiration() / time.Second),
		User:        ToUserInfo(user),
	}, nil
}

// Authenticate resolves a bearer token to the caller. The token must be valid,
// not revoked, and belong to an existing active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.jwtService.ValidateAccessToken(token)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid or expired token")
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return nil, err
	}
	if revoked {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid user in token")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeUnauthorized, "Account does not exist or is disabled")
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Account does not exist or is disabled")
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return &Principal{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		TokenJTI:  claims.ID,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the caller's token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, principal *Principal) error {
	ttl := time.Until(principal.ExpiresAt)
	if principal.TokenJTI == "" || ttl <= 0 {
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, principal.TokenJTI, ttl); err != nil {
		s.logger.Error("Failed to revoke token", zap.Error(err))
		return err
	}

	s.logger.Info("User logged out", zap.String("user_id", principal.UserID.String()))
	return nil
}

// GetCurrentUser retrieves the current user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, principal *Principal) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}
