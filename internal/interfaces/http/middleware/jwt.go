package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appidentity "github.com/rentdesk/backend/internal/application/identity"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// PrincipalKey is the gin context key of the authenticated *identity.Principal
	PrincipalKey  = "principal"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticator resolves a bearer token to its caller
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*appidentity.Principal, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// Authenticator is required
	Authenticator Authenticator
	// Logger is optional
	Logger *zap.Logger
}

// JWTAuthMiddleware rejects requests without a valid bearer token and stores
// the caller under PrincipalKey.
func JWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		// The scheme is case-insensitive
		if len(authHeader) < len(BearerPrefix) || !strings.EqualFold(authHeader[:len(BearerPrefix)], BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		token := strings.TrimSpace(authHeader[len(BearerPrefix):])
		if token == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		principal, err := cfg.Authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				log.Debug("JWT authentication failed",
					zap.String("path", c.Request.URL.Path),
					zap.String("reason", domainErr.Message))
				c.AbortWithStatusJSON(dto.GetHTTPStatus(domainErr.Code),
					dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, GetRequestID(c)))
				return
			}
			log.Error("JWT authentication error", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An unexpected error occurred", GetRequestID(c)))
			return
		}

		c.Set(PrincipalKey, principal)

		// later log lines of this request, SQL included, name the caller
		c.Request = c.Request.WithContext(logger.With(c.Request.Context(), zap.String("user_id", principal.UserID.String())))

		c.Next()
	}
}

// RequireAdmin must run after JWTAuthMiddleware
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !principal.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				shared.CodeForbidden, "Admin privileges required", GetRequestID(c)))
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the authenticated caller, or nil outside JWTAuthMiddleware
func GetPrincipal(c *gin.Context) *appidentity.Principal {
	if v, exists := c.Get(PrincipalKey); exists {
		if p, ok := v.(*appidentity.Principal); ok {
			return p
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(shared.CodeUnauthorized, message, GetRequestID(c)))
}
