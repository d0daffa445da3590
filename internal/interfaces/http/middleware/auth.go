package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cloudcare/helpdesk/internal/infrastructure/auth"
	"github.com/cloudcare/helpdesk/internal/shared/constants"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
	"github.com/cloudcare/helpdesk/internal/shared/utils"
)

// TokenVerifier checks an access token and returns its subject.
type TokenVerifier interface {
	Verify(accessToken string) (*auth.Subject, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth accepts only "Authorization: Bearer <access token>". Identity
// and role come from the verified token, never from the request body.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("No token provided"))
			c.Abort()
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Invalid authorization header format"))
			c.Abort()
			return
		}

		sub, err := m.verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			m.logger.Debugw("failed to verify token", "error", err, "path", c.Request.URL.Path)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, sub.UserID)
		c.Set(constants.ContextKeyUserEmail, sub.Email)
		c.Set(constants.ContextKeyUserRole, sub.Role.String())

		c.Next()
	}
}
