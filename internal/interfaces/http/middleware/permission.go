package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/cloudcare/helpdesk/internal/domain/access"
	"github.com/cloudcare/helpdesk/internal/shared/constants"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
	"github.com/cloudcare/helpdesk/internal/shared/utils"
)

// PermissionChecker answers role level questions before a handler runs.
type PermissionChecker interface {
	Enforce(role string, op access.Operation) (bool, error)
}

type PermissionMiddleware struct {
	checker PermissionChecker
	logger  logger.Interface
}

func NewPermissionMiddleware(checker PermissionChecker, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		checker: checker,
		logger:  logger,
	}
}

// RequirePermission must run after RequireAuth.
func (m *PermissionMiddleware) RequirePermission(op access.Operation, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyUserRole)
		if role == "" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Authentication required"))
			c.Abort()
			return
		}

		allowed, err := m.checker.Enforce(role, op)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "role", role, "operation", op)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied",
				"user_id", c.GetString(constants.ContextKeyUserID),
				"role", role,
				"operation", op,
			)
			utils.ErrorResponseWithError(c, errors.NewForbiddenError(message))
			c.Abort()
			return
		}

		c.Next()
	}
}
