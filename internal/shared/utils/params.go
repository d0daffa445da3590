package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cloudcare/helpdesk/internal/shared/constants"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
)

// ParseUUIDParam reads a UUID path parameter. entityName is used in the
// error message (e.g. "ticket").
func ParseUUIDParam(c *gin.Context, paramName, entityName string) (string, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return "", errors.NewValidationError("Validation failed", entityName+" ID is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", errors.NewValidationError("Validation failed", "invalid "+entityName+" ID format")
	}
	return parsed.String(), nil
}

// GetAuthIdentity returns the user id and role stored by the auth middleware.
func GetAuthIdentity(c *gin.Context) (userID, role string, err error) {
	userID = c.GetString(constants.ContextKeyUserID)
	role = c.GetString(constants.ContextKeyUserRole)
	if userID == "" || role == "" {
		return "", "", errors.NewUnauthorizedError("Authentication required")
	}
	return userID, role, nil
}
