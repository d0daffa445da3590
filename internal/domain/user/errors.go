package user

import (
	"github.com/cloudcare/helpdesk/internal/shared/errors"
)

// NewDomainError reports an invariant violation on the user aggregate.
func NewDomainError(message string, details ...string) *errors.AppError {
	return errors.NewValidationError(message, details...)
}
