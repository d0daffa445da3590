package usecases

import (
	"context"
	"fmt"

	"github.com/cloudcare/helpdesk/internal/application/auth/dto"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

type GetCurrentUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetCurrentUserUseCase(userRepo user.Repository, logger logger.Interface) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Execute loads the token subject. A subject that no longer exists is
// treated as an invalid credential.
func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, userID string) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, errors.NewUnauthorizedError("User not found")
	}

	return dto.ToUserResponse(u), nil
}
