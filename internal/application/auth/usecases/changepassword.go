package usecases

import (
	"context"
	"fmt"

	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/shared/db"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

type ChangePasswordCommand struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordUseCase replaces the password and signs the user out of
// every device by revoking all refresh tokens.
type ChangePasswordUseCase struct {
	userRepo  user.Repository
	hasher    PasswordHasher
	issuer    TokenIssuer
	txManager db.Transactor
	logger    logger.Interface
}

func NewChangePasswordUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	txManager db.Transactor,
	logger logger.Interface,
) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userRepo:  userRepo,
		hasher:    hasher,
		issuer:    issuer,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	uc.logger.Infow("executing change password use case", "user_id", cmd.UserID)

	existing, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", cmd.UserID, "error", err)
		return fmt.Errorf("failed to get user: %w", err)
	}
	if existing == nil {
		return errors.NewBadRequestError("User not found")
	}

	if err := uc.hasher.Verify(cmd.CurrentPassword, existing.PasswordHash()); err != nil {
		uc.logger.Warnw("current password mismatch", "user_id", cmd.UserID)
		return errors.NewBadRequestError("Current password is incorrect")
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := existing.ChangePassword(hash); err != nil {
		return err
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Update(ctx, existing); err != nil {
			return fmt.Errorf("failed to save user updates: %w", err)
		}
		return uc.issuer.RevokeAll(ctx, existing.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to change password", "user_id", cmd.UserID, "error", err)
		return err
	}

	uc.logger.Infow("password changed successfully", "user_id", cmd.UserID)

	return nil
}
