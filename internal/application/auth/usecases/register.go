package usecases

import (
	"context"
	"fmt"

	"github.com/cloudcare/helpdesk/internal/application/auth/dto"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

type RegisterCommand struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegisterUseCase signs up a USER account
type RegisterUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewRegisterUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*dto.UserResponse, error) {
	email := user.NormalizeEmail(cmd.Email)

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to check email", "error", err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("User with this email already exists")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := user.NewUser(email, hash, cmd.FirstName, cmd.LastName, user.RoleUser)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	uc.logger.Infow("new user registered", "user_id", newUser.ID(), "email", newUser.Email())

	return dto.ToUserResponse(newUser), nil
}
