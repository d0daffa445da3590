package usecases

import (
	"context"
	"fmt"

	"github.com/cloudcare/helpdesk/internal/application/auth/dto"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/infrastructure/metrics"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	issuer   TokenIssuer
	metrics  *metrics.Metrics
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	m *metrics.Metrics,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		metrics:  m,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.TokenResponse, error) {
	resp, err := uc.login(ctx, cmd)
	uc.metrics.Login(err == nil)
	return resp, err
}

func (uc *LoginUseCase) login(ctx context.Context, cmd LoginCommand) (*dto.TokenResponse, error) {
	email := user.NormalizeEmail(cmd.Email)

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existing == nil {
		uc.logger.Warnw("login attempt for unknown email", "email", email)
		return nil, errors.NewUnauthorizedError("Invalid credentials")
	}
	if !existing.IsActive() {
		return nil, errors.NewUnauthorizedError("Account is deactivated")
	}
	if err := uc.hasher.Verify(cmd.Password, existing.PasswordHash()); err != nil {
		uc.logger.Warnw("invalid password", "user_id", existing.ID())
		return nil, errors.NewUnauthorizedError("Invalid credentials")
	}

	if uc.hasher.NeedsRehash(existing.PasswordHash()) {
		uc.rehash(existing, cmd.Password)
	}

	existing.RecordLogin()
	if err := uc.userRepo.Update(ctx, existing); err != nil {
		uc.logger.Errorw("failed to record login", "user_id", existing.ID(), "error", err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	pair, err := uc.issuer.Issue(ctx, existing)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("user logged in", "user_id", existing.ID())

	return dto.ToTokenResponse(pair), nil
}

// rehash upgrades a hash made at an older cost. Failure keeps the old hash.
func (uc *LoginUseCase) rehash(u *user.User, password string) {
	hash, err := uc.hasher.Hash(password)
	if err == nil {
		err = u.ChangePassword(hash)
	}
	if err != nil {
		uc.logger.Warnw("failed to upgrade password hash", "user_id", u.ID(), "error", err)
		return
	}
	uc.logger.Infow("password hash upgraded", "user_id", u.ID())
}
