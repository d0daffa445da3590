package usecases

import (
	"context"
	"fmt"

	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

type LogoutCommand struct {
	RefreshToken string
}

type LogoutUseCase struct {
	issuer TokenIssuer
	logger logger.Interface
}

func NewLogoutUseCase(issuer TokenIssuer, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{
		issuer: issuer,
		logger: logger,
	}
}

// Execute revokes the refresh token. Logging out twice succeeds.
func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	if err := uc.issuer.Revoke(ctx, cmd.RefreshToken); err != nil {
		uc.logger.Errorw("failed to revoke refresh token", "error", err)
		return fmt.Errorf("failed to logout: %w", err)
	}

	uc.logger.Infow("user logged out successfully")

	return nil
}
