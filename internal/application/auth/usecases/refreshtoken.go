package usecases

import (
	"context"

	"github.com/cloudcare/helpdesk/internal/application/auth/dto"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenUseCase struct {
	issuer TokenIssuer
	logger logger.Interface
}

func NewRefreshTokenUseCase(issuer TokenIssuer, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		issuer: issuer,
		logger: logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*dto.TokenResponse, error) {
	pair, err := uc.issuer.Refresh(ctx, cmd.RefreshToken)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("token refreshed successfully")

	return dto.ToTokenResponse(pair), nil
}
