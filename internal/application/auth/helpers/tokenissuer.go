package helpers

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cloudcare/helpdesk/internal/domain/token"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/infrastructure/auth"
	"github.com/cloudcare/helpdesk/internal/infrastructure/metrics"
	"github.com/cloudcare/helpdesk/internal/shared/db"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

const TokenTypeBearer = "Bearer"

// TokenSigner signs and verifies the two JWT kinds.
type TokenSigner interface {
	GenerateAccess(sub auth.Subject) (*auth.SignedToken, error)
	GenerateRefresh(sub auth.Subject) (*auth.SignedToken, error)
	VerifyAccess(tokenString string) (*auth.Claims, error)
	VerifyRefresh(tokenString string) (*auth.Claims, error)
	AccessTTL() time.Duration
}

// TokenPair is what a client receives after login or refresh. ExpiresIn is
// the access token lifetime in seconds.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	TokenType    string
}

// TokenIssuer mints token pairs and owns the refresh token lifecycle.
// Refresh tokens are single use: a successful refresh deletes the
// presented row before a new pair is stored.
type TokenIssuer struct {
	signer    TokenSigner
	tokenRepo token.Repository
	userRepo  user.Repository
	txManager db.Transactor
	metrics   *metrics.Metrics
	logger    logger.Interface
}

func NewTokenIssuer(
	signer TokenSigner,
	tokenRepo token.Repository,
	userRepo user.Repository,
	txManager db.Transactor,
	m *metrics.Metrics,
	logger logger.Interface,
) *TokenIssuer {
	return &TokenIssuer{
		signer:    signer,
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		txManager: txManager,
		metrics:   m,
		logger:    logger,
	}
}

func subjectOf(u *user.User) auth.Subject {
	return auth.Subject{UserID: u.ID(), Email: u.Email(), Role: u.Role()}
}

// Issue signs a new pair for the user and stores the refresh token.
func (i *TokenIssuer) Issue(ctx context.Context, u *user.User) (*TokenPair, error) {
	sub := subjectOf(u)

	access, err := i.signer.GenerateAccess(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := i.signer.GenerateRefresh(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	row, err := token.NewRefreshToken(refresh.Token, u.ID(), refresh.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if err := i.tokenRepo.Create(ctx, row); err != nil {
		i.logger.Errorw("failed to store refresh token", "user_id", u.ID(), "error", err)
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		ExpiresIn:    int64(i.signer.AccessTTL() / time.Second),
		TokenType:    TokenTypeBearer,
	}, nil
}

// Refresh exchanges a stored refresh token for a new pair. Expired rows are
// removed before the call fails.
func (i *TokenIssuer) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	pair, err := i.refresh(ctx, presented)
	i.metrics.TokenRefresh(err == nil)
	return pair, err
}

func (i *TokenIssuer) refresh(ctx context.Context, presented string) (*TokenPair, error) {
	if _, err := i.signer.VerifyRefresh(presented); err != nil {
		i.logger.Warnw("refresh token failed verification", "error", err)
		return nil, errors.NewUnauthorizedError("Invalid refresh token")
	}

	var (
		pair    *TokenPair
		expired bool
	)
	err := i.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		stored, err := i.tokenRepo.GetByToken(ctx, presented)
		if err != nil {
			return fmt.Errorf("failed to load refresh token: %w", err)
		}
		if stored == nil {
			return errors.NewUnauthorizedError("Invalid refresh token")
		}

		removed, err := i.tokenRepo.DeleteByToken(ctx, presented)
		if err != nil {
			return fmt.Errorf("failed to delete refresh token: %w", err)
		}
		if !removed {
			// consumed by a concurrent refresh
			return errors.NewUnauthorizedError("Invalid refresh token")
		}
		if stored.IsExpired() {
			// commit the delete, fail after the transaction
			expired = true
			return nil
		}

		owner, err := i.userRepo.GetByID(ctx, stored.UserID)
		if err != nil {
			return fmt.Errorf("failed to load token owner: %w", err)
		}
		if owner == nil {
			return errors.NewUnauthorizedError("Invalid refresh token")
		}
		if !owner.IsActive() {
			return errors.NewUnauthorizedError("Account is deactivated")
		}

		pair, err = i.Issue(ctx, owner)
		return err
	})
	if err != nil {
		if !errors.IsUnauthorizedError(err) {
			i.logger.Errorw("token refresh failed", "error", err)
		}
		return nil, err
	}
	if expired {
		return nil, errors.NewUnauthorizedError("Refresh token expired")
	}
	return pair, nil
}

// Revoke deletes the refresh token. Unknown tokens are not an error.
func (i *TokenIssuer) Revoke(ctx context.Context, refreshToken string) error {
	if _, err := i.tokenRepo.DeleteByToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAll deletes every refresh token of the user.
func (i *TokenIssuer) RevokeAll(ctx context.Context, userID string) error {
	n, err := i.tokenRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	i.logger.Infow("revoked refresh tokens", "user_id", userID, "count", n)
	return nil
}

// Verify checks an access token without touching the store.
func (i *TokenIssuer) Verify(accessToken string) (*auth.Subject, error) {
	claims, err := i.signer.VerifyAccess(accessToken)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewUnauthorizedError("Token expired")
		}
		return nil, errors.NewUnauthorizedError("Invalid token")
	}
	sub := claims.Subject()
	return &sub, nil
}

// PurgeExpired removes refresh tokens past their expiry.
func (i *TokenIssuer) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := i.tokenRepo.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired refresh tokens: %w", err)
	}
	return n, nil
}
