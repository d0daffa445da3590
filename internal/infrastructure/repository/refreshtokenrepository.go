package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cloudcare/helpdesk/internal/domain/token"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/models"
	tokendigest "github.com/cloudcare/helpdesk/internal/infrastructure/token"
	"github.com/cloudcare/helpdesk/internal/shared/biztime"
	"github.com/cloudcare/helpdesk/internal/shared/db"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

// RefreshTokenRepository keys rows by the digest of the token. Callers
// always pass and receive the plain token.
type RefreshTokenRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewRefreshTokenRepository(db *gorm.DB, logger logger.Interface) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

var _ token.Repository = (*RefreshTokenRepository)(nil)

func (r *RefreshTokenRepository) Create(ctx context.Context, t *token.RefreshToken) error {
	model := mappers.RefreshTokenToModel(uuid.NewString(), t)
	model.Token = tokendigest.Digest(t.Token)
	if err := db.GetTxFromContext(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		r.logger.Errorw("failed to store refresh token", "user_id", t.UserID, "error", err)
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, tokenString string) (*token.RefreshToken, error) {
	var model models.RefreshTokenModel
	if err := db.GetTxFromContext(ctx, r.db).Where("token = ?", tokendigest.Digest(tokenString)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	found := mappers.RefreshTokenToDomain(&model)
	found.Token = tokenString
	return found, nil
}

func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, tokenString string) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("token = ?", tokendigest.Digest(tokenString)).Delete(&models.RefreshTokenModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete refresh token: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *RefreshTokenRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).Delete(&models.RefreshTokenModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to revoke refresh tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("expires_at <= ?", biztime.NowUTC()).Delete(&models.RefreshTokenModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge expired refresh tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
