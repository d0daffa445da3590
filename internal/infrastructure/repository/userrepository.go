package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/models"
	"github.com/cloudcare/helpdesk/internal/shared/db"
	apperrors "github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

// UserRepository implements user.Repository on gorm.
type UserRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

var _ user.Repository = (*UserRepository)(nil)

// Create inserts the user and assigns its id. A taken email is a conflict.
func (r *UserRepository) Create(ctx context.Context, userEntity *user.User) error {
	model := mappers.UserToModel(userEntity)
	model.ID = uuid.NewString()

	if err := db.GetTxFromContext(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("User with this email already exists")
		}
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := userEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created successfully", "id", model.ID, "email", model.Email)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail expects a normalised address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) first(ctx context.Context, cond string, arg any) (*user.User, error) {
	var model models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user", "condition", cond, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	entity, err := mappers.UserToDomain(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map user: %w", err)
	}
	return entity, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}

	var rows []models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to get users by IDs", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}

	users, err := mappers.UsersToDomain(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to map users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// Update writes the mutable columns of an existing user.
func (r *UserRepository) Update(ctx context.Context, userEntity *user.User) error {
	model := mappers.UserToModel(userEntity)

	err := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"password_hash": model.PasswordHash,
			"first_name":    model.FirstName,
			"last_name":     model.LastName,
			"role":          model.Role,
			"is_active":     model.IsActive,
			"last_login_at": model.LastLoginAt,
			"updated_at":    model.UpdatedAt,
		}).Error
	if err != nil {
		r.logger.Errorw("failed to update user", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
