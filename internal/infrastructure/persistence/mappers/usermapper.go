package mappers

import (
	"github.com/cloudcare/helpdesk/internal/domain/token"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/models"
	"github.com/cloudcare/helpdesk/internal/shared/mapper"
)

// UserToModel converts a user aggregate to its persistence model.
func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		FirstName:    u.FirstName(),
		LastName:     u.LastName(),
		Role:         u.Role().String(),
		IsActive:     u.IsActive(),
		LastLoginAt:  u.LastLoginAt(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func UserToDomain(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}
	return user.ReconstructUser(
		model.ID,
		model.Email,
		model.PasswordHash,
		model.FirstName,
		model.LastName,
		user.Role(model.Role),
		model.IsActive,
		model.LastLoginAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func UsersToDomain(rows []models.UserModel) ([]*user.User, error) {
	return mapper.MapSliceWithError(rows, func(m models.UserModel) (*user.User, error) {
		return UserToDomain(&m)
	})
}

func RefreshTokenToModel(id string, t *token.RefreshToken) *models.RefreshTokenModel {
	return &models.RefreshTokenModel{
		ID:        id,
		Token:     t.Token,
		UserID:    t.UserID,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}

func RefreshTokenToDomain(model *models.RefreshTokenModel) *token.RefreshToken {
	if model == nil {
		return nil
	}
	return &token.RefreshToken{
		Token:     model.Token,
		UserID:    model.UserID,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
	}
}
