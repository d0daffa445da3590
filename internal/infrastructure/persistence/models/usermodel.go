package models

import (
	"time"

	"github.com/cloudcare/helpdesk/internal/shared/constants"
)

// UserModel represents the database persistence model for users
type UserModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `gorm:"not null;size:255"`
	FirstName    string `gorm:"not null;size:100"`
	LastName     string `gorm:"not null;size:100"`
	Role         string `gorm:"not null;default:USER;size:20;index"`
	IsActive     bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}

// RefreshTokenModel stores issued refresh tokens until rotation or revocation.
type RefreshTokenModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Token     string    `gorm:"uniqueIndex;not null;size:512"`
	UserID    string    `gorm:"not null;size:36;index"`
	User      UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (RefreshTokenModel) TableName() string {
	return constants.TableRefreshTokens
}
