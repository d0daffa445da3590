// Package token models persisted refresh tokens.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudcare/helpdesk/internal/shared/biztime"
)

// RefreshToken is a single-use credential exchanged for a new token pair.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func NewRefreshToken(token, userID string, expiresAt time.Time) (*RefreshToken, error) {
	if token == "" {
		return nil, fmt.Errorf("token is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	return &RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: biztime.NowUTC(),
	}, nil
}

func (t *RefreshToken) IsExpired() bool {
	return !biztime.NowUTC().Before(t.ExpiresAt)
}

// Repository persists refresh tokens. GetByToken returns nil, nil when absent.
type Repository interface {
	Create(ctx context.Context, token *RefreshToken) error
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	// DeleteByToken reports whether a row was removed
	DeleteByToken(ctx context.Context, token string) (bool, error)
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}
