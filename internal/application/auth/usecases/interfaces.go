package usecases

import (
	"context"

	"github.com/cloudcare/helpdesk/internal/application/auth/helpers"
	"github.com/cloudcare/helpdesk/internal/domain/user"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
	NeedsRehash(hash string) bool
}

// TokenIssuer is the part of helpers.TokenIssuer the use cases call.
type TokenIssuer interface {
	Issue(ctx context.Context, u *user.User) (*helpers.TokenPair, error)
	Refresh(ctx context.Context, presented string) (*helpers.TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
	RevokeAll(ctx context.Context, userID string) error
}

var _ TokenIssuer = (*helpers.TokenIssuer)(nil)
