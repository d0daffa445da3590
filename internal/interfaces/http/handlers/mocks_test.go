package handlers

import (
	"context"

	"github.com/cloudcare/helpdesk/internal/application/auth/dto"
	"github.com/cloudcare/helpdesk/internal/application/auth/usecases"
)

type mockRegisterUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.RegisterCommand) (*dto.UserResponse, error)
}

func (m *mockRegisterUC) Execute(ctx context.Context, cmd usecases.RegisterCommand) (*dto.UserResponse, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockLoginUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.LoginCommand) (*dto.TokenResponse, error)
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd usecases.LoginCommand) (*dto.TokenResponse, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockRefreshTokenUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.RefreshTokenCommand) (*dto.TokenResponse, error)
}

func (m *mockRefreshTokenUC) Execute(ctx context.Context, cmd usecases.RefreshTokenCommand) (*dto.TokenResponse, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockLogoutUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.LogoutCommand) error
}

func (m *mockLogoutUC) Execute(ctx context.Context, cmd usecases.LogoutCommand) error {
	return m.ExecuteFunc(ctx, cmd)
}

type mockGetCurrentUserUC struct {
	ExecuteFunc func(ctx context.Context, userID string) (*dto.UserResponse, error)
}

func (m *mockGetCurrentUserUC) Execute(ctx context.Context, userID string) (*dto.UserResponse, error) {
	return m.ExecuteFunc(ctx, userID)
}

type mockChangePasswordUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.ChangePasswordCommand) error
}

func (m *mockChangePasswordUC) Execute(ctx context.Context, cmd usecases.ChangePasswordCommand) error {
	return m.ExecuteFunc(ctx, cmd)
}
