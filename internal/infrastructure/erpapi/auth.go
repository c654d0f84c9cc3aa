package erpapi

import (
	"context"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/domain/entity"
)

// AuthService acceso y usuario actual.
type AuthService struct{ c *Client }

// Login POST /auth/login.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	return Post[*dto.LoginResponse](ctx, s.c, "/auth/login", req)
}

// LoginUsers GET /auth/users: usuarios elegibles en la pantalla de acceso (público).
func (s *AuthService) LoginUsers(ctx context.Context) ([]dto.LoginUser, error) {
	return Get[[]dto.LoginUser](ctx, s.c, "/auth/users", nil)
}

// Me GET /user/me.
func (s *AuthService) Me(ctx context.Context) (*entity.UserInfo, error) {
	return Get[*entity.UserInfo](ctx, s.c, "/user/me", nil)
}

// ChangePassword POST /user/change-password.
func (s *AuthService) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (*dto.MessageResponse, error) {
	return Post[*dto.MessageResponse](ctx, s.c, "/user/change-password", req)
}
