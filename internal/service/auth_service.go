package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/seatboard/internal/auth"
	"github.com/spec-kit/seatboard/internal/config"
	"github.com/spec-kit/seatboard/internal/domain"
	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

// AuthService authenticates the configured operator and viewer accounts.
type AuthService struct {
	accounts auth.Accounts
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service, hashing configured plaintext passwords once.
func NewAuthService(cfg config.AuthConfig) (*AuthService, error) {
	accounts := auth.Accounts{}
	if err := accounts.Add(cfg.OperatorName, domain.RoleOperator, cfg.OperatorPassword, cfg.OperatorPasswordHash, cfg.BcryptCost); err != nil {
		return nil, err
	}
	if err := accounts.Add(cfg.ViewerName, domain.RoleViewer, cfg.ViewerPassword, "", cfg.BcryptCost); err != nil {
		return nil, err
	}
	return &AuthService{
		accounts: accounts,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
	}, nil
}

// Enabled reports whether any account can log in.
func (s *AuthService) Enabled() bool {
	return len(s.accounts) > 0
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(_ context.Context, name, password string) (domain.Principal, string, time.Time, error) {
	principal, err := s.accounts.Verify(name, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return domain.Principal{}, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err != nil {
		return domain.Principal{}, "", time.Time{}, apperrors.NewInternalError(err)
	}
	token, exp, err := s.tokenMgr.GenerateToken(principal.Name, principal.Role)
	if err != nil {
		return domain.Principal{}, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return principal, token, exp, nil
}

// Logout currently no-ops for stateless JWT approach.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
