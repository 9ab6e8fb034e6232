package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/stafftrack/timeclock-backend-go/internal/domain/auth"
	"github.com/stafftrack/timeclock-backend-go/internal/domain/user"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/jwt"
)

// DirectoryAuthenticator verifies credentials against the directory
// and returns the provisioned local account.
type DirectoryAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (user.User, error)
}

// BootstrapAdmin is a local fallback account for deployments whose
// directory is not reachable yet. Disabled when Username is empty.
type BootstrapAdmin struct {
	Username     string
	PasswordHash string
}

type ServiceImpl struct {
	userRepo  user.Repository
	directory DirectoryAuthenticator
	jwtSvc    jwt.Service
	bootstrap BootstrapAdmin
}

func NewAuthService(userRepo user.Repository, directory DirectoryAuthenticator, jwtSvc jwt.Service, bootstrap BootstrapAdmin) *ServiceImpl {
	return &ServiceImpl{
		userRepo:  userRepo,
		directory: directory,
		jwtSvc:    jwtSvc,
		bootstrap: bootstrap,
	}
}

// Login implements auth.Service.
func (s *ServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	var u user.User
	var err error
	if s.bootstrap.Username != "" && req.Username == s.bootstrap.Username {
		if bcrypt.CompareHashAndPassword([]byte(s.bootstrap.PasswordHash), []byte(req.Password)) != nil {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		u, err = s.userRepo.GetByUsername(ctx, req.Username)
		if err != nil {
			return auth.LoginResponse{}, fmt.Errorf("failed to load bootstrap admin: %w", err)
		}
	} else {
		if s.directory == nil {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		u, err = s.directory.Authenticate(ctx, req.Username, req.Password)
		if err != nil {
			return auth.LoginResponse{}, err
		}
	}

	access, accessExp, err := s.jwtSvc.GenerateAccessToken(u.ID, u.Username, u.Role, u.TeamID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, refreshExp, err := s.jwtSvc.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:  access,
		ExpiresAt:    accessExp,
		RefreshToken: refresh,
		RefreshExp:   refreshExp,
		User:         user.ToResponse(u),
	}, nil
}

// Refresh implements auth.Service.
func (s *ServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if s.jwtSvc.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := s.jwtSvc.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	tokenType, _ := token.Get("type")
	if tokenType != "refresh" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	userID, ok := token.Get("user_id")
	if !ok {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, fmt.Sprint(userID))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.RefreshResponse{}, auth.ErrInvalidToken
		}
		return auth.RefreshResponse{}, fmt.Errorf("failed to load user: %w", err)
	}
	if !u.Active {
		return auth.RefreshResponse{}, user.ErrUserInactive
	}

	access, expiresAt, err := s.jwtSvc.GenerateAccessToken(u.ID, u.Username, u.Role, u.TeamID)
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.RefreshResponse{AccessToken: access, ExpiresAt: expiresAt}, nil
}

// Logout implements auth.Service.
func (s *ServiceImpl) Logout(ctx context.Context, refreshToken string) {
	if refreshToken != "" {
		s.jwtSvc.RevokeToken(refreshToken)
	}
}

// EnsureBootstrapAdmin creates the local fallback admin account when
// it is configured and missing. Called once at startup.
func (s *ServiceImpl) EnsureBootstrapAdmin(ctx context.Context) error {
	if s.bootstrap.Username == "" {
		return nil
	}
	_, err := s.userRepo.GetByUsername(ctx, s.bootstrap.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	_, err = s.userRepo.Create(ctx, user.User{
		Username: s.bootstrap.Username,
		FullName: "Bootstrap Administrator",
		Role:     user.RoleAdmin,
		Active:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	return nil
}

var _ auth.Service = (*ServiceImpl)(nil)
