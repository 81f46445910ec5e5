package services

import (
	"context"
	"time"

	"github.com/edutech/studify/internal/app/auth"
	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/models/dto"
	"github.com/edutech/studify/internal/pkg/apperrors"
	pkgauth "github.com/edutech/studify/internal/pkg/auth"
	"github.com/edutech/studify/internal/pkg/logger"
)

// authUserStore is the account storage the auth service depends on.
type authUserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	SaveRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	ConsumeRefreshToken(ctx context.Context, token string) (int64, error)
	DeleteRefreshTokens(ctx context.Context, userID int64) error
}

// AuthService handles authentication and account credentials.
type AuthService struct {
	users authUserStore
	jwt   *pkgauth.JWTService
}

// NewAuthService creates a new auth service.
func NewAuthService(users authUserStore, jwt *pkgauth.JWTService) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// Login verifies credentials and issues a token pair. Unknown accounts,
// wrong passwords and disabled accounts all produce the same generic
// failure so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByUsernameOrEmail(ctx, req.Username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "invalid credentials")
		}
		return nil, err
	}

	if !pkgauth.CheckPassword(user.Password, req.Password) || !user.IsActive {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "invalid credentials")
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges a stored refresh token for a fresh pair. The old token
// is consumed; replay of a used token fails.
func (s *AuthService) Refresh(ctx context.Context, req dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	userID, err := s.users.ConsumeRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewCustomError(apperrors.ErrAccountDisabled, "account is disabled")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwt.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.users.SaveRefreshToken(ctx, user.ID, refreshToken, s.jwt.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("role", string(user.Role)).Msg("Issued token pair")
	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		User:             dto.NewUserResponse(user),
	}, nil
}

// Register creates a bare account. Reserved for administrators; student and
// teacher accounts are created through their profile endpoints.
func (s *AuthService) Register(ctx context.Context, p auth.Principal, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := auth.Authorize(p, auth.ActionRegisterUser, auth.Target{}); err != nil {
		return nil, err
	}

	hash, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Role:     models.Role(req.Role),
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("role", req.Role).Msg("Registered user")
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ChangePassword rotates the caller's own password after verifying the
// current one, and revokes all outstanding refresh tokens.
func (s *AuthService) ChangePassword(ctx context.Context, p auth.Principal, req dto.ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return err
	}

	if !pkgauth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "current password is incorrect")
	}

	hash, err := pkgauth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	return s.users.DeleteRefreshTokens(ctx, user.ID)
}
