package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portsrepo "github.com/abecha/sms_forfait_app/internal/core/ports/repositories"
	portssvc "github.com/abecha/sms_forfait_app/internal/core/ports/services"
	"github.com/abecha/sms_forfait_app/internal/dto"
	"github.com/abecha/sms_forfait_app/internal/middleware"
	"github.com/abecha/sms_forfait_app/internal/platform/config"
	"github.com/abecha/sms_forfait_app/internal/utils"
)

// authService issues access tokens and manages the refresh-token whitelist.
type authService struct {
	userSvc   portssvc.UserSvcFacade
	tokenRepo portsrepo.TokenRepositoryFacade

	jwtSecret          string
	jwtExpiryDuration  time.Duration
	jwtIssuer          string
	refreshTokenExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, userSvc portssvc.UserSvcFacade, tokenRepo portsrepo.TokenRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{
		userSvc:            userSvc,
		tokenRepo:          tokenRepo,
		jwtSecret:          cfg.JWTSecret,
		jwtExpiryDuration:  cfg.JWTExpiryDuration,
		jwtIssuer:          cfg.JWTIssuer,
		refreshTokenExpiry: cfg.RefreshTokenExpiryDuration,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) issueTokenPair(ctx context.Context, user *domain.User) (*dto.LoginResponse, error) {
	accessToken, err := utils.GenerateJWT(user.UserID, string(user.Role), s.jwtSecret, s.jwtExpiryDuration, s.jwtIssuer)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sign access token", err)
	}

	refreshValue, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to generate refresh token", err)
	}

	now := time.Now().UTC()
	refreshToken := domain.RefreshToken{
		TokenID:   uuid.NewString(),
		UserID:    user.UserID,
		Token:     refreshValue,
		ExpiresAt: now.Add(s.refreshTokenExpiry),
		CreatedAt: now,
	}
	if err := s.tokenRepo.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshValue,
		User:         dto.ToUserResponse(user),
	}, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userSvc.AuthenticateUser(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	// Operator accounts are unusable until linked to a company.
	if user.Role == domain.RoleUser {
		if _, grantErr := s.userSvc.GetCompanyForUser(ctx, user.UserID); grantErr != nil {
			if errors.Is(grantErr, apperrors.ErrNotFound) {
				logger.Warn("Login attempt on unlinked operator account", slog.String("login_user_id", user.UserID))
				return nil, fmt.Errorf("account is not linked to a company: %w", apperrors.ErrUnauthorized)
			}
			return nil, grantErr
		}
	}

	resp, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in", slog.String("login_user_id", user.UserID))
	return resp, nil
}

// Refresh exchanges an unused whitelisted refresh token for a fresh pair.
// Presenting an already-used token revokes every token of its owner, since a
// replay means the token leaked.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	stored, err := s.tokenRepo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("unknown refresh token: %w", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	if stored.IsUsed {
		logger.Warn("Refresh token replay detected, revoking all tokens", slog.String("token_user_id", stored.UserID))
		if revokeErr := s.tokenRepo.DeleteTokensForUser(ctx, stored.UserID); revokeErr != nil {
			logger.Error("Failed to revoke tokens after replay", slog.String("error", revokeErr.Error()))
		}
		return nil, fmt.Errorf("refresh token already used: %w", apperrors.ErrUnauthorized)
	}

	if time.Now().UTC().After(stored.ExpiresAt) {
		return nil, fmt.Errorf("refresh token expired: %w", apperrors.ErrUnauthorized)
	}

	if err := s.tokenRepo.MarkTokenUsed(ctx, stored.TokenID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("refresh token already used: %w", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	user, err := s.userSvc.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is inactive: %w", apperrors.ErrUnauthorized)
	}

	return s.issueTokenPair(ctx, user)
}

// Logout revokes every whitelisted refresh token of the user.
func (s *authService) Logout(ctx context.Context, userID string) error {
	return s.tokenRepo.DeleteTokensForUser(ctx, userID)
}
