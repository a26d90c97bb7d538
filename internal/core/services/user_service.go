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
	"github.com/abecha/sms_forfait_app/internal/utils"
)

// userService provides user account operations.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser persists a new user with a hashed password.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string, comment string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := domain.Role(req.Role)
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		Comment:      comment,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User created", slog.String("new_user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Password != nil {
		hash, hashErr := utils.HashPassword(*req.Password)
		if hashErr != nil {
			return nil, apperrors.NewAppError(500, "failed to hash password", hashErr)
		}
		user.PasswordHash = hash
	}
	if req.IsActive != nil {
		if user.IsSuper && !*req.IsActive {
			return nil, fmt.Errorf("superuser account cannot be deactivated: %w", apperrors.ErrForbidden)
		}
		user.IsActive = *req.IsActive
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("target_user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	return user, nil
}

// DeactivateUser marks a user as inactive. Superuser accounts are protected.
func (s *userService) DeactivateUser(ctx context.Context, userID string, requestingUserID string) error {
	inactive := false
	_, err := s.UpdateUser(ctx, userID, dto.UpdateUserRequest{IsActive: &inactive}, requestingUserID)
	return err
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, params dto.ListParams) (*dto.ListUsersResponse, error) {
	users, nextToken, err := s.userRepo.ListUsers(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListUsersResponse(users, nextToken)
	return &resp, nil
}

// GetCompanyForUser resolves the company grant of a USER-role account.
func (s *userService) GetCompanyForUser(ctx context.Context, userID string) (*domain.AccessGrant, error) {
	return s.userRepo.FindGrantByUserID(ctx, userID)
}

// AuthenticateUser verifies a username/password pair. Unknown usernames and
// wrong passwords return the same error so probes learn nothing.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	if !user.IsActive {
		logger.Warn("Login attempt on inactive account", slog.String("target_user_id", user.UserID))
		return nil, fmt.Errorf("account is inactive: %w", apperrors.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	return user, nil
}
