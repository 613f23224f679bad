package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/conference-service/internal/auth"
	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/SAP-F-2025/conference-service/internal/validator"
)

var (
	ErrInvalidVerificationToken = fmt.Errorf("%w: verification token", ErrNotFound)
	ErrInvalidResetToken        = fmt.Errorf("%w: password reset token is invalid or expired", ErrValidationFailed)
)

const passwordResetTTL = time.Hour

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenManager
	notifier  Notifier
	validator *validator.Validator
	clock     utils.Clock
	logger    *slog.Logger
}

func NewAuthService(
	repo repositories.Repository,
	tokens *auth.TokenManager,
	notifier Notifier,
	validator *validator.Validator,
	clock utils.Clock,
	logger *slog.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		notifier:  notifier,
		validator: validator,
		clock:     clock,
		logger:    logger,
	}
}

// Register creates a pending participant account and emails a verification link
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	exists, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	user := &models.User{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             email,
		PasswordHash:      hash,
		Role:              models.RoleParticipant,
		University:        req.University,
		Faculty:           req.Faculty,
		Status:            models.UserStatusPending,
		VerificationToken: &token,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID)
	s.notifier.VerificationRequested(ctx, user)
	return user, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fieldError("token", "is required", token)
	}

	user, err := s.repo.User().GetByVerificationToken(ctx, token)
	if err != nil {
		return nil, notFoundOr(err, ErrInvalidVerificationToken)
	}

	user.IsVerified = true
	user.Status = models.UserStatusActive
	user.VerificationToken = nil
	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	s.logger.Info("User verified", "user_id", user.ID)
	return user, nil
}

// Login returns the same error for an unknown email and a wrong password
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, notFoundOr(err, ErrInvalidCredentials)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.CanLogin() {
		return nil, ErrAccountInactive
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.repo.User().UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("Failed to record last login", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now
	return resp, nil
}

// Refresh exchanges a refresh token for a new token pair. The presented token
// is rotated out, so each refresh token works once.
func (s *authService) Refresh(ctx context.Context, req *RefreshRequest) (*LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	claims, err := s.tokens.ParseRefresh(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	user, err := s.repo.User().GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, notFoundOr(err, ErrInvalidRefreshToken)
	}
	if user.RefreshTokenID == nil || *user.RefreshTokenID != claims.ID {
		return nil, ErrInvalidRefreshToken
	}
	if !user.CanLogin() {
		return nil, ErrAccountInactive
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the caller's refresh token; access tokens expire on their own
func (s *authService) Logout(ctx context.Context, actor models.Actor) error {
	if err := s.repo.User().SetRefreshToken(ctx, actor.UserID, nil); err != nil {
		return notFoundOr(err, ErrUserNotFound)
	}
	return nil
}

// ResendVerification mails a fresh verification link. Unknown and already
// verified addresses succeed silently so the endpoint does not reveal accounts.
func (s *authService) ResendVerification(ctx context.Context, req *EmailRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	user, err := s.repo.User().GetByEmail(ctx, normalizeEmail(req.Email))
	if repositories.IsNotFoundError(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if user.IsVerified {
		s.logger.Info("Verification resend for verified user ignored", "user_id", user.ID)
		return nil
	}

	token := uuid.NewString()
	user.VerificationToken = &token
	if err := s.repo.User().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	s.notifier.VerificationResent(ctx, user)
	return nil
}

// ForgotPassword emails a time-limited reset link. Unknown addresses succeed
// silently, matching Login's refusal to tell accounts apart.
func (s *authService) ForgotPassword(ctx context.Context, req *EmailRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	user, err := s.repo.User().GetByEmail(ctx, normalizeEmail(req.Email))
	if repositories.IsNotFoundError(err) {
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	expiresAt := s.clock.Now().Add(passwordResetTTL)
	user.PasswordResetToken = &token
	user.PasswordResetExpiresAt = &expiresAt
	if err := s.repo.User().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	s.logger.Info("Password reset requested", "user_id", user.ID)
	s.notifier.PasswordResetRequested(ctx, user)
	return nil
}

// ResetPassword sets a new password and signs the user out of other sessions
func (s *authService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	user, err := s.repo.User().GetByPasswordResetToken(ctx, req.Token)
	if err != nil {
		return notFoundOr(err, ErrInvalidResetToken)
	}
	if user.PasswordResetExpiresAt == nil || !s.clock.Now().Before(*user.PasswordResetExpiresAt) {
		return ErrInvalidResetToken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.PasswordResetToken = nil
	user.PasswordResetExpiresAt = nil
	user.RefreshTokenID = nil
	if err := s.repo.User().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	s.logger.Info("Password reset", "user_id", user.ID)
	return nil
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*LoginResponse, error) {
	token, expiresAt, err := s.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	refreshID := uuid.NewString()
	refresh, refreshExpiresAt, err := s.tokens.GenerateRefresh(user, refreshID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}
	if err := s.repo.User().SetRefreshToken(ctx, user.ID, &refreshID); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	user.RefreshTokenID = &refreshID

	return &LoginResponse{
		Token:            token,
		ExpiresAt:        expiresAt,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExpiresAt,
		User:             user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
