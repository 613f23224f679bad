package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*models.User, error)
	GetByPasswordResetToken(ctx context.Context, token string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	GetByRole(ctx context.Context, role models.UserRole) ([]*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	UpdateLastLogin(ctx context.Context, id uint, loginTime time.Time) error
	// SetRefreshToken stores the id of the only valid refresh token; nil revokes it
	SetRefreshToken(ctx context.Context, id uint, tokenID *string) error
}
