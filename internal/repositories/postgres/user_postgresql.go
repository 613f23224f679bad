package postgres

import (
	"context"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"gorm.io/gorm"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	return translateError(u.db.WithContext(ctx).Create(user).Error)
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("verification_token = ?", token).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByPasswordResetToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("password_reset_token = ?", token).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	return translateError(u.db.WithContext(ctx).Save(user).Error)
}

func (u *UserPostgreSQL) Delete(ctx context.Context, id uint) error {
	return requireAffected(u.db.WithContext(ctx).Delete(&models.User{}, id))
}

func (u *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	query := u.db.WithContext(ctx).Model(&models.User{})
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*models.User
	err := paginate(query, filters.Limit, filters.Offset).
		Order("last_name ASC, first_name ASC").
		Find(&users).Error
	return users, total, err
}

func (u *UserPostgreSQL) GetByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	var users []*models.User
	err := u.db.WithContext(ctx).
		Where("role = ?", role).
		Order("last_name ASC").
		Find(&users).Error
	return users, err
}

func (u *UserPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).Model(&models.User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	return count > 0, err
}

func (u *UserPostgreSQL) UpdateLastLogin(ctx context.Context, id uint, loginTime time.Time) error {
	return requireAffected(u.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", loginTime))
}

func (u *UserPostgreSQL) SetRefreshToken(ctx context.Context, id uint, tokenID *string) error {
	return requireAffected(u.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("refresh_token_id", tokenID))
}
