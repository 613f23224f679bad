package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleParticipant UserRole = "participant"
	RoleReviewer    UserRole = "reviewer"
	RoleAdmin       UserRole = "admin"
)

type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusInactive  UserStatus = "inactive"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	FirstName    string   `json:"first_name" gorm:"not null;size:100"`
	LastName     string   `json:"last_name" gorm:"not null;size:100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;size:20;index"`

	// Profile info
	University string  `json:"university" gorm:"size:255"`
	Faculty    *string `json:"faculty" gorm:"size:255"`
	About      *string `json:"about" gorm:"type:text"`
	AvatarPath *string `json:"avatar" gorm:"size:500"`

	// Status
	Status            UserStatus `json:"status" gorm:"not null;size:20;default:pending"`
	IsVerified        bool       `json:"is_verified" gorm:"default:false"`
	VerificationToken *string    `json:"-" gorm:"size:64;index"`
	LastLoginAt       *time.Time `json:"last_login_at"`

	// Credentials
	RefreshTokenID         *string    `json:"-" gorm:"size:64"`
	PasswordResetToken     *string    `json:"-" gorm:"size:64;index"`
	PasswordResetExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// CanLogin reports whether the account may obtain a session token.
func (u *User) CanLogin() bool {
	return u.IsVerified && u.Status == UserStatusActive
}
