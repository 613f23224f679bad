package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/conference-service/internal/models"
)

var (
	// ErrNotFound is returned by every repository when a row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated
	ErrDuplicate = errors.New("duplicate record")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// Repository aggregates all repositories behind one transactional boundary
type Repository interface {
	User() UserRepository
	Conference() ConferenceRepository
	Category() CategoryRepository
	Question() QuestionRepository
	Paper() PaperRepository
	Review() ReviewRepository
	Assignment() AssignmentRepository
	StatusHistory() StatusHistoryRepository
	Content() ContentRepository

	// WithTransaction runs fn against a repository bound to one database transaction
	WithTransaction(ctx context.Context, fn func(tx Repository) error) error
	Ping(ctx context.Context) error
}

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role   *models.UserRole   `json:"role"`
	Status *models.UserStatus `json:"status"`
	Search string             `json:"search"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

type ConferenceFilters struct {
	Status *models.ConferenceStatus `json:"status"`
	Year   *int                     `json:"year"`
	Limit  int                      `json:"limit"`
	Offset int                      `json:"offset"`
}

type PaperFilters struct {
	ConferenceID *uint               `json:"conference_id"`
	CategoryID   *uint               `json:"category_id"`
	UserID       *uint               `json:"user_id"`
	ReviewerID   *uint               `json:"reviewer_id"`
	Status       *models.PaperStatus `json:"status"`
	Limit        int                 `json:"limit"`
	Offset       int                 `json:"offset"`
	SortBy       string              `json:"sort_by"`    // "created_at", "title", "submission_date"
	SortOrder    string              `json:"sort_order"` // "asc", "desc"
}

type ReviewFilters struct {
	ReviewerID *uint `json:"reviewer_id"`
	PaperID    *uint `json:"paper_id"`
	IsDraft    *bool `json:"is_draft"`
}
