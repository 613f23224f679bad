package repositories

import (
	"context"

	"github.com/SAP-F-2025/conference-service/internal/models"
)

type ConferenceRepository interface {
	Create(ctx context.Context, conference *models.Conference) error
	GetByID(ctx context.Context, id uint) (*models.Conference, error)
	Update(ctx context.Context, conference *models.Conference) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters ConferenceFilters) ([]*models.Conference, int64, error)
	GetByStatus(ctx context.Context, status models.ConferenceStatus) ([]*models.Conference, error)
	GetAll(ctx context.Context) ([]*models.Conference, error)

	// UpdateStatus changes only the status column
	UpdateStatus(ctx context.Context, id uint, status models.ConferenceStatus) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, activeOnly bool) ([]*models.Category, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Question, error)

	// ExistingIDs returns the subset of ids that exist
	ExistingIDs(ctx context.Context, ids []uint) ([]uint, error)
}
