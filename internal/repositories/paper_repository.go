package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/models"
)

type PaperRepository interface {
	Create(ctx context.Context, paper *models.Paper) error
	GetByID(ctx context.Context, id uint) (*models.Paper, error)
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Paper, error) // user, conference, category, reviewer, review
	Update(ctx context.Context, paper *models.Paper) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters PaperFilters) ([]*models.Paper, int64, error)
	GetByUser(ctx context.Context, userID uint) ([]*models.Paper, error)
	GetByReviewer(ctx context.Context, reviewerID uint) ([]*models.Paper, error)
	GetByConferenceWithDetails(ctx context.Context, conferenceID uint) ([]*models.Paper, error)

	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
	CountByConference(ctx context.Context, conferenceID uint) (int64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	GetByIDWithPaper(ctx context.Context, id uint) (*models.Review, error)
	GetByPaperAndReviewer(ctx context.Context, paperID, reviewerID uint) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters ReviewFilters) ([]*models.Review, error)
	// SentPaperIDs returns the papers for which the reviewer already sent a review
	SentPaperIDs(ctx context.Context, reviewerID uint) ([]uint, error)

	DeleteByReviewer(ctx context.Context, reviewerID uint) error
	// DeleteByPaper removes the paper's reviews and its archived reviews
	DeleteByPaper(ctx context.Context, paperID uint) error

	// ArchiveSent moves the paper's sent reviews into the archive, freeing the
	// paper for another review round
	ArchiveSent(ctx context.Context, paperID uint, reason string, at time.Time) error
	ArchivedByPaper(ctx context.Context, paperID uint) ([]*models.ArchivedReview, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.ReviewerAssignment) error
	GetByPaper(ctx context.Context, paperID uint) ([]*models.ReviewerAssignment, error)
	// LatestByPapers returns the most recent assignment per paper
	LatestByPapers(ctx context.Context, paperIDs []uint) (map[uint]*models.ReviewerAssignment, error)
}

type StatusHistoryRepository interface {
	Create(ctx context.Context, entry *models.PaperStatusHistory) error
	GetByPaper(ctx context.Context, paperID uint) ([]*models.PaperStatusHistory, error)
}
