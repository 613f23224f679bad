package postgres

import (
	"context"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"gorm.io/gorm"
)

type AssignmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{db: db}
}

func (a *AssignmentPostgreSQL) Create(ctx context.Context, assignment *models.ReviewerAssignment) error {
	return translateError(a.db.WithContext(ctx).Create(assignment).Error)
}

func (a *AssignmentPostgreSQL) GetByPaper(ctx context.Context, paperID uint) ([]*models.ReviewerAssignment, error) {
	var assignments []*models.ReviewerAssignment
	err := a.db.WithContext(ctx).
		Where("paper_id = ?", paperID).
		Order("assigned_at ASC, id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (a *AssignmentPostgreSQL) LatestByPapers(ctx context.Context, paperIDs []uint) (map[uint]*models.ReviewerAssignment, error) {
	result := make(map[uint]*models.ReviewerAssignment, len(paperIDs))
	if len(paperIDs) == 0 {
		return result, nil
	}

	var assignments []*models.ReviewerAssignment
	err := a.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (paper_id) * FROM reviewer_assignments
			WHERE paper_id IN ? ORDER BY paper_id, assigned_at DESC, id DESC`, paperIDs).
		Scan(&assignments).Error
	if err != nil {
		return nil, err
	}
	for _, assignment := range assignments {
		result[assignment.PaperID] = assignment
	}
	return result, nil
}

type StatusHistoryPostgreSQL struct {
	db *gorm.DB
}

func NewStatusHistoryPostgreSQL(db *gorm.DB) repositories.StatusHistoryRepository {
	return &StatusHistoryPostgreSQL{db: db}
}

func (s *StatusHistoryPostgreSQL) Create(ctx context.Context, entry *models.PaperStatusHistory) error {
	return translateError(s.db.WithContext(ctx).Create(entry).Error)
}

func (s *StatusHistoryPostgreSQL) GetByPaper(ctx context.Context, paperID uint) ([]*models.PaperStatusHistory, error) {
	var entries []*models.PaperStatusHistory
	err := s.db.WithContext(ctx).
		Where("paper_id = ?", paperID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}
