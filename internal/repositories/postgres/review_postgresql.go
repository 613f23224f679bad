package postgres

import (
	"context"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewPostgreSQL struct {
	db *gorm.DB
}

func NewReviewPostgreSQL(db *gorm.DB) repositories.ReviewRepository {
	return &ReviewPostgreSQL{db: db}
}

func (r *ReviewPostgreSQL) Create(ctx context.Context, review *models.Review) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error)
}

func (r *ReviewPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

func (r *ReviewPostgreSQL) GetByIDWithPaper(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Paper").
		Preload("Paper.Conference").
		Preload("Paper.Category").
		First(&review, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

func (r *ReviewPostgreSQL) GetByPaperAndReviewer(ctx context.Context, paperID, reviewerID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("paper_id = ? AND reviewer_id = ?", paperID, reviewerID).
		First(&review).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

func (r *ReviewPostgreSQL) Update(ctx context.Context, review *models.Review) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(review).Error)
}

func (r *ReviewPostgreSQL) Delete(ctx context.Context, id uint) error {
	return requireAffected(r.db.WithContext(ctx).Delete(&models.Review{}, id))
}

func (r *ReviewPostgreSQL) List(ctx context.Context, filters repositories.ReviewFilters) ([]*models.Review, error) {
	query := r.db.WithContext(ctx).
		Preload("Paper").
		Preload("Paper.Conference").
		Preload("Paper.Category")
	if filters.ReviewerID != nil {
		query = query.Where("reviewer_id = ?", *filters.ReviewerID)
	}
	if filters.PaperID != nil {
		query = query.Where("paper_id = ?", *filters.PaperID)
	}
	if filters.IsDraft != nil {
		query = query.Where("is_draft = ?", *filters.IsDraft)
	}

	var reviews []*models.Review
	err := query.Order("updated_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *ReviewPostgreSQL) SentPaperIDs(ctx context.Context, reviewerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("reviewer_id = ? AND is_draft = ?", reviewerID, false).
		Pluck("paper_id", &ids).Error
	return ids, err
}

func (r *ReviewPostgreSQL) DeleteByReviewer(ctx context.Context, reviewerID uint) error {
	return r.db.WithContext(ctx).Where("reviewer_id = ?", reviewerID).Delete(&models.Review{}).Error
}

func (r *ReviewPostgreSQL) DeleteByPaper(ctx context.Context, paperID uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("paper_id = ?", paperID).Delete(&models.ArchivedReview{}).Error; err != nil {
		return err
	}
	return db.Where("paper_id = ?", paperID).Delete(&models.Review{}).Error
}

func (r *ReviewPostgreSQL) ArchiveSent(ctx context.Context, paperID uint, reason string, at time.Time) error {
	db := r.db.WithContext(ctx)

	var sent []*models.Review
	if err := db.Where("paper_id = ? AND is_draft = ?", paperID, false).Find(&sent).Error; err != nil {
		return err
	}
	if len(sent) == 0 {
		return nil
	}

	archived := make([]*models.ArchivedReview, 0, len(sent))
	ids := make([]uint, 0, len(sent))
	for _, review := range sent {
		archived = append(archived, models.NewArchivedReview(review, reason, at))
		ids = append(ids, review.ID)
	}
	if err := db.Create(&archived).Error; err != nil {
		return translateError(err)
	}
	return db.Delete(&models.Review{}, ids).Error
}

func (r *ReviewPostgreSQL) ArchivedByPaper(ctx context.Context, paperID uint) ([]*models.ArchivedReview, error) {
	var archived []*models.ArchivedReview
	err := r.db.WithContext(ctx).
		Where("paper_id = ?", paperID).
		Order("archived_at ASC, id ASC").
		Find(&archived).Error
	return archived, err
}
