package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaperPostgreSQL struct {
	db *gorm.DB
}

func NewPaperPostgreSQL(db *gorm.DB) repositories.PaperRepository {
	return &PaperPostgreSQL{db: db}
}

var paperSortColumns = map[string]string{
	"created_at":      "created_at",
	"title":           "title",
	"submission_date": "submission_date",
	"status":          "status",
}

func (p *PaperPostgreSQL) Create(ctx context.Context, paper *models.Paper) error {
	return translateError(p.db.WithContext(ctx).Omit(clause.Associations).Create(paper).Error)
}

func (p *PaperPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Paper, error) {
	var paper models.Paper
	if err := p.db.WithContext(ctx).First(&paper, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &paper, nil
}

func (p *PaperPostgreSQL) GetByIDWithDetails(ctx context.Context, id uint) (*models.Paper, error) {
	var paper models.Paper
	err := p.withDetails(p.db.WithContext(ctx)).First(&paper, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &paper, nil
}

func (p *PaperPostgreSQL) Update(ctx context.Context, paper *models.Paper) error {
	return translateError(p.db.WithContext(ctx).Omit(clause.Associations).Save(paper).Error)
}

func (p *PaperPostgreSQL) Delete(ctx context.Context, id uint) error {
	return requireAffected(p.db.WithContext(ctx).Delete(&models.Paper{}, id))
}

func (p *PaperPostgreSQL) List(ctx context.Context, filters repositories.PaperFilters) ([]*models.Paper, int64, error) {
	query := p.db.WithContext(ctx).Model(&models.Paper{})
	if filters.ConferenceID != nil {
		query = query.Where("conference_id = ?", *filters.ConferenceID)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.ReviewerID != nil {
		query = query.Where("reviewer_id = ?", *filters.ReviewerID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := paperSortColumns[filters.SortBy]
	if !ok {
		column = "created_at"
	}
	order := "DESC"
	if filters.SortOrder == "asc" {
		order = "ASC"
	}

	var papers []*models.Paper
	err := paginate(p.withDetails(query), filters.Limit, filters.Offset).
		Order(fmt.Sprintf("%s %s", column, order)).
		Find(&papers).Error
	return papers, total, err
}

func (p *PaperPostgreSQL) GetByUser(ctx context.Context, userID uint) ([]*models.Paper, error) {
	var papers []*models.Paper
	err := p.db.WithContext(ctx).
		Preload("Conference").
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&papers).Error
	return papers, err
}

func (p *PaperPostgreSQL) GetByReviewer(ctx context.Context, reviewerID uint) ([]*models.Paper, error) {
	var papers []*models.Paper
	err := p.db.WithContext(ctx).
		Preload("Conference").
		Preload("Category").
		Where("reviewer_id = ?", reviewerID).
		Order("created_at ASC").
		Find(&papers).Error
	return papers, err
}

func (p *PaperPostgreSQL) GetByConferenceWithDetails(ctx context.Context, conferenceID uint) ([]*models.Paper, error) {
	var papers []*models.Paper
	err := p.withDetails(p.db.WithContext(ctx)).
		Where("conference_id = ?", conferenceID).
		Order("id ASC").
		Find(&papers).Error
	return papers, err
}

func (p *PaperPostgreSQL) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Paper{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (p *PaperPostgreSQL) CountByConference(ctx context.Context, conferenceID uint) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Paper{}).Where("conference_id = ?", conferenceID).Count(&count).Error
	return count, err
}

func (p *PaperPostgreSQL) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Conference").
		Preload("Category").
		Preload("Reviewer").
		Preload("Review")
}
