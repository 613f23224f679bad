package postgres

import (
	"context"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"gorm.io/gorm"
)

// ===== CONFERENCES =====

type ConferencePostgreSQL struct {
	db *gorm.DB
}

func NewConferencePostgreSQL(db *gorm.DB) repositories.ConferenceRepository {
	return &ConferencePostgreSQL{db: db}
}

func (c *ConferencePostgreSQL) Create(ctx context.Context, conference *models.Conference) error {
	return translateError(c.db.WithContext(ctx).Create(conference).Error)
}

func (c *ConferencePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Conference, error) {
	var conference models.Conference
	if err := c.db.WithContext(ctx).First(&conference, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &conference, nil
}

func (c *ConferencePostgreSQL) Update(ctx context.Context, conference *models.Conference) error {
	return translateError(c.db.WithContext(ctx).Save(conference).Error)
}

func (c *ConferencePostgreSQL) Delete(ctx context.Context, id uint) error {
	return requireAffected(c.db.WithContext(ctx).Delete(&models.Conference{}, id))
}

func (c *ConferencePostgreSQL) List(ctx context.Context, filters repositories.ConferenceFilters) ([]*models.Conference, int64, error) {
	query := c.db.WithContext(ctx).Model(&models.Conference{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Year != nil {
		query = query.Where("year = ?", *filters.Year)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var conferences []*models.Conference
	err := paginate(query, filters.Limit, filters.Offset).
		Order("start_date DESC").
		Find(&conferences).Error
	return conferences, total, err
}

func (c *ConferencePostgreSQL) GetByStatus(ctx context.Context, status models.ConferenceStatus) ([]*models.Conference, error) {
	var conferences []*models.Conference
	err := c.db.WithContext(ctx).
		Where("status = ?", status).
		Order("start_date ASC").
		Find(&conferences).Error
	return conferences, err
}

func (c *ConferencePostgreSQL) GetAll(ctx context.Context) ([]*models.Conference, error) {
	var conferences []*models.Conference
	err := c.db.WithContext(ctx).Order("id ASC").Find(&conferences).Error
	return conferences, err
}

func (c *ConferencePostgreSQL) UpdateStatus(ctx context.Context, id uint, status models.ConferenceStatus) error {
	return requireAffected(c.db.WithContext(ctx).Model(&models.Conference{}).
		Where("id = ?", id).
		Update("status", status))
}

// ===== CATEGORIES =====

type CategoryPostgreSQL struct {
	db *gorm.DB
}

func NewCategoryPostgreSQL(db *gorm.DB) repositories.CategoryRepository {
	return &CategoryPostgreSQL{db: db}
}

func (c *CategoryPostgreSQL) Create(ctx context.Context, category *models.Category) error {
	return translateError(c.db.WithContext(ctx).Create(category).Error)
}

func (c *CategoryPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := c.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

func (c *CategoryPostgreSQL) Update(ctx context.Context, category *models.Category) error {
	return translateError(c.db.WithContext(ctx).Save(category).Error)
}

func (c *CategoryPostgreSQL) Delete(ctx context.Context, id uint) error {
	return requireAffected(c.db.WithContext(ctx).Delete(&models.Category{}, id))
}

func (c *CategoryPostgreSQL) List(ctx context.Context, activeOnly bool) ([]*models.Category, error) {
	query := c.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var categories []*models.Category
	err := query.Order("name ASC").Find(&categories).Error
	return categories, err
}

// ===== QUESTIONS =====

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

func (q *QuestionPostgreSQL) Create(ctx context.Context, question *models.Question) error {
	return translateError(q.db.WithContext(ctx).Create(question).Error)
}

func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := q.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &question, nil
}

func (q *QuestionPostgreSQL) Update(ctx context.Context, question *models.Question) error {
	return translateError(q.db.WithContext(ctx).Save(question).Error)
}

func (q *QuestionPostgreSQL) Delete(ctx context.Context, id uint) error {
	return requireAffected(q.db.WithContext(ctx).Delete(&models.Question{}, id))
}

func (q *QuestionPostgreSQL) List(ctx context.Context) ([]*models.Question, error) {
	var questions []*models.Question
	err := q.db.WithContext(ctx).Order("category ASC, id ASC").Find(&questions).Error
	return questions, err
}

func (q *QuestionPostgreSQL) ExistingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var existing []uint
	err := q.db.WithContext(ctx).Model(&models.Question{}).
		Where("id IN ?", ids).
		Pluck("id", &existing).Error
	return existing, err
}
