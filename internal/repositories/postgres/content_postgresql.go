package postgres

import (
	"context"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContentPostgreSQL struct {
	db *gorm.DB
}

func NewContentPostgreSQL(db *gorm.DB) repositories.ContentRepository {
	return &ContentPostgreSQL{db: db}
}

// ===== COMMITTEE =====

func (c *ContentPostgreSQL) CreateCommitteeMember(ctx context.Context, member *models.CommitteeMember) error {
	return translateError(c.db.WithContext(ctx).Create(member).Error)
}

func (c *ContentPostgreSQL) GetCommitteeMember(ctx context.Context, id uint) (*models.CommitteeMember, error) {
	var member models.CommitteeMember
	if err := c.db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &member, nil
}

func (c *ContentPostgreSQL) UpdateCommitteeMember(ctx context.Context, member *models.CommitteeMember) error {
	return translateError(c.db.WithContext(ctx).Save(member).Error)
}

func (c *ContentPostgreSQL) DeleteCommitteeMember(ctx context.Context, id uint) error {
	return requireAffected(c.db.WithContext(ctx).Delete(&models.CommitteeMember{}, id))
}

func (c *ContentPostgreSQL) ListCommitteeMembers(ctx context.Context) ([]*models.CommitteeMember, error) {
	var members []*models.CommitteeMember
	err := c.db.WithContext(ctx).Order("id ASC").Find(&members).Error
	return members, err
}

// ===== PROGRAMME =====

func (c *ContentPostgreSQL) ListProgramItems(ctx context.Context) ([]*models.ProgramItem, error) {
	var items []*models.ProgramItem
	err := c.db.WithContext(ctx).Order("position ASC, id ASC").Find(&items).Error
	return items, err
}

func (c *ContentPostgreSQL) ReplaceProgramItems(ctx context.Context, items []*models.ProgramItem) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ProgramItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return translateError(tx.Create(&items).Error)
	})
}

func (c *ContentPostgreSQL) DeleteProgramItem(ctx context.Context, id uint) error {
	return requireAffected(c.db.WithContext(ctx).Delete(&models.ProgramItem{}, id))
}

// ===== SITE FILES =====

func (c *ContentPostgreSQL) GetSiteFile(ctx context.Context, kind models.SiteFileKind) (*models.SiteFile, error) {
	var file models.SiteFile
	if err := c.db.WithContext(ctx).Where("kind = ?", kind).First(&file).Error; err != nil {
		return nil, translateError(err)
	}
	return &file, nil
}

func (c *ContentPostgreSQL) SaveSiteFile(ctx context.Context, file *models.SiteFile) error {
	return translateError(c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"path", "name", "updated_at"}),
	}).Create(file).Error)
}

func (c *ContentPostgreSQL) ListSiteFiles(ctx context.Context) ([]*models.SiteFile, error) {
	var files []*models.SiteFile
	err := c.db.WithContext(ctx).Order("kind ASC").Find(&files).Error
	return files, err
}

// ===== CONFERENCE DOCUMENTS =====

func (c *ContentPostgreSQL) CreateDocument(ctx context.Context, doc *models.ConferenceDocument) error {
	return translateError(c.db.WithContext(ctx).Create(doc).Error)
}

func (c *ContentPostgreSQL) GetDocument(ctx context.Context, id uint) (*models.ConferenceDocument, error) {
	var doc models.ConferenceDocument
	if err := c.db.WithContext(ctx).Preload("Conference").First(&doc, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &doc, nil
}

func (c *ContentPostgreSQL) UpdateDocument(ctx context.Context, doc *models.ConferenceDocument) error {
	return translateError(c.db.WithContext(ctx).Omit("Conference").Save(doc).Error)
}

func (c *ContentPostgreSQL) DeleteDocument(ctx context.Context, id uint) error {
	return requireAffected(c.db.WithContext(ctx).Delete(&models.ConferenceDocument{}, id))
}

func (c *ContentPostgreSQL) HasDocument(ctx context.Context, conferenceID uint) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&models.ConferenceDocument{}).
		Where("conference_id = ?", conferenceID).
		Count(&count).Error
	return count > 0, err
}

func (c *ContentPostgreSQL) ListDocuments(ctx context.Context) ([]*models.ConferenceDocument, error) {
	var docs []*models.ConferenceDocument
	err := c.db.WithContext(ctx).
		Preload("Conference").
		Joins("JOIN conferences ON conferences.id = conference_documents.conference_id").
		Order("conferences.year DESC, conference_documents.id DESC").
		Find(&docs).Error
	return docs, err
}
