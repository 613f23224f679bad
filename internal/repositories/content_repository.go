package repositories

import (
	"context"

	"github.com/SAP-F-2025/conference-service/internal/models"
)

// ContentRepository stores the editable parts of the public homepage
type ContentRepository interface {
	CreateCommitteeMember(ctx context.Context, member *models.CommitteeMember) error
	GetCommitteeMember(ctx context.Context, id uint) (*models.CommitteeMember, error)
	UpdateCommitteeMember(ctx context.Context, member *models.CommitteeMember) error
	DeleteCommitteeMember(ctx context.Context, id uint) error
	ListCommitteeMembers(ctx context.Context) ([]*models.CommitteeMember, error)

	ListProgramItems(ctx context.Context) ([]*models.ProgramItem, error)
	// ReplaceProgramItems swaps the whole programme for items
	ReplaceProgramItems(ctx context.Context, items []*models.ProgramItem) error
	DeleteProgramItem(ctx context.Context, id uint) error

	GetSiteFile(ctx context.Context, kind models.SiteFileKind) (*models.SiteFile, error)
	// SaveSiteFile inserts or replaces the file of file.Kind
	SaveSiteFile(ctx context.Context, file *models.SiteFile) error
	ListSiteFiles(ctx context.Context) ([]*models.SiteFile, error)

	CreateDocument(ctx context.Context, doc *models.ConferenceDocument) error
	GetDocument(ctx context.Context, id uint) (*models.ConferenceDocument, error)
	UpdateDocument(ctx context.Context, doc *models.ConferenceDocument) error
	DeleteDocument(ctx context.Context, id uint) error
	HasDocument(ctx context.Context, conferenceID uint) (bool, error)
	// ListDocuments returns documents with their conference, newest conference first
	ListDocuments(ctx context.Context) ([]*models.ConferenceDocument, error)
}
