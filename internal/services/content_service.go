package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sort"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/cache"
	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/storage"
	"github.com/SAP-F-2025/conference-service/internal/validator"
)

const (
	cacheKeyHomepage = "homepage"

	siteFileDir = "site"
	documentDir = "documents"

	defaultDocumentName = "ŠVK"
)

var siteFileExtensions = map[models.SiteFileKind][]string{
	models.SiteFileProgram:       {".pdf"},
	models.SiteFileTemplateWord:  {".doc", ".docx"},
	models.SiteFileTemplateLatex: {".zip", ".tex"},
}

var documentExtensions = []string{".pdf", ".zip"}

type contentService struct {
	repo      repositories.Repository
	store     storage.FileStore
	cache     cache.CacheService
	cacheTTL  time.Duration
	validator *validator.Validator
	logger    *slog.Logger
}

func NewContentService(
	repo repositories.Repository,
	store storage.FileStore,
	cacheService cache.CacheService,
	cacheTTL time.Duration,
	validator *validator.Validator,
	logger *slog.Logger,
) ContentService {
	return &contentService{
		repo:      repo,
		store:     store,
		cache:     cacheService,
		cacheTTL:  cacheTTL,
		validator: validator,
		logger:    logger,
	}
}

// ===== COMMITTEE =====

func (s *contentService) ListCommittee(ctx context.Context) ([]*models.CommitteeMember, error) {
	return s.repo.Content().ListCommitteeMembers(ctx)
}

func (s *contentService) CreateCommitteeMember(ctx context.Context, req *CommitteeMemberRequest) (*models.CommitteeMember, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	member := &models.CommitteeMember{FullName: req.FullName, University: req.University}
	if err := s.repo.Content().CreateCommitteeMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create committee member: %w", err)
	}
	s.invalidate(ctx)
	return member, nil
}

func (s *contentService) UpdateCommitteeMember(ctx context.Context, id uint, req *CommitteeMemberRequest) (*models.CommitteeMember, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	member, err := s.repo.Content().GetCommitteeMember(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrCommitteeNotFound)
	}
	member.FullName = req.FullName
	member.University = req.University

	if err := s.repo.Content().UpdateCommitteeMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update committee member: %w", err)
	}
	s.invalidate(ctx)
	return member, nil
}

func (s *contentService) DeleteCommitteeMember(ctx context.Context, id uint) error {
	if err := s.repo.Content().DeleteCommitteeMember(ctx, id); err != nil {
		return notFoundOr(err, ErrCommitteeNotFound)
	}
	s.invalidate(ctx)
	return nil
}

// ===== PROGRAMME =====

func (s *contentService) GetProgram(ctx context.Context) (*Program, error) {
	items, err := s.repo.Content().ListProgramItems(ctx)
	if err != nil {
		return nil, err
	}

	program := &Program{Items: items}
	file, err := s.repo.Content().GetSiteFile(ctx, models.SiteFileProgram)
	switch {
	case err == nil:
		program.File = file
	case !repositories.IsNotFoundError(err):
		return nil, err
	}
	return program, nil
}

// UpdateProgram replaces the programme items in request order
func (s *contentService) UpdateProgram(ctx context.Context, req *ProgramRequest) (*Program, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	items := make([]*models.ProgramItem, 0, len(req.Items))
	for i, item := range req.Items {
		items = append(items, &models.ProgramItem{
			Schedule:    item.Schedule,
			Description: item.Description,
			Position:    i,
		})
	}
	if err := s.repo.Content().ReplaceProgramItems(ctx, items); err != nil {
		return nil, fmt.Errorf("failed to update program: %w", err)
	}

	s.invalidate(ctx)
	return s.GetProgram(ctx)
}

func (s *contentService) DeleteProgramItem(ctx context.Context, id uint) error {
	if err := s.repo.Content().DeleteProgramItem(ctx, id); err != nil {
		return notFoundOr(err, ErrProgramItemNotFound)
	}
	s.invalidate(ctx)
	return nil
}

// ===== SITE FILES =====

func (s *contentService) UploadSiteFile(ctx context.Context, kind models.SiteFileKind, file *FileUpload) (*models.SiteFile, error) {
	if !kind.IsValid() {
		return nil, fieldError("kind", "must be one of program, template_word, template_latex", kind)
	}
	if file == nil {
		return nil, fieldError("file", "is required", nil)
	}
	if err := s.validator.ValidateUpload("file", file.Name, siteFileExtensions[kind]); err != nil {
		return nil, err
	}

	var oldPath string
	existing, err := s.repo.Content().GetSiteFile(ctx, kind)
	switch {
	case err == nil:
		oldPath = existing.Path
	case !repositories.IsNotFoundError(err):
		return nil, err
	}

	newPath, err := s.store.Save(ctx, file.Reader, file.Name, siteFileDir)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	site := &models.SiteFile{Kind: kind, Path: newPath, Name: file.Name}
	if err := s.repo.Content().SaveSiteFile(ctx, site); err != nil {
		removeStoredFile(ctx, s.store, s.logger, newPath)
		return nil, fmt.Errorf("failed to save %s file: %w", kind, err)
	}

	removeStoredFile(ctx, s.store, s.logger, oldPath)
	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "Site file replaced", "kind", kind, "name", file.Name)
	return site, nil
}

func (s *contentService) OpenSiteFile(ctx context.Context, kind models.SiteFileKind) (io.ReadCloser, string, error) {
	site, err := s.repo.Content().GetSiteFile(ctx, kind)
	if err != nil {
		return nil, "", notFoundOr(err, ErrFileNotFound)
	}
	return s.open(ctx, site.Path, site.Name)
}

// ===== CONFERENCE DOCUMENTS =====

func (s *contentService) ListDocuments(ctx context.Context) ([]*models.ConferenceDocument, error) {
	docs, err := s.repo.Content().ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		doc.Available = doc.Files()
	}
	return docs, nil
}

func (s *contentService) CreateDocument(ctx context.Context, req *ConferenceDocumentRequest) (*models.ConferenceDocument, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Conference().GetByID(ctx, req.ConferenceID); err != nil {
		return nil, notFoundOr(err, ErrConferenceNotFound)
	}

	doc := &models.ConferenceDocument{ConferenceID: req.ConferenceID, Name: req.Name}
	if doc.Name == "" {
		doc.Name = defaultDocumentName
	}
	if err := s.repo.Content().CreateDocument(ctx, doc); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, fmt.Errorf("%w: conference already has documents", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create conference document: %w", err)
	}

	s.invalidate(ctx)
	doc.Available = doc.Files()
	return doc, nil
}

// UploadDocumentFile stores one proceedings file, replacing any earlier one
// of the same kind
func (s *contentService) UploadDocumentFile(ctx context.Context, id uint, kind models.DocumentKind, file *FileUpload) (*models.ConferenceDocument, error) {
	if !kind.IsValid() {
		return nil, fieldError("kind", "must be one of awarded, submitted, works", kind)
	}
	if file == nil {
		return nil, fieldError("file", "is required", nil)
	}
	if err := s.validator.ValidateUpload("file", file.Name, documentExtensions); err != nil {
		return nil, err
	}

	doc, err := s.repo.Content().GetDocument(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrDocumentNotFound)
	}

	dir := documentDir
	if doc.Conference != nil {
		dir = fmt.Sprintf("%s %d", documentDir, doc.Conference.Year)
	}
	newPath, err := s.store.Save(ctx, file.Reader, file.Name, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	slot := doc.PathFor(kind)
	var oldPath string
	if *slot != nil {
		oldPath = **slot
	}
	*slot = &newPath

	if err := s.repo.Content().UpdateDocument(ctx, doc); err != nil {
		removeStoredFile(ctx, s.store, s.logger, newPath)
		return nil, fmt.Errorf("failed to update conference document: %w", err)
	}

	removeStoredFile(ctx, s.store, s.logger, oldPath)
	s.invalidate(ctx)
	doc.Available = doc.Files()
	return doc, nil
}

func (s *contentService) OpenDocumentFile(ctx context.Context, id uint, kind models.DocumentKind) (io.ReadCloser, string, error) {
	if !kind.IsValid() {
		return nil, "", ErrFileNotFound
	}
	doc, err := s.repo.Content().GetDocument(ctx, id)
	if err != nil {
		return nil, "", notFoundOr(err, ErrDocumentNotFound)
	}
	slot := doc.PathFor(kind)
	if *slot == nil {
		return nil, "", ErrFileNotFound
	}
	return s.open(ctx, **slot, path.Base(**slot))
}

func (s *contentService) DeleteDocument(ctx context.Context, id uint) error {
	doc, err := s.repo.Content().GetDocument(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrDocumentNotFound)
	}
	if err := s.repo.Content().DeleteDocument(ctx, id); err != nil {
		return notFoundOr(err, ErrDocumentNotFound)
	}

	for _, kind := range doc.Files() {
		removeStoredFile(ctx, s.store, s.logger, **doc.PathFor(kind))
	}
	s.invalidate(ctx)
	return nil
}

// ===== HOMEPAGE =====

// Homepage is served from cache. Content writes invalidate it; conference,
// category and paper changes show up once the entry expires.
func (s *contentService) Homepage(ctx context.Context) (*Homepage, error) {
	var cached Homepage
	err := s.cache.Get(ctx, cacheKeyHomepage, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Homepage cache read failed", "error", err)
	}

	page, err := s.buildHomepage(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKeyHomepage, page, s.cacheTTL); err != nil {
		s.logger.Warn("Homepage cache write failed", "error", err)
	}
	return page, nil
}

func (s *contentService) buildHomepage(ctx context.Context) (*Homepage, error) {
	page := &Homepage{
		Papers:        []PublicPaper{},
		AwardedPapers: []PublicPaper{},
		Reviewers:     []string{},
	}

	ongoing, err := s.repo.Conference().GetByStatus(ctx, models.ConferenceOngoing)
	if err != nil {
		return nil, err
	}
	if len(ongoing) > 0 {
		page.OngoingConference = ongoing[0]
	}

	if page.PastConferences, err = s.repo.Conference().GetByStatus(ctx, models.ConferenceCompleted); err != nil {
		return nil, err
	}
	sort.SliceStable(page.PastConferences, func(i, j int) bool {
		return page.PastConferences[i].Year > page.PastConferences[j].Year
	})

	if page.ActiveCategories, err = s.repo.Category().List(ctx, true); err != nil {
		return nil, err
	}

	if page.OngoingConference != nil {
		papers, _, err := s.repo.Paper().List(ctx, repositories.PaperFilters{
			ConferenceID: &page.OngoingConference.ID,
			SortBy:       "title",
			SortOrder:    "asc",
		})
		if err != nil {
			return nil, err
		}
		for _, p := range papers {
			if p.Status == models.PaperDraft {
				continue
			}
			public := PublicPaper{ID: p.ID, Title: p.Title, Authors: p.Authors}
			page.Papers = append(page.Papers, public)
			if p.Awarded != nil && *p.Awarded {
				page.AwardedPapers = append(page.AwardedPapers, public)
			}
		}
	}

	reviewers, err := s.repo.User().GetByRole(ctx, models.RoleReviewer)
	if err != nil {
		return nil, err
	}
	for _, r := range reviewers {
		page.Reviewers = append(page.Reviewers, r.FirstName+" "+r.LastName)
	}

	if page.Committee, err = s.repo.Content().ListCommitteeMembers(ctx); err != nil {
		return nil, err
	}
	if page.Program, err = s.repo.Content().ListProgramItems(ctx); err != nil {
		return nil, err
	}
	if page.Files, err = s.repo.Content().ListSiteFiles(ctx); err != nil {
		return nil, err
	}
	if page.Documents, err = s.ListDocuments(ctx); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *contentService) open(ctx context.Context, filePath, name string) (io.ReadCloser, string, error) {
	rc, err := s.store.Open(ctx, filePath)
	if errors.Is(err, storage.ErrFileNotFound) {
		return nil, "", ErrFileNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return rc, name, nil
}

func (s *contentService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyHomepage); err != nil {
		s.logger.Warn("Homepage cache invalidation failed", "error", err)
	}
}
