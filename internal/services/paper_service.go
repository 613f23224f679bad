package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/storage"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/SAP-F-2025/conference-service/internal/validator"
	"github.com/SAP-F-2025/conference-service/internal/workflow"
)

type paperService struct {
	repo      repositories.Repository
	store     storage.FileStore
	notifier  Notifier
	validator *validator.Validator
	clock     utils.Clock
	logger    *slog.Logger
	ops       *ServiceLogger
}

func NewPaperService(
	repo repositories.Repository,
	store storage.FileStore,
	notifier Notifier,
	validator *validator.Validator,
	clock utils.Clock,
	logger *slog.Logger,
) PaperService {
	return &paperService{
		repo:      repo,
		store:     store,
		notifier:  notifier,
		validator: validator,
		clock:     clock,
		logger:    logger,
		ops:       NewServiceLogger(logger, "paper"),
	}
}

// ===== SUBMISSION =====

func (s *paperService) Submit(ctx context.Context, actor models.Actor, req *SubmitPaperRequest, file *FileUpload) (paper *models.Paper, err error) {
	op := s.ops.WithOperation(ctx, "submit_paper", actor.UserID)
	defer func() { op.LogResult(paperID(paper), "paper", err) }()

	if !actor.Is(models.RoleParticipant) {
		return nil, ErrForbidden
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	conference, err := s.repo.Conference().GetByID(ctx, req.ConferenceID)
	if err != nil {
		return nil, notFoundOr(err, ErrConferenceNotFound)
	}

	now := s.clock.Now()
	if models.DeadlinePassed(conference.DeadlineSubmission, now) {
		return nil, ErrDeadlineExpired
	}
	if conference.Status != models.ConferenceOngoing {
		return nil, ErrConferenceNotOngoing
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, s.validator.ValidatePaperFile("")
	}
	if err := s.validator.ValidatePaperFile(file.Name); err != nil {
		return nil, err
	}

	paper = &models.Paper{
		Title:          req.Title,
		Abstract:       req.Abstract,
		Keywords:       req.Keywords,
		Authors:        req.Authors,
		UserID:         actor.UserID,
		ConferenceID:   conference.ID,
		CategoryID:     req.CategoryID,
		SubmissionDate: now,
		DeadlineDate:   models.EndOfDay(conference.DeadlineSubmission),
		Status:         models.PaperDraft,
	}

	var history *models.PaperStatusHistory
	if req.Final {
		if history, err = transition(paper, workflow.EventSubmit, actor.UserID, now); err != nil {
			return nil, err
		}
	}

	filePath, err := s.store.Save(ctx, file.Reader, file.Name, paperDir(conference))
	if err != nil {
		return nil, fmt.Errorf("failed to store paper file: %w", err)
	}
	paper.FilePath = filePath

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Paper().Create(ctx, paper); err != nil {
			return err
		}
		if history != nil {
			history.PaperID = paper.ID
			return tx.StatusHistory().Create(ctx, history)
		}
		return nil
	})
	if err != nil {
		s.removeFile(ctx, filePath)
		return nil, fmt.Errorf("failed to create paper: %w", err)
	}

	if paper.Status == models.PaperSubmitted {
		s.notifier.PaperSubmitted(ctx, paper)
	}
	return paper, nil
}

// ===== EDITING =====

func (s *paperService) Edit(ctx context.Context, actor models.Actor, id uint, req *UpdatePaperRequest, file *FileUpload) (paper *models.Paper, err error) {
	op := s.ops.WithOperation(ctx, "edit_paper", actor.UserID)
	defer func() { op.LogResult(id, "paper", err) }()

	paper, err = s.repo.Paper().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrPaperNotFound)
	}
	if !paper.IsOwnedBy(actor.UserID) {
		return nil, ErrNotOwner
	}
	if !workflow.IsEditableByOwner(paper.Status) || paper.ReviewerID != nil && paper.Status != models.PaperAcceptedWithChanges {
		return nil, fmt.Errorf("%w: paper in status %s cannot be edited", ErrInvalidState, paper.Status)
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.checkEditDeadline(ctx, paper, now); err != nil {
		return nil, err
	}
	if req.CategoryID != nil && *req.CategoryID != paper.CategoryID {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	if file != nil {
		if err := s.validator.ValidatePaperFile(file.Name); err != nil {
			return nil, err
		}
	}

	applyPaperUpdate(paper, req)

	var history *models.PaperStatusHistory
	if req.Final {
		switch paper.Status {
		case models.PaperDraft:
			history, err = transition(paper, workflow.EventSubmit, actor.UserID, now)
		case models.PaperAcceptedWithChanges:
			history, err = transition(paper, workflow.EventResubmit, actor.UserID, now)
		}
		if err != nil {
			return nil, err
		}
	}

	// New file first, record second, old file last
	oldPath := paper.FilePath
	var newPath string
	if file != nil {
		newPath, err = s.store.Save(ctx, file.Reader, file.Name, path.Dir(oldPath))
		if err != nil {
			return nil, fmt.Errorf("failed to store paper file: %w", err)
		}
		paper.FilePath = newPath
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Paper().Update(ctx, paper); err != nil {
			return err
		}
		if history != nil {
			return tx.StatusHistory().Create(ctx, history)
		}
		return nil
	})
	if err != nil {
		if newPath != "" {
			s.removeFile(ctx, newPath)
		}
		return nil, fmt.Errorf("failed to update paper: %w", err)
	}

	if newPath != "" && oldPath != "" {
		s.removeFile(ctx, oldPath)
	}
	if history != nil {
		s.notifier.PaperSubmitted(ctx, paper)
	}
	return paper, nil
}

func (s *paperService) Delete(ctx context.Context, actor models.Actor, id uint) (err error) {
	op := s.ops.WithOperation(ctx, "delete_paper", actor.UserID)
	defer func() { op.LogResult(id, "paper", err) }()

	paper, err := s.repo.Paper().GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrPaperNotFound)
	}
	if !paper.IsOwnedBy(actor.UserID) {
		return ErrNotOwner
	}
	if paper.Status != models.PaperDraft {
		return fmt.Errorf("%w: only draft papers can be deleted", ErrInvalidState)
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		// a paper reset to draft keeps archived reviews of earlier rounds
		if err := tx.Review().DeleteByPaper(ctx, paper.ID); err != nil {
			return err
		}
		return tx.Paper().Delete(ctx, paper.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete paper: %w", err)
	}
	s.removeFile(ctx, paper.FilePath)
	return nil
}

// ===== QUERIES =====

func (s *paperService) ListMine(ctx context.Context, actor models.Actor) ([]*models.Paper, error) {
	return s.repo.Paper().GetByUser(ctx, actor.UserID)
}

func (s *paperService) GetMine(ctx context.Context, actor models.Actor, id uint) (*models.Paper, error) {
	paper, err := s.repo.Paper().GetByIDWithDetails(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrPaperNotFound)
	}
	if !paper.IsOwnedBy(actor.UserID) {
		return nil, ErrNotOwner
	}
	return paper, nil
}

// GetReview returns the sent review of the caller's paper
func (s *paperService) GetReview(ctx context.Context, actor models.Actor, id uint) (*models.Review, error) {
	paper, err := s.repo.Paper().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrPaperNotFound)
	}
	if !paper.IsOwnedBy(actor.UserID) {
		return nil, ErrNotOwner
	}
	if paper.ReviewID == nil {
		return nil, ErrReviewNotFound
	}

	review, err := s.repo.Review().GetByID(ctx, *paper.ReviewID)
	if err != nil {
		return nil, notFoundOr(err, ErrReviewNotFound)
	}
	if !review.IsSent() {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// OpenFile streams the paper document to its owner, its reviewer or an admin
func (s *paperService) OpenFile(ctx context.Context, actor models.Actor, id uint) (io.ReadCloser, string, error) {
	paper, err := s.repo.Paper().GetByID(ctx, id)
	if err != nil {
		return nil, "", notFoundOr(err, ErrPaperNotFound)
	}
	if !actor.Is(models.RoleAdmin) && !paper.IsOwnedBy(actor.UserID) && !paper.IsAssignedTo(actor.UserID) {
		return nil, "", ErrForbidden
	}

	rc, err := s.store.Open(ctx, paper.FilePath)
	if errors.Is(err, storage.ErrFileNotFound) {
		return nil, "", ErrFileNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return rc, path.Base(paper.FilePath), nil
}

// ===== HELPERS =====

func (s *paperService) checkCategory(ctx context.Context, categoryID uint) error {
	category, err := s.repo.Category().GetByID(ctx, categoryID)
	if repositories.IsNotFoundError(err) {
		return fieldError("category_id", "category does not exist", categoryID)
	}
	if err != nil {
		return err
	}
	if !category.IsActive {
		return fieldError("category_id", "category is not active", categoryID)
	}
	return nil
}

// checkEditDeadline applies the submission deadline snapshot to drafts and
// submissions, and the correction deadline to papers accepted with changes
func (s *paperService) checkEditDeadline(ctx context.Context, paper *models.Paper, now time.Time) error {
	if paper.Status != models.PaperAcceptedWithChanges {
		if models.DeadlinePassed(paper.DeadlineDate, now) {
			return ErrDeadlineExpired
		}
		return nil
	}

	conference, err := s.repo.Conference().GetByID(ctx, paper.ConferenceID)
	if err != nil {
		return notFoundOr(err, ErrConferenceNotFound)
	}
	if conference.DeadlineCorrection != nil && models.DeadlinePassed(*conference.DeadlineCorrection, now) {
		return ErrDeadlineExpired
	}
	return nil
}

func (s *paperService) removeFile(ctx context.Context, filePath string) {
	removeStoredFile(ctx, s.store, s.logger, filePath)
}

func applyPaperUpdate(paper *models.Paper, req *UpdatePaperRequest) {
	if req.Title != nil {
		paper.Title = *req.Title
	}
	if req.Abstract != nil {
		paper.Abstract = *req.Abstract
	}
	if req.Keywords != nil {
		paper.Keywords = req.Keywords
	}
	if req.Authors != nil {
		paper.Authors = req.Authors
	}
	if req.CategoryID != nil {
		paper.CategoryID = *req.CategoryID
	}
}

// transition moves paper through event and returns the history entry to persist
func transition(paper *models.Paper, event workflow.Event, actorID uint, now time.Time) (*models.PaperStatusHistory, error) {
	next, err := workflow.Transition(paper.Status, event)
	if err != nil {
		return nil, transitionError(err)
	}

	entry := &models.PaperStatusHistory{
		PaperID:    paper.ID,
		FromStatus: paper.Status,
		ToStatus:   next,
		Event:      string(event),
		ChangedBy:  actorID,
		CreatedAt:  now,
	}
	paper.Status = next
	return entry, nil
}

// removeStoredFile deletes a superseded file; failures are only logged
func removeStoredFile(ctx context.Context, store storage.FileStore, logger *slog.Logger, filePath string) {
	if filePath == "" {
		return
	}
	if err := store.Delete(ctx, filePath); err != nil && !errors.Is(err, storage.ErrFileNotFound) {
		logger.WarnContext(ctx, "Failed to remove stored file", "path", filePath, "error", err)
	}
}

func paperDir(conference *models.Conference) string {
	return fmt.Sprintf("papers %d", conference.Year)
}

func paperID(p *models.Paper) uint {
	if p == nil {
		return 0
	}
	return p.ID
}
