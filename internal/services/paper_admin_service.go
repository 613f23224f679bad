package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/storage"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/SAP-F-2025/conference-service/internal/validator"
	"github.com/SAP-F-2025/conference-service/internal/workflow"
)

type paperAdminService struct {
	repo      repositories.Repository
	store     storage.FileStore
	notifier  Notifier
	validator *validator.Validator
	clock     utils.Clock
	logger    *slog.Logger
	ops       *ServiceLogger
}

func NewPaperAdminService(
	repo repositories.Repository,
	store storage.FileStore,
	notifier Notifier,
	validator *validator.Validator,
	clock utils.Clock,
	logger *slog.Logger,
) PaperAdminService {
	return &paperAdminService{
		repo:      repo,
		store:     store,
		notifier:  notifier,
		validator: validator,
		clock:     clock,
		logger:    logger,
		ops:       NewServiceLogger(logger, "paper_admin"),
	}
}

// AssignReviewer sets or replaces the reviewer of a paper and moves it under review.
// Every assignment is appended to the assignment log. A sent review from an
// earlier round is archived so the paper carries at most one sent review.
func (s *paperAdminService) AssignReviewer(ctx context.Context, actor models.Actor, id, reviewerID uint) (paper *models.Paper, err error) {
	op := s.ops.WithOperation(ctx, "assign_reviewer", actor.UserID)
	defer func() { op.LogResult(id, "paper", err) }()

	if !actor.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}

	reviewer, err := s.repo.User().GetByID(ctx, reviewerID)
	if repositories.IsNotFoundError(err) {
		return nil, fieldError("reviewer_id", "reviewer does not exist", reviewerID)
	}
	if err != nil {
		return nil, err
	}
	if reviewer.Role != models.RoleReviewer {
		return nil, fieldError("reviewer_id", "user is not a reviewer", reviewerID)
	}

	paper, err = s.repo.Paper().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrPaperNotFound)
	}

	now := s.clock.Now()
	previous := paper.ReviewerID
	history, err := transition(paper, workflow.EventAssignReviewer, actor.UserID, now)
	if err != nil {
		return nil, err
	}
	paper.ReviewerID = &reviewer.ID
	paper.ReviewID = nil

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Paper().Update(ctx, paper); err != nil {
			return err
		}
		if err := tx.Review().ArchiveSent(ctx, paper.ID, string(workflow.EventAssignReviewer), now); err != nil {
			return err
		}
		if err := tx.Assignment().Create(ctx, &models.ReviewerAssignment{
			PaperID:            paper.ID,
			ReviewerID:         reviewer.ID,
			PreviousReviewerID: previous,
			AssignedBy:         actor.UserID,
			AssignedAt:         now,
		}); err != nil {
			return err
		}
		return tx.StatusHistory().Create(ctx, history)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assign reviewer: %w", err)
	}

	s.logger.Info("Reviewer assigned", "paper_id", paper.ID, "reviewer_id", reviewer.ID, "previous_reviewer_id", previous)
	s.notifier.ReviewerAssigned(ctx, paper, reviewer, previous, actor.UserID)
	return paper, nil
}

// ChangeDeadline returns the paper to draft with a new personal submission deadline.
// The review round ends: sent reviews are archived and open drafts dropped.
func (s *paperAdminService) ChangeDeadline(ctx context.Context, actor models.Actor, id uint, deadline time.Time) (paper *models.Paper, err error) {
	op := s.ops.WithOperation(ctx, "change_deadline", actor.UserID)
	defer func() { op.LogResult(id, "paper", err) }()

	if !actor.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}

	now := s.clock.Now()
	if deadline.IsZero() || models.DeadlinePassed(deadline, now) {
		return nil, fieldError("deadline_date", "must not be in the past", deadline)
	}

	paper, err = s.repo.Paper().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrPaperNotFound)
	}

	history, err := transition(paper, workflow.EventReset, actor.UserID, now)
	if err != nil {
		return nil, err
	}
	paper.DeadlineDate = models.EndOfDay(deadline)
	paper.ReviewerID = nil
	paper.ReviewID = nil

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Paper().Update(ctx, paper); err != nil {
			return err
		}
		if err := tx.Review().ArchiveSent(ctx, paper.ID, string(workflow.EventReset), now); err != nil {
			return err
		}
		if err := dropDrafts(ctx, tx, paper.ID); err != nil {
			return err
		}
		return tx.StatusHistory().Create(ctx, history)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to change deadline: %w", err)
	}

	s.notifier.PaperReset(ctx, paper)
	return paper, nil
}

func (s *paperAdminService) Update(ctx context.Context, actor models.Actor, id uint, req *AdminUpdatePaperRequest) (*models.Paper, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	paper, err := s.repo.Paper().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrPaperNotFound)
	}

	if req.CategoryID != nil {
		if _, err := s.repo.Category().GetByID(ctx, *req.CategoryID); err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, fieldError("category_id", "category does not exist", *req.CategoryID)
			}
			return nil, err
		}
		paper.CategoryID = *req.CategoryID
	}
	if req.Authors != nil {
		paper.Authors = req.Authors
	}
	if req.Awarded != nil {
		paper.Awarded = req.Awarded
	}

	if err := s.repo.Paper().Update(ctx, paper); err != nil {
		return nil, fmt.Errorf("failed to update paper: %w", err)
	}

	s.logger.Info("Paper updated by admin", "paper_id", paper.ID, "admin_id", actor.UserID)
	return paper, nil
}

// Delete removes a paper in any state together with its reviews and file
func (s *paperAdminService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	paper, err := s.repo.Paper().GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrPaperNotFound)
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Review().DeleteByPaper(ctx, paper.ID); err != nil {
			return err
		}
		return tx.Paper().Delete(ctx, paper.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete paper: %w", err)
	}

	removeStoredFile(ctx, s.store, s.logger, paper.FilePath)
	s.logger.Info("Paper deleted by admin", "paper_id", paper.ID, "admin_id", actor.UserID)
	return nil
}

func (s *paperAdminService) List(ctx context.Context, filters repositories.PaperFilters) ([]*models.Paper, int64, error) {
	return s.repo.Paper().List(ctx, filters)
}

func (s *paperAdminService) GetByID(ctx context.Context, id uint) (*PaperDetails, error) {
	paper, err := s.repo.Paper().GetByIDWithDetails(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrPaperNotFound)
	}

	assignments, err := s.repo.Assignment().GetByPaper(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}
	history, err := s.repo.StatusHistory().GetByPaper(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}
	archived, err := s.repo.Review().ArchivedByPaper(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load archived reviews: %w", err)
	}

	return &PaperDetails{Paper: paper, Assignments: assignments, History: history, ArchivedReviews: archived}, nil
}

func dropDrafts(ctx context.Context, tx repositories.Repository, paperID uint) error {
	isDraft := true
	drafts, err := tx.Review().List(ctx, repositories.ReviewFilters{PaperID: &paperID, IsDraft: &isDraft})
	if err != nil {
		return err
	}
	for _, draft := range drafts {
		if err := tx.Review().Delete(ctx, draft.ID); err != nil {
			return err
		}
	}
	return nil
}
