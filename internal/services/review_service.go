package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/SAP-F-2025/conference-service/internal/validator"
	"github.com/SAP-F-2025/conference-service/internal/workflow"
)

type reviewService struct {
	repo      repositories.Repository
	notifier  Notifier
	validator *validator.Validator
	clock     utils.Clock
	logger    *slog.Logger
	ops       *ServiceLogger
}

func NewReviewService(
	repo repositories.Repository,
	notifier Notifier,
	validator *validator.Validator,
	clock utils.Clock,
	logger *slog.Logger,
) ReviewService {
	return &reviewService{
		repo:      repo,
		notifier:  notifier,
		validator: validator,
		clock:     clock,
		logger:    logger,
		ops:       NewServiceLogger(logger, "review"),
	}
}

// ===== DRAFTS =====

// SaveDraft creates the reviewer's draft for a paper or overwrites the existing one
func (s *reviewService) SaveDraft(ctx context.Context, actor models.Actor, paperID uint, req *ReviewRequest) (review *models.Review, err error) {
	op := s.ops.WithOperation(ctx, "save_review_draft", actor.UserID)
	defer func() { op.LogResult(paperID, "paper", err) }()

	paper, err := s.reviewablePaper(ctx, actor, paperID)
	if err != nil {
		return nil, err
	}
	if err := s.checkResponses(ctx, req); err != nil {
		return nil, err
	}

	review, err = s.repo.Review().GetByPaperAndReviewer(ctx, paper.ID, actor.UserID)
	switch {
	case repositories.IsNotFoundError(err):
		review = &models.Review{
			PaperID:    paper.ID,
			ReviewerID: actor.UserID,
			IsDraft:    true,
		}
		applyReviewRequest(review, req)
		if err := s.repo.Review().Create(ctx, review); err != nil {
			return nil, fmt.Errorf("failed to create review: %w", err)
		}
		return review, nil
	case err != nil:
		return nil, err
	case review.IsSent():
		return nil, ErrAlreadySent
	}

	applyReviewRequest(review, req)
	if err := s.repo.Review().Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

func (s *reviewService) UpdateDraft(ctx context.Context, actor models.Actor, reviewID uint, req *ReviewRequest) (review *models.Review, err error) {
	op := s.ops.WithOperation(ctx, "update_review_draft", actor.UserID)
	defer func() { op.LogResult(reviewID, "review", err) }()

	review, err = s.ownDraft(ctx, actor, reviewID)
	if err != nil {
		return nil, err
	}
	if _, err := s.reviewablePaper(ctx, actor, review.PaperID); err != nil {
		return nil, err
	}
	if err := s.checkResponses(ctx, req); err != nil {
		return nil, err
	}

	applyReviewRequest(review, req)
	if err := s.repo.Review().Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

func (s *reviewService) DeleteDraft(ctx context.Context, actor models.Actor, reviewID uint) error {
	review, err := s.ownDraft(ctx, actor, reviewID)
	if err != nil {
		return err
	}
	if err := s.repo.Review().Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// ===== SENDING =====

// Send makes the review final and applies its recommendation to the paper
func (s *reviewService) Send(ctx context.Context, actor models.Actor, reviewID uint) (review *models.Review, err error) {
	op := s.ops.WithOperation(ctx, "send_review", actor.UserID)
	defer func() { op.LogResult(reviewID, "review", err) }()

	review, err = s.ownDraft(ctx, actor, reviewID)
	if err != nil {
		return nil, err
	}
	paper, err := s.reviewablePaper(ctx, actor, review.PaperID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	from := paper.Status
	history, err := transition(paper, workflow.EventForRecommendation(review.Recommendation), actor.UserID, now)
	if err != nil {
		return nil, err
	}

	review.IsDraft = false
	review.SentAt = &now
	paper.ReviewID = &review.ID

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Review().Update(ctx, review); err != nil {
			return err
		}
		if err := tx.Paper().Update(ctx, paper); err != nil {
			return err
		}
		return tx.StatusHistory().Create(ctx, history)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send review: %w", err)
	}

	s.logger.Info("Review sent",
		"review_id", review.ID,
		"paper_id", paper.ID,
		"recommendation", review.Recommendation,
		"paper_status", paper.Status)
	s.notifier.PaperStatusChanged(ctx, paper, review, from)
	return review, nil
}

// ===== QUERIES =====

// AssignedPending lists papers assigned to the reviewer that they have not reviewed yet
func (s *reviewService) AssignedPending(ctx context.Context, actor models.Actor) ([]*models.Paper, error) {
	papers, err := s.repo.Paper().GetByReviewer(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	sent, err := s.repo.Review().SentPaperIDs(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	pending := make([]*models.Paper, 0, len(papers))
	for _, paper := range papers {
		if !slices.Contains(sent, paper.ID) {
			pending = append(pending, paper)
		}
	}
	return pending, nil
}

func (s *reviewService) ListReviews(ctx context.Context, actor models.Actor) ([]*models.Review, error) {
	return s.repo.Review().List(ctx, repositories.ReviewFilters{ReviewerID: &actor.UserID})
}

func (s *reviewService) ListSent(ctx context.Context, actor models.Actor) ([]*models.Review, error) {
	isDraft := false
	return s.repo.Review().List(ctx, repositories.ReviewFilters{ReviewerID: &actor.UserID, IsDraft: &isDraft})
}

func (s *reviewService) GetReview(ctx context.Context, actor models.Actor, reviewID uint) (*models.Review, error) {
	review, err := s.repo.Review().GetByIDWithPaper(ctx, reviewID)
	if err != nil {
		return nil, notFoundOr(err, ErrReviewNotFound)
	}
	if review.ReviewerID != actor.UserID {
		return nil, ErrNotOwner
	}
	return review, nil
}

// ===== ADMIN CONTACT =====

func (s *reviewService) ContactAdmins(ctx context.Context, actor models.Actor, req *ContactAdminsRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	reviewer, err := s.repo.User().GetByID(ctx, actor.UserID)
	if err != nil {
		return notFoundOr(err, ErrUserNotFound)
	}

	var recipients []*models.User
	if req.AdminID != nil {
		admin, err := s.repo.User().GetByID(ctx, *req.AdminID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return err
		}
		if admin == nil || admin.Role != models.RoleAdmin {
			return fieldError("admin_id", "user is not an administrator", *req.AdminID)
		}
		recipients = []*models.User{admin}
	} else {
		recipients, err = s.repo.User().GetByRole(ctx, models.RoleAdmin)
		if err != nil {
			return err
		}
	}

	return s.notifier.ReviewerMessage(ctx, reviewer, recipients, req)
}

func (s *reviewService) ListAdmins(ctx context.Context) ([]*models.User, error) {
	return s.repo.User().GetByRole(ctx, models.RoleAdmin)
}

// ===== HELPERS =====

// reviewablePaper loads a paper the actor may review right now: assigned to
// them, under review and before the review deadline
func (s *reviewService) reviewablePaper(ctx context.Context, actor models.Actor, paperID uint) (*models.Paper, error) {
	if !actor.Is(models.RoleReviewer) {
		return nil, ErrForbidden
	}

	paper, err := s.repo.Paper().GetByID(ctx, paperID)
	if err != nil {
		return nil, notFoundOr(err, ErrPaperNotFound)
	}
	if !paper.IsAssignedTo(actor.UserID) {
		return nil, ErrNotAssignedReviewer
	}
	if paper.Status != models.PaperUnderReview {
		return nil, fmt.Errorf("%w: paper is %s", ErrInvalidState, paper.Status)
	}

	conference, err := s.repo.Conference().GetByID(ctx, paper.ConferenceID)
	if err != nil {
		return nil, notFoundOr(err, ErrConferenceNotFound)
	}
	if models.DeadlinePassed(conference.DeadlineReview, s.clock.Now()) {
		return nil, ErrReviewDeadlineExpired
	}
	return paper, nil
}

func (s *reviewService) ownDraft(ctx context.Context, actor models.Actor, reviewID uint) (*models.Review, error) {
	review, err := s.repo.Review().GetByID(ctx, reviewID)
	if err != nil {
		return nil, notFoundOr(err, ErrReviewNotFound)
	}
	if review.ReviewerID != actor.UserID {
		return nil, ErrNotOwner
	}
	if review.IsSent() {
		return nil, ErrAlreadySent
	}
	return review, nil
}

func (s *reviewService) checkResponses(ctx context.Context, req *ReviewRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if len(req.Responses) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(req.Responses))
	for _, r := range req.Responses {
		ids = append(ids, r.QuestionID)
	}
	existing, err := s.repo.Question().ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}

	var errs ValidationErrors
	for i, id := range ids {
		if !slices.Contains(existing, id) {
			errs = append(errs, *NewValidationError(fmt.Sprintf("responses[%d].question_id", i), "question does not exist", id))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func applyReviewRequest(review *models.Review, req *ReviewRequest) {
	review.Responses = req.Responses
	review.Comments = req.Comments
	review.Recommendation = req.Recommendation
}
