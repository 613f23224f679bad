package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/cache"
	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/SAP-F-2025/conference-service/internal/validator"
)

const (
	cacheKeyOngoingConferences = "conferences:ongoing"
	cachePatternConferences    = "conferences:*"
)

type conferenceService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	cacheTTL  time.Duration
	notifier  Notifier
	validator *validator.Validator
	clock     utils.Clock
	logger    *slog.Logger
}

func NewConferenceService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	cacheTTL time.Duration,
	notifier Notifier,
	validator *validator.Validator,
	clock utils.Clock,
	logger *slog.Logger,
) ConferenceService {
	return &conferenceService{
		repo:      repo,
		cache:     cacheService,
		cacheTTL:  cacheTTL,
		notifier:  notifier,
		validator: validator,
		clock:     clock,
		logger:    logger,
	}
}

func (s *conferenceService) Create(ctx context.Context, actor models.Actor, req *ConferenceRequest) (*models.Conference, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	conference := &models.Conference{CreatedBy: actor.UserID}
	applyConferenceRequest(conference, req)
	conference.Status = s.initialStatus(conference, req.Status)

	if err := s.repo.Conference().Create(ctx, conference); err != nil {
		return nil, fmt.Errorf("failed to create conference: %w", err)
	}

	s.invalidate(ctx)
	s.logger.Info("Conference created", "conference_id", conference.ID, "year", conference.Year, "status", conference.Status)
	return conference, nil
}

func (s *conferenceService) Update(ctx context.Context, id uint, req *ConferenceRequest) (*models.Conference, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	conference, err := s.repo.Conference().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrConferenceNotFound)
	}

	applyConferenceRequest(conference, req)
	conference.Status = s.initialStatus(conference, req.Status)

	if err := s.repo.Conference().Update(ctx, conference); err != nil {
		return nil, fmt.Errorf("failed to update conference: %w", err)
	}

	s.invalidate(ctx)
	return conference, nil
}

// Delete refuses to remove a conference that still has papers
func (s *conferenceService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Conference().GetByID(ctx, id); err != nil {
		return notFoundOr(err, ErrConferenceNotFound)
	}

	count, err := s.repo.Paper().CountByConference(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: conference has %d papers", ErrConflict, count)
	}
	published, err := s.repo.Content().HasDocument(ctx, id)
	if err != nil {
		return err
	}
	if published {
		return fmt.Errorf("%w: conference has published documents", ErrConflict)
	}

	if err := s.repo.Conference().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete conference: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *conferenceService) GetByID(ctx context.Context, id uint) (*models.Conference, error) {
	conference, err := s.repo.Conference().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrConferenceNotFound)
	}
	return conference, nil
}

func (s *conferenceService) List(ctx context.Context, filters repositories.ConferenceFilters) ([]*models.Conference, int64, error) {
	return s.repo.Conference().List(ctx, filters)
}

// ListOngoing serves the participant submission form from cache when possible
func (s *conferenceService) ListOngoing(ctx context.Context) ([]*models.Conference, error) {
	var cached []*models.Conference
	err := s.cache.Get(ctx, cacheKeyOngoingConferences, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Conference cache read failed", "error", err)
	}

	conferences, err := s.repo.Conference().GetByStatus(ctx, models.ConferenceOngoing)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKeyOngoingConferences, conferences, s.cacheTTL); err != nil {
		s.logger.Warn("Conference cache write failed", "error", err)
	}
	return conferences, nil
}

// RefreshStatuses is idempotent: conferences whose status already matches
// their dates are left untouched
func (s *conferenceService) RefreshStatuses(ctx context.Context) (int, error) {
	conferences, err := s.repo.Conference().GetAll(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	changed := 0
	for _, conference := range conferences {
		next := conference.ComputeStatus(now)
		if next == conference.Status {
			continue
		}
		if err := s.repo.Conference().UpdateStatus(ctx, conference.ID, next); err != nil {
			s.logger.Error("Failed to update conference status",
				"conference_id", conference.ID,
				"error", err)
			continue
		}

		from := conference.Status
		conference.Status = next
		changed++
		s.logger.Info("Conference status changed",
			"conference_id", conference.ID,
			"from", from,
			"to", next)
		s.notifier.ConferenceStatusChanged(ctx, conference, from)
	}

	if changed > 0 {
		s.invalidate(ctx)
	}
	return changed, nil
}

// initialStatus derives the status from the dates; only cancellation can be
// chosen explicitly
func (s *conferenceService) initialStatus(conference *models.Conference, requested models.ConferenceStatus) models.ConferenceStatus {
	if requested == models.ConferenceCanceled {
		return models.ConferenceCanceled
	}
	conference.Status = ""
	return conference.ComputeStatus(s.clock.Now())
}

func (s *conferenceService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, cachePatternConferences); err != nil {
		s.logger.Warn("Conference cache invalidation failed", "error", err)
	}
}

func applyConferenceRequest(conference *models.Conference, req *ConferenceRequest) {
	conference.Year = req.Year
	conference.Location = req.Location
	conference.University = req.University
	conference.StartDate = req.StartDate
	conference.EndDate = req.EndDate
	conference.DeadlineSubmission = models.EndOfDay(req.DeadlineSubmission)
	conference.DeadlineReview = models.EndOfDay(req.DeadlineReview)
	conference.SubmissionConfirmation = endOfDayPtr(req.SubmissionConfirmation)
	conference.DeadlineCorrection = endOfDayPtr(req.DeadlineCorrection)
}

func endOfDayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	eod := models.EndOfDay(*t)
	return &eod
}
