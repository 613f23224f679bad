package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/utils"
)

// StatusRefresher is satisfied by services.ConferenceService.
type StatusRefresher interface {
	RefreshStatuses(ctx context.Context) (int, error)
}

// ConferenceStatusJob recomputes conference statuses at start-up and then at every local midnight.
type ConferenceStatusJob struct {
	refresher StatusRefresher
	clock     utils.Clock
	logger    *slog.Logger

	// after is replaced in tests
	after func(d time.Duration) <-chan time.Time
}

func NewConferenceStatusJob(refresher StatusRefresher, clock utils.Clock, logger *slog.Logger) *ConferenceStatusJob {
	return &ConferenceStatusJob{
		refresher: refresher,
		clock:     clock,
		logger:    logger.With("component", "conference_status_job"),
		after:     time.After,
	}
}

// Run blocks until ctx is canceled.
func (j *ConferenceStatusJob) Run(ctx context.Context) {
	j.runOnce(ctx)

	for {
		wait := NextMidnight(j.clock.Now()).Sub(j.clock.Now())
		j.logger.Debug("Next conference status refresh scheduled", "in", wait.String())

		select {
		case <-ctx.Done():
			j.logger.Info("Conference status job stopped")
			return
		case <-j.after(wait):
			j.runOnce(ctx)
		}
	}
}

func (j *ConferenceStatusJob) runOnce(ctx context.Context) {
	changed, err := j.refresher.RefreshStatuses(ctx)
	if err != nil {
		j.logger.Error("Failed to refresh conference statuses", "error", err)
		return
	}
	j.logger.Info("Conference statuses refreshed", "changed", changed)
}

// NextMidnight returns the start of the day after t in t's location.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}
