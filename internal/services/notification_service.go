package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/conference-service/internal/events"
	"github.com/SAP-F-2025/conference-service/internal/mailer"
	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/utils"
)

// Notifier delivers emails and domain events after a state change has been
// committed. Delivery failures are logged and never reported to the caller,
// except for ReviewerMessage where the email is the operation itself.
type Notifier interface {
	PaperSubmitted(ctx context.Context, paper *models.Paper)
	ReviewerAssigned(ctx context.Context, paper *models.Paper, reviewer *models.User, previousReviewerID *uint, assignedBy uint)
	PaperStatusChanged(ctx context.Context, paper *models.Paper, review *models.Review, from models.PaperStatus)
	PaperReset(ctx context.Context, paper *models.Paper)
	VerificationRequested(ctx context.Context, user *models.User)
	VerificationResent(ctx context.Context, user *models.User)
	PasswordResetRequested(ctx context.Context, user *models.User)
	ConferenceStatusChanged(ctx context.Context, conference *models.Conference, from models.ConferenceStatus)
	ReviewerMessage(ctx context.Context, reviewer *models.User, recipients []*models.User, req *ContactAdminsRequest) error

	// Close waits for in-flight deliveries
	Close()
}

type NotifierConfig struct {
	FrontendURL string
	Async       bool
}

type notificationService struct {
	repo      repositories.Repository
	mailer    mailer.Sender
	publisher events.EventPublisher
	clock     utils.Clock
	logger    *slog.Logger
	config    NotifierConfig
	wg        sync.WaitGroup
}

func NewNotificationService(
	repo repositories.Repository,
	sender mailer.Sender,
	publisher events.EventPublisher,
	clock utils.Clock,
	logger *slog.Logger,
	config NotifierConfig,
) Notifier {
	return &notificationService{
		repo:      repo,
		mailer:    sender,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
		config:    config,
	}
}

func (s *notificationService) Close() {
	s.wg.Wait()
}

// dispatch runs fn in the background when async delivery is enabled.
// The request context is detached so delivery outlives the response.
func (s *notificationService) dispatch(ctx context.Context, kind string, fn func(ctx context.Context) error) {
	run := func(ctx context.Context) {
		if err := fn(ctx); err != nil {
			s.logger.ErrorContext(ctx, "Notification delivery failed", "kind", kind, "error", err)
		}
	}

	if !s.config.Async {
		run(ctx)
		return
	}

	s.wg.Add(1)
	go func(ctx context.Context) {
		defer s.wg.Done()
		run(ctx)
	}(context.WithoutCancel(ctx))
}

func (s *notificationService) publish(ctx context.Context, eventType events.EventType, data any) error {
	return s.publisher.PublishNotificationEvent(ctx, events.NewNotificationEvent(eventType, data, s.clock.Now()))
}

func (s *notificationService) mail(ctx context.Context, to *models.User, msg mailer.Message) error {
	if to == nil || to.Email == "" {
		return nil
	}
	return s.mailer.Send(ctx, []string{to.Email}, msg.Subject, msg.HTML)
}

func (s *notificationService) url(path string) string {
	return s.config.FrontendURL + path
}

// ===== PAPER NOTIFICATIONS =====

func (s *notificationService) PaperSubmitted(ctx context.Context, paper *models.Paper) {
	p := *paper
	s.dispatch(ctx, "paper_submitted", func(ctx context.Context) error {
		return s.publish(ctx, events.EventPaperSubmitted, events.PaperSubmittedEvent{
			PaperID:      p.ID,
			Title:        p.Title,
			UserID:       p.UserID,
			ConferenceID: p.ConferenceID,
			Status:       string(p.Status),
		})
	})
}

func (s *notificationService) ReviewerAssigned(ctx context.Context, paper *models.Paper, reviewer *models.User, previousReviewerID *uint, assignedBy uint) {
	p, r := *paper, *reviewer
	s.dispatch(ctx, string(models.NotificationReviewerAssigned), func(ctx context.Context) error {
		mailErr := s.mail(ctx, &r, mailer.ReviewerAssignedEmail(r.FullName(), p.Title, s.url("/reviewer")))
		eventErr := s.publish(ctx, events.EventPaperReviewerAssigned, events.ReviewerAssignedEvent{
			PaperID:            p.ID,
			ReviewerID:         r.ID,
			PreviousReviewerID: previousReviewerID,
			AssignedBy:         assignedBy,
		})
		return errors.Join(mailErr, eventErr)
	})
}

func (s *notificationService) PaperStatusChanged(ctx context.Context, paper *models.Paper, review *models.Review, from models.PaperStatus) {
	p, r := *paper, *review
	s.dispatch(ctx, string(models.NotificationPaperDecision), func(ctx context.Context) error {
		owner, err := s.repo.User().GetByID(ctx, p.UserID)
		if err != nil {
			return fmt.Errorf("failed to load paper owner: %w", err)
		}

		mailErr := s.mail(ctx, owner, mailer.PaperDecisionEmail(owner.FullName(), p.Title, string(p.Status), s.url("/participant")))
		eventErr := errors.Join(
			s.publish(ctx, events.EventReviewSent, events.ReviewSentEvent{
				ReviewID:       r.ID,
				PaperID:        p.ID,
				ReviewerID:     r.ReviewerID,
				Recommendation: string(r.Recommendation),
				PaperStatus:    string(p.Status),
			}),
			s.publish(ctx, events.EventPaperStatusChanged, events.PaperStatusChangedEvent{
				PaperID:    p.ID,
				UserID:     p.UserID,
				FromStatus: string(from),
				ToStatus:   string(p.Status),
				Trigger:    "review_sent",
			}),
		)
		return errors.Join(mailErr, eventErr)
	})
}

func (s *notificationService) PaperReset(ctx context.Context, paper *models.Paper) {
	p := *paper
	s.dispatch(ctx, string(models.NotificationPaperReset), func(ctx context.Context) error {
		owner, err := s.repo.User().GetByID(ctx, p.UserID)
		if err != nil {
			return fmt.Errorf("failed to load paper owner: %w", err)
		}

		deadline := p.DeadlineDate.Format("02.01.2006")
		mailErr := s.mail(ctx, owner, mailer.PaperResetEmail(owner.FullName(), p.Title, deadline, s.url("/participant")))
		eventErr := s.publish(ctx, events.EventPaperReset, events.PaperResetEvent{
			PaperID:     p.ID,
			UserID:      p.UserID,
			NewDeadline: p.DeadlineDate,
		})
		return errors.Join(mailErr, eventErr)
	})
}

// ===== ACCOUNT NOTIFICATIONS =====

func (s *notificationService) VerificationRequested(ctx context.Context, user *models.User) {
	u := *user
	s.dispatch(ctx, string(models.NotificationEmailVerification), func(ctx context.Context) error {
		if u.VerificationToken == nil {
			return nil
		}
		link := s.url("/verify-email?token=" + *u.VerificationToken)
		mailErr := s.mail(ctx, &u, mailer.VerificationEmail(u.FullName(), link))
		eventErr := s.publish(ctx, events.EventUserRegistered, events.UserRegisteredEvent{
			UserID: u.ID,
			Email:  u.Email,
			Role:   string(u.Role),
		})
		return errors.Join(mailErr, eventErr)
	})
}

// ReviewerMessage mails each administrator separately so recipients never see
// each other's addresses
func (s *notificationService) VerificationResent(ctx context.Context, user *models.User) {
	u := *user
	s.dispatch(ctx, string(models.NotificationEmailVerification), func(ctx context.Context) error {
		if u.VerificationToken == nil {
			return nil
		}
		return s.mail(ctx, &u, mailer.VerificationEmail(u.FullName(), s.url("/verify-email?token="+*u.VerificationToken)))
	})
}

func (s *notificationService) PasswordResetRequested(ctx context.Context, user *models.User) {
	u := *user
	s.dispatch(ctx, string(models.NotificationPasswordReset), func(ctx context.Context) error {
		if u.PasswordResetToken == nil || u.PasswordResetExpiresAt == nil {
			return nil
		}
		link := s.url("/reset-password?token=" + *u.PasswordResetToken)
		mailErr := s.mail(ctx, &u, mailer.PasswordResetEmail(u.FullName(), link))
		eventErr := s.publish(ctx, events.EventPasswordResetRequested, events.PasswordResetRequestedEvent{
			UserID:    u.ID,
			ExpiresAt: *u.PasswordResetExpiresAt,
		})
		return errors.Join(mailErr, eventErr)
	})
}

func (s *notificationService) ReviewerMessage(ctx context.Context, reviewer *models.User, recipients []*models.User, req *ContactAdminsRequest) error {
	if len(recipients) == 0 {
		return fieldError("admin_id", "no administrator to contact", nil)
	}

	msg := mailer.ReviewerMessageEmail(reviewer.FullName(), reviewer.Email, req.Subject, req.Message)
	var errs []error
	for _, r := range recipients {
		if err := s.mailer.Send(ctx, []string{r.Email}, msg.Subject, msg.HTML); err != nil {
			s.logger.Error("Failed to send reviewer message", "admin_id", r.ID, "error", err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to send message to administrators: %w", errors.Join(errs...))
	}
	return nil
}

// ===== CONFERENCE NOTIFICATIONS =====

func (s *notificationService) ConferenceStatusChanged(ctx context.Context, conference *models.Conference, from models.ConferenceStatus) {
	c := *conference
	s.dispatch(ctx, "conference_status_changed", func(ctx context.Context) error {
		return s.publish(ctx, events.EventConferenceStatusChanged, events.ConferenceStatusChangedEvent{
			ConferenceID: c.ID,
			Year:         c.Year,
			FromStatus:   string(from),
			ToStatus:     string(c.Status),
		})
	})
}
