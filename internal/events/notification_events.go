package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kind of domain event published on the bus
type EventType string

const (
	// Paper events
	EventPaperSubmitted        EventType = "paper.submitted"
	EventPaperReviewerAssigned EventType = "paper.reviewer_assigned"
	EventPaperStatusChanged    EventType = "paper.status_changed"
	EventPaperReset            EventType = "paper.reset"

	// Review events
	EventReviewSent EventType = "review.sent"

	// Conference events
	EventConferenceStatusChanged EventType = "conference.status_changed"

	// User events
	EventUserRegistered         EventType = "user.registered"
	EventPasswordResetRequested EventType = "user.password_reset_requested"
)

const (
	eventSource  = "conference-service"
	eventVersion = "1.0"
)

// NotificationEvent is the envelope for every published event
type NotificationEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Source    string         `json:"source"`
	Version   string         `json:"version"`
	Data      any            `json:"data"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewNotificationEvent stamps a payload with a fresh id and the service source.
func NewNotificationEvent(eventType EventType, data any, at time.Time) *NotificationEvent {
	return &NotificationEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: at.UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

type PaperSubmittedEvent struct {
	PaperID      uint   `json:"paper_id"`
	Title        string `json:"title"`
	UserID       uint   `json:"user_id"`
	ConferenceID uint   `json:"conference_id"`
	Status       string `json:"status"`
}

type ReviewerAssignedEvent struct {
	PaperID            uint  `json:"paper_id"`
	ReviewerID         uint  `json:"reviewer_id"`
	PreviousReviewerID *uint `json:"previous_reviewer_id,omitempty"`
	AssignedBy         uint  `json:"assigned_by"`
}

type PaperStatusChangedEvent struct {
	PaperID    uint   `json:"paper_id"`
	UserID     uint   `json:"user_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	Trigger    string `json:"trigger"`
}

type ReviewSentEvent struct {
	ReviewID       uint   `json:"review_id"`
	PaperID        uint   `json:"paper_id"`
	ReviewerID     uint   `json:"reviewer_id"`
	Recommendation string `json:"recommendation"`
	PaperStatus    string `json:"paper_status"`
}

type PaperResetEvent struct {
	PaperID     uint      `json:"paper_id"`
	UserID      uint      `json:"user_id"`
	NewDeadline time.Time `json:"new_deadline"`
}

type ConferenceStatusChangedEvent struct {
	ConferenceID uint   `json:"conference_id"`
	Year         int    `json:"year"`
	FromStatus   string `json:"from_status"`
	ToStatus     string `json:"to_status"`
}

type PasswordResetRequestedEvent struct {
	UserID uint `json:"user_id"`
	// ExpiresAt is when the emailed reset link stops working
	ExpiresAt time.Time `json:"expires_at"`
}

type UserRegisteredEvent struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
