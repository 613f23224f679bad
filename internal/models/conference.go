package models

import (
	"time"

	"gorm.io/gorm"
)

type ConferenceStatus string

const (
	ConferenceUpcoming  ConferenceStatus = "upcoming"
	ConferenceOngoing   ConferenceStatus = "ongoing"
	ConferenceCompleted ConferenceStatus = "completed"
	ConferenceCanceled  ConferenceStatus = "canceled"
)

type Conference struct {
	ID         uint             `json:"id" gorm:"primaryKey"`
	Year       int              `json:"year" gorm:"not null;index"`
	Location   string           `json:"location" gorm:"size:255"`
	University string           `json:"university" gorm:"size:255"`
	Status     ConferenceStatus `json:"status" gorm:"not null;size:20;default:upcoming;index"`

	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`

	// Deadlines are stored at end of day
	DeadlineSubmission     time.Time  `json:"deadline_submission" gorm:"not null"`
	SubmissionConfirmation *time.Time `json:"submission_confirmation"`
	DeadlineReview         time.Time  `json:"deadline_review" gorm:"not null"`
	DeadlineCorrection     *time.Time `json:"deadline_correction"`

	CreatedBy uint           `json:"created_by" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Conference) TableName() string {
	return "conferences"
}

// ComputeStatus derives the lifecycle status of a conference from its dates.
// Canceled conferences stay canceled.
func (c *Conference) ComputeStatus(now time.Time) ConferenceStatus {
	if c.Status == ConferenceCanceled {
		return ConferenceCanceled
	}
	switch {
	case now.Before(StartOfDay(c.StartDate)):
		return ConferenceUpcoming
	case now.After(EndOfDay(c.EndDate)):
		return ConferenceCompleted
	default:
		return ConferenceOngoing
	}
}

// EndOfDay returns the last nanosecond of the calendar day of t.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DeadlinePassed compares at day granularity: the whole deadline day is allowed.
func DeadlinePassed(deadline, now time.Time) bool {
	return now.After(EndOfDay(deadline.In(now.Location())))
}
