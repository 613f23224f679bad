// Package workflow holds the paper lifecycle state machine. Every status
// change of a paper goes through Transition.
package workflow

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/conference-service/internal/models"
)

type Event string

const (
	EventSubmit                   Event = "submit"
	EventAssignReviewer           Event = "assign_reviewer"
	EventReviewPublish            Event = "review_publish"
	EventReviewPublishWithChanges Event = "review_publish_with_changes"
	EventReviewReject             Event = "review_reject"
	EventReviewInconclusive       Event = "review_inconclusive"
	EventResubmit                 Event = "resubmit"
	EventReset                    Event = "reset"
	EventReviewerRemoved          Event = "reviewer_removed"
)

// ErrIllegalTransition is returned for any (status, event) pair absent from the table.
var ErrIllegalTransition = errors.New("illegal paper status transition")

type TransitionError struct {
	From  models.PaperStatus
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot apply %q to a paper in status %s", ErrIllegalTransition, e.Event, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

type key struct {
	from  models.PaperStatus
	event Event
}

var transitions = map[key]models.PaperStatus{
	{models.PaperDraft, EventSubmit}: models.PaperSubmitted,

	{models.PaperSubmitted, EventAssignReviewer}:            models.PaperUnderReview,
	{models.PaperUnderReview, EventAssignReviewer}:          models.PaperUnderReview,
	{models.PaperSubmittedAfterReview, EventAssignReviewer}: models.PaperUnderReview,

	{models.PaperUnderReview, EventReviewPublish}:            models.PaperAccepted,
	{models.PaperUnderReview, EventReviewPublishWithChanges}: models.PaperAcceptedWithChanges,
	{models.PaperUnderReview, EventReviewReject}:             models.PaperRejected,
	{models.PaperUnderReview, EventReviewInconclusive}:       models.PaperUnderReview,

	{models.PaperAcceptedWithChanges, EventResubmit}: models.PaperSubmittedAfterReview,

	{models.PaperDraft, EventReset}:                models.PaperDraft,
	{models.PaperSubmitted, EventReset}:            models.PaperDraft,
	{models.PaperUnderReview, EventReset}:          models.PaperDraft,
	{models.PaperAcceptedWithChanges, EventReset}:  models.PaperDraft,
	{models.PaperSubmittedAfterReview, EventReset}: models.PaperDraft,

	{models.PaperUnderReview, EventReviewerRemoved}: models.PaperSubmitted,
}

// Transition returns the status reached by applying event to from.
func Transition(from models.PaperStatus, event Event) (models.PaperStatus, error) {
	next, ok := transitions[key{from, event}]
	if !ok {
		return from, &TransitionError{From: from, Event: event}
	}
	return next, nil
}

func CanTransition(from models.PaperStatus, event Event) bool {
	_, ok := transitions[key{from, event}]
	return ok
}

// EventForRecommendation maps a sent review's recommendation onto a workflow event.
// Unknown recommendations keep the paper under review.
func EventForRecommendation(r models.Recommendation) Event {
	switch r {
	case models.RecommendPublish:
		return EventReviewPublish
	case models.RecommendPublishWithChanges:
		return EventReviewPublishWithChanges
	case models.RecommendReject:
		return EventReviewReject
	default:
		return EventReviewInconclusive
	}
}

// IsEditableByOwner reports whether the participant may still change the paper.
func IsEditableByOwner(status models.PaperStatus) bool {
	switch status {
	case models.PaperDraft, models.PaperSubmitted, models.PaperAcceptedWithChanges:
		return true
	}
	return false
}
