package workflow

import (
	"testing"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_Table(t *testing.T) {
	tests := []struct {
		name  string
		from  models.PaperStatus
		event Event
		want  models.PaperStatus
	}{
		{"submit draft", models.PaperDraft, EventSubmit, models.PaperSubmitted},
		{"assign submitted", models.PaperSubmitted, EventAssignReviewer, models.PaperUnderReview},
		{"reassign under review", models.PaperUnderReview, EventAssignReviewer, models.PaperUnderReview},
		{"assign corrected paper", models.PaperSubmittedAfterReview, EventAssignReviewer, models.PaperUnderReview},
		{"publish", models.PaperUnderReview, EventReviewPublish, models.PaperAccepted},
		{"publish with changes", models.PaperUnderReview, EventReviewPublishWithChanges, models.PaperAcceptedWithChanges},
		{"reject", models.PaperUnderReview, EventReviewReject, models.PaperRejected},
		{"inconclusive", models.PaperUnderReview, EventReviewInconclusive, models.PaperUnderReview},
		{"resubmit", models.PaperAcceptedWithChanges, EventResubmit, models.PaperSubmittedAfterReview},
		{"reset under review", models.PaperUnderReview, EventReset, models.PaperDraft},
		{"reset corrected paper", models.PaperSubmittedAfterReview, EventReset, models.PaperDraft},
		{"reviewer removed", models.PaperUnderReview, EventReviewerRemoved, models.PaperSubmitted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, CanTransition(tt.from, tt.event))
		})
	}
}

func TestTransition_Illegal(t *testing.T) {
	illegal := []struct {
		from  models.PaperStatus
		event Event
	}{
		{models.PaperDraft, EventAssignReviewer},
		{models.PaperAccepted, EventAssignReviewer},
		{models.PaperRejected, EventReset},
		{models.PaperSubmitted, EventReviewPublish},
		{models.PaperSubmittedAfterReview, EventReviewPublish},
		{models.PaperAccepted, EventReset},
		{models.PaperSubmitted, EventSubmit},
		{models.PaperDraft, EventResubmit},
	}

	for _, tt := range illegal {
		got, err := Transition(tt.from, tt.event)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.Equal(t, tt.from, got)

		var te *TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, tt.event, te.Event)
	}
}

func TestEventForRecommendation(t *testing.T) {
	assert.Equal(t, EventReviewPublish, EventForRecommendation(models.RecommendPublish))
	assert.Equal(t, EventReviewPublishWithChanges, EventForRecommendation(models.RecommendPublishWithChanges))
	assert.Equal(t, EventReviewReject, EventForRecommendation(models.RecommendReject))
	assert.Equal(t, EventReviewInconclusive, EventForRecommendation(""))
	assert.Equal(t, EventReviewInconclusive, EventForRecommendation("Neviem"))
}

// Terminal statuses are only reachable from UnderReview through a review event.
func TestTerminalStatusesOnlyFromReview(t *testing.T) {
	reviewEvents := map[Event]bool{
		EventReviewPublish:            true,
		EventReviewPublishWithChanges: true,
		EventReviewReject:             true,
	}
	for k, to := range transitions {
		switch to {
		case models.PaperAccepted, models.PaperRejected, models.PaperAcceptedWithChanges:
			assert.True(t, reviewEvents[k.event], "unexpected path to %s via %s", to, k.event)
			assert.Equal(t, models.PaperUnderReview, k.from)
		}
	}
}

func TestIsEditableByOwner(t *testing.T) {
	assert.True(t, IsEditableByOwner(models.PaperDraft))
	assert.True(t, IsEditableByOwner(models.PaperAcceptedWithChanges))
	assert.False(t, IsEditableByOwner(models.PaperUnderReview))
	assert.False(t, IsEditableByOwner(models.PaperAccepted))
}
