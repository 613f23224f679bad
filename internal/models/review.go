package models

import (
	"time"

	"gorm.io/datatypes"
)

type Recommendation string

const (
	RecommendPublish            Recommendation = "Publikovať"
	RecommendPublishWithChanges Recommendation = "Publikovať_so_zmenami"
	RecommendReject             Recommendation = "Odmietnuť"
)

type ReviewResponse struct {
	QuestionID uint `json:"question_id" validate:"required"`
	Answer     any  `json:"answer"`
}

type Review struct {
	ID             uint                                `json:"id" gorm:"primaryKey"`
	PaperID        uint                                `json:"paper_id" gorm:"not null;uniqueIndex:idx_review_paper_reviewer"`
	ReviewerID     uint                                `json:"reviewer_id" gorm:"not null;uniqueIndex:idx_review_paper_reviewer;index"`
	Responses      datatypes.JSONSlice[ReviewResponse] `json:"responses" gorm:"type:jsonb"`
	Comments       string                              `json:"comments" gorm:"type:text"`
	Recommendation Recommendation                      `json:"recommendation" gorm:"size:50"`
	IsDraft        bool                                `json:"is_draft" gorm:"default:true;index"`
	SentAt         *time.Time                          `json:"sent_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Paper *Paper `json:"paper,omitempty" gorm:"foreignKey:PaperID"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) IsSent() bool {
	return !r.IsDraft
}

// ArchivedReview keeps a sent review after its paper left that review round,
// either through a deadline reset or a new reviewer assignment.
type ArchivedReview struct {
	ID             uint                                `json:"id" gorm:"primaryKey"`
	ReviewID       uint                                `json:"review_id" gorm:"index"`
	PaperID        uint                                `json:"paper_id" gorm:"not null;index"`
	ReviewerID     uint                                `json:"reviewer_id" gorm:"not null;index"`
	Responses      datatypes.JSONSlice[ReviewResponse] `json:"responses" gorm:"type:jsonb"`
	Comments       string                              `json:"comments" gorm:"type:text"`
	Recommendation Recommendation                      `json:"recommendation" gorm:"size:50"`
	SentAt         *time.Time                          `json:"sent_at"`
	Reason         string                              `json:"reason" gorm:"size:50;not null"`
	ArchivedAt     time.Time                           `json:"archived_at" gorm:"not null"`
}

func (ArchivedReview) TableName() string {
	return "archived_reviews"
}

func NewArchivedReview(r *Review, reason string, at time.Time) *ArchivedReview {
	return &ArchivedReview{
		ReviewID:       r.ID,
		PaperID:        r.PaperID,
		ReviewerID:     r.ReviewerID,
		Responses:      r.Responses,
		Comments:       r.Comments,
		Recommendation: r.Recommendation,
		SentAt:         r.SentAt,
		Reason:         reason,
		ArchivedAt:     at,
	}
}
