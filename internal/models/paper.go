package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaperStatus string

const (
	PaperDraft                PaperStatus = "Draft"
	PaperSubmitted            PaperStatus = "Submitted"
	PaperUnderReview          PaperStatus = "UnderReview"
	PaperAcceptedWithChanges  PaperStatus = "AcceptedWithChanges"
	PaperSubmittedAfterReview PaperStatus = "SubmittedAfterReview"
	PaperAccepted             PaperStatus = "Accepted"
	PaperRejected             PaperStatus = "Rejected"
)

type Author struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

type Paper struct {
	ID       uint                        `json:"id" gorm:"primaryKey"`
	Title    string                      `json:"title" gorm:"not null;size:300"`
	Abstract string                      `json:"abstract" gorm:"type:text"`
	Keywords datatypes.JSONSlice[string] `json:"keywords" gorm:"type:jsonb"`
	Authors  datatypes.JSONSlice[Author] `json:"authors" gorm:"type:jsonb"`

	UserID       uint  `json:"user_id" gorm:"not null;index"`
	ConferenceID uint  `json:"conference_id" gorm:"not null;index"`
	CategoryID   uint  `json:"category_id" gorm:"not null;index"`
	ReviewerID   *uint `json:"reviewer_id" gorm:"index"`
	ReviewID     *uint `json:"review_id"`

	FilePath       string      `json:"file_path" gorm:"size:500"`
	SubmissionDate time.Time   `json:"submission_date"`
	DeadlineDate   time.Time   `json:"deadline_date"`
	Status         PaperStatus `json:"status" gorm:"not null;size:30;index"`
	Awarded        *bool       `json:"awarded"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User       *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Conference *Conference `json:"conference,omitempty" gorm:"foreignKey:ConferenceID"`
	Category   *Category   `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Reviewer   *User       `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
	Review     *Review     `json:"review,omitempty" gorm:"foreignKey:ReviewID"`
}

func (Paper) TableName() string {
	return "papers"
}

func (p *Paper) IsOwnedBy(userID uint) bool {
	return p.UserID == userID
}

func (p *Paper) IsAssignedTo(reviewerID uint) bool {
	return p.ReviewerID != nil && *p.ReviewerID == reviewerID
}
