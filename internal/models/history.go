package models

import "time"

// ReviewerAssignment is an append-only record of every reviewer assignment.
type ReviewerAssignment struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	PaperID            uint      `json:"paper_id" gorm:"not null;index"`
	ReviewerID         uint      `json:"reviewer_id" gorm:"not null;index"`
	PreviousReviewerID *uint     `json:"previous_reviewer_id"`
	AssignedBy         uint      `json:"assigned_by" gorm:"not null"`
	AssignedAt         time.Time `json:"assigned_at" gorm:"not null"`
}

func (ReviewerAssignment) TableName() string {
	return "reviewer_assignments"
}

// PaperStatusHistory tracks every workflow transition of a paper.
type PaperStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	PaperID    uint        `json:"paper_id" gorm:"not null;index"`
	FromStatus PaperStatus `json:"from_status" gorm:"size:30"`
	ToStatus   PaperStatus `json:"to_status" gorm:"size:30;not null"`
	Event      string      `json:"event" gorm:"size:50;not null"`
	ChangedBy  uint        `json:"changed_by"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (PaperStatusHistory) TableName() string {
	return "paper_status_history"
}
