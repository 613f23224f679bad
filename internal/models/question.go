package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionRating QuestionType = "rating"
	QuestionYesNo  QuestionType = "yes_no"
	QuestionText   QuestionType = "text"
)

type QuestionOptions struct {
	Min     *int     `json:"min,omitempty"`
	Max     *int     `json:"max,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

// Question is a reusable review-form question. Review responses refer to it by ID.
type Question struct {
	ID       uint                                `json:"id" gorm:"primaryKey"`
	Text     string                              `json:"text" gorm:"not null;type:text"`
	Type     QuestionType                        `json:"type" gorm:"not null;size:20"`
	Category string                              `json:"category" gorm:"size:100;index"`
	Options  datatypes.JSONType[QuestionOptions] `json:"options" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}
