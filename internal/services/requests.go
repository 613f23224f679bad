package services

import (
	"io"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/models"
)

// FileUpload is an uploaded document as received from the transport layer
type FileUpload struct {
	Name   string
	Reader io.Reader
}

// ===== PAPERS =====

type SubmitPaperRequest struct {
	Title        string          `json:"title" validate:"required,max=300"`
	Abstract     string          `json:"abstract" validate:"required,max=5000"`
	Keywords     []string        `json:"keywords" validate:"max=20,dive,required,max=100"`
	Authors      []models.Author `json:"authors" validate:"required,min=1,max=20,dive"`
	ConferenceID uint            `json:"conference_id" validate:"required"`
	CategoryID   uint            `json:"category_id" validate:"required"`
	Final        bool            `json:"final"`
}

// UpdatePaperRequest carries only owner-editable fields; nil means unchanged
type UpdatePaperRequest struct {
	Title      *string         `json:"title" validate:"omitempty,min=1,max=300"`
	Abstract   *string         `json:"abstract" validate:"omitempty,min=1,max=5000"`
	Keywords   []string        `json:"keywords" validate:"omitempty,max=20,dive,required,max=100"`
	Authors    []models.Author `json:"authors" validate:"omitempty,min=1,max=20,dive"`
	CategoryID *uint           `json:"category_id"`
	Final      bool            `json:"final"`
}

type AdminUpdatePaperRequest struct {
	Authors    []models.Author `json:"authors" validate:"omitempty,min=1,max=20,dive"`
	CategoryID *uint           `json:"category_id"`
	Awarded    *bool           `json:"awarded"`
}

type AssignReviewerRequest struct {
	ReviewerID uint `json:"reviewer_id" validate:"required"`
}

type ChangeDeadlineRequest struct {
	DeadlineDate time.Time `json:"deadline_date" validate:"required"`
}

// PaperDetails is the admin view of a paper with its audit trail
type PaperDetails struct {
	Paper           *models.Paper                `json:"paper"`
	Assignments     []*models.ReviewerAssignment `json:"assignments"`
	History         []*models.PaperStatusHistory `json:"history"`
	ArchivedReviews []*models.ArchivedReview     `json:"archived_reviews"`
}

// ===== REVIEWS =====

type ReviewRequest struct {
	Responses      []models.ReviewResponse `json:"responses" validate:"max=100,dive"`
	Comments       string                  `json:"comments" validate:"max=10000"`
	Recommendation models.Recommendation   `json:"recommendation" validate:"omitempty,recommendation"`
}

type ContactAdminsRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
	AdminID *uint  `json:"admin_id"`
}

// ===== CATALOG =====

type ConferenceRequest struct {
	Year                   int                     `json:"year" validate:"required,conference_year"`
	Location               string                  `json:"location" validate:"required,max=255"`
	University             string                  `json:"university" validate:"required,max=255"`
	StartDate              time.Time               `json:"start_date" validate:"required"`
	EndDate                time.Time               `json:"end_date" validate:"required,gtefield=StartDate"`
	DeadlineSubmission     time.Time               `json:"deadline_submission" validate:"required"`
	SubmissionConfirmation *time.Time              `json:"submission_confirmation"`
	DeadlineReview         time.Time               `json:"deadline_review" validate:"required"`
	DeadlineCorrection     *time.Time              `json:"deadline_correction"`
	Status                 models.ConferenceStatus `json:"status" validate:"omitempty,conference_status"`
}

type CategoryRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	IsActive *bool  `json:"is_active"`
}

type QuestionRequest struct {
	Text     string                 `json:"text" validate:"required,max=2000"`
	Type     models.QuestionType    `json:"type" validate:"required,question_type"`
	Category string                 `json:"category" validate:"max=100"`
	Options  models.QuestionOptions `json:"options"`
}

// ===== USERS =====

type RegisterRequest struct {
	FirstName  string  `json:"first_name" validate:"required,max=100"`
	LastName   string  `json:"last_name" validate:"required,max=100"`
	Email      string  `json:"email" validate:"required,email,max=255"`
	Password   string  `json:"password" validate:"required,min=8,max=72"`
	University string  `json:"university" validate:"required,max=255"`
	Faculty    *string `json:"faculty" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token            string       `json:"token"`
	ExpiresAt        time.Time    `json:"expires_at"`
	RefreshToken     string       `json:"refresh_token"`
	RefreshExpiresAt time.Time    `json:"refresh_expires_at"`
	User             *models.User `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type CreateUserRequest struct {
	FirstName  string            `json:"first_name" validate:"required,max=100"`
	LastName   string            `json:"last_name" validate:"required,max=100"`
	Email      string            `json:"email" validate:"required,email,max=255"`
	Password   string            `json:"password" validate:"required,min=8,max=72"`
	University string            `json:"university" validate:"max=255"`
	Faculty    *string           `json:"faculty" validate:"omitempty,max=255"`
	Role       models.UserRole   `json:"role" validate:"required,user_role"`
	Status     models.UserStatus `json:"status" validate:"omitempty,user_status"`
}

type UpdateUserRequest struct {
	FirstName  *string            `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName   *string            `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email      *string            `json:"email" validate:"omitempty,email,max=255"`
	Password   *string            `json:"password" validate:"omitempty,min=8,max=72"`
	University *string            `json:"university" validate:"omitempty,max=255"`
	Faculty    *string            `json:"faculty" validate:"omitempty,max=255"`
	Role       *models.UserRole   `json:"role" validate:"omitempty,user_role"`
	Status     *models.UserStatus `json:"status" validate:"omitempty,user_status"`
	IsVerified *bool              `json:"is_verified"`
}

type UpdateProfileRequest struct {
	FirstName  *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName   *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	University *string `json:"university" validate:"omitempty,max=255"`
	Faculty    *string `json:"faculty" validate:"omitempty,max=255"`
	About      *string `json:"about" validate:"omitempty,max=2000"`
}

// ===== CONTENT =====

type CommitteeMemberRequest struct {
	FullName   string `json:"full_name" validate:"required,max=200"`
	University string `json:"university" validate:"required,max=200"`
}

type ProgramItemRequest struct {
	Schedule    string `json:"schedule" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
}

type ProgramRequest struct {
	Items []ProgramItemRequest `json:"items" validate:"dive"`
}

// Program is the ordered programme plus its downloadable file, if uploaded
type Program struct {
	Items []*models.ProgramItem `json:"items"`
	File  *models.SiteFile      `json:"file"`
}

type ConferenceDocumentRequest struct {
	ConferenceID uint   `json:"conference_id" validate:"required"`
	Name         string `json:"name" validate:"max=200"`
}

// PublicPaper is the part of a paper shown on the public homepage
type PublicPaper struct {
	ID      uint            `json:"id"`
	Title   string          `json:"title"`
	Authors []models.Author `json:"authors"`
}

// Homepage aggregates everything the public landing page renders
type Homepage struct {
	OngoingConference *models.Conference           `json:"ongoing_conference"`
	PastConferences   []*models.Conference         `json:"past_conferences"`
	ActiveCategories  []*models.Category           `json:"active_categories"`
	Papers            []PublicPaper                `json:"papers"`
	AwardedPapers     []PublicPaper                `json:"awarded_papers"`
	Reviewers         []string                     `json:"reviewers"`
	Committee         []*models.CommitteeMember    `json:"committee"`
	Program           []*models.ProgramItem        `json:"program"`
	Files             []*models.SiteFile           `json:"files"`
	Documents         []*models.ConferenceDocument `json:"documents"`
}
