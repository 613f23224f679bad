package services

import (
	"context"
	"io"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
)

// PaperService covers the participant side of the paper lifecycle
type PaperService interface {
	Submit(ctx context.Context, actor models.Actor, req *SubmitPaperRequest, file *FileUpload) (*models.Paper, error)
	Edit(ctx context.Context, actor models.Actor, paperID uint, req *UpdatePaperRequest, file *FileUpload) (*models.Paper, error)
	Delete(ctx context.Context, actor models.Actor, paperID uint) error

	ListMine(ctx context.Context, actor models.Actor) ([]*models.Paper, error)
	GetMine(ctx context.Context, actor models.Actor, paperID uint) (*models.Paper, error)
	GetReview(ctx context.Context, actor models.Actor, paperID uint) (*models.Review, error)
	OpenFile(ctx context.Context, actor models.Actor, paperID uint) (io.ReadCloser, string, error)
}

// PaperAdminService covers reviewer assignment and administrative paper changes
type PaperAdminService interface {
	AssignReviewer(ctx context.Context, actor models.Actor, paperID, reviewerID uint) (*models.Paper, error)
	ChangeDeadline(ctx context.Context, actor models.Actor, paperID uint, deadline time.Time) (*models.Paper, error)
	Update(ctx context.Context, actor models.Actor, paperID uint, req *AdminUpdatePaperRequest) (*models.Paper, error)
	Delete(ctx context.Context, actor models.Actor, paperID uint) error

	List(ctx context.Context, filters repositories.PaperFilters) ([]*models.Paper, int64, error)
	GetByID(ctx context.Context, paperID uint) (*PaperDetails, error)
}

type ReviewService interface {
	SaveDraft(ctx context.Context, actor models.Actor, paperID uint, req *ReviewRequest) (*models.Review, error)
	UpdateDraft(ctx context.Context, actor models.Actor, reviewID uint, req *ReviewRequest) (*models.Review, error)
	Send(ctx context.Context, actor models.Actor, reviewID uint) (*models.Review, error)
	DeleteDraft(ctx context.Context, actor models.Actor, reviewID uint) error

	AssignedPending(ctx context.Context, actor models.Actor) ([]*models.Paper, error)
	ListReviews(ctx context.Context, actor models.Actor) ([]*models.Review, error)
	ListSent(ctx context.Context, actor models.Actor) ([]*models.Review, error)
	GetReview(ctx context.Context, actor models.Actor, reviewID uint) (*models.Review, error)

	ContactAdmins(ctx context.Context, actor models.Actor, req *ContactAdminsRequest) error
	ListAdmins(ctx context.Context) ([]*models.User, error)
}

type ConferenceService interface {
	Create(ctx context.Context, actor models.Actor, req *ConferenceRequest) (*models.Conference, error)
	Update(ctx context.Context, id uint, req *ConferenceRequest) (*models.Conference, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Conference, error)
	List(ctx context.Context, filters repositories.ConferenceFilters) ([]*models.Conference, int64, error)
	ListOngoing(ctx context.Context) ([]*models.Conference, error)

	// RefreshStatuses recomputes every conference status from its dates and
	// returns how many changed
	RefreshStatuses(ctx context.Context) (int, error)
}

type CategoryService interface {
	Create(ctx context.Context, req *CategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id uint, req *CategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Category, error)
	ListActive(ctx context.Context) ([]*models.Category, error)
}

// ContentService edits the public homepage: committee, programme, site files
// and per-conference documents
type ContentService interface {
	ListCommittee(ctx context.Context) ([]*models.CommitteeMember, error)
	CreateCommitteeMember(ctx context.Context, req *CommitteeMemberRequest) (*models.CommitteeMember, error)
	UpdateCommitteeMember(ctx context.Context, id uint, req *CommitteeMemberRequest) (*models.CommitteeMember, error)
	DeleteCommitteeMember(ctx context.Context, id uint) error

	GetProgram(ctx context.Context) (*Program, error)
	UpdateProgram(ctx context.Context, req *ProgramRequest) (*Program, error)
	DeleteProgramItem(ctx context.Context, id uint) error

	// UploadSiteFile replaces the file of the given kind
	UploadSiteFile(ctx context.Context, kind models.SiteFileKind, file *FileUpload) (*models.SiteFile, error)
	OpenSiteFile(ctx context.Context, kind models.SiteFileKind) (io.ReadCloser, string, error)

	ListDocuments(ctx context.Context) ([]*models.ConferenceDocument, error)
	CreateDocument(ctx context.Context, req *ConferenceDocumentRequest) (*models.ConferenceDocument, error)
	UploadDocumentFile(ctx context.Context, id uint, kind models.DocumentKind, file *FileUpload) (*models.ConferenceDocument, error)
	OpenDocumentFile(ctx context.Context, id uint, kind models.DocumentKind) (io.ReadCloser, string, error)
	DeleteDocument(ctx context.Context, id uint) error

	Homepage(ctx context.Context) (*Homepage, error)
}

type QuestionService interface {
	Create(ctx context.Context, req *QuestionRequest) (*models.Question, error)
	Update(ctx context.Context, id uint, req *QuestionRequest) (*models.Question, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	List(ctx context.Context) ([]*models.Question, error)
}

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, req *RefreshRequest) (*LoginResponse, error)
	Logout(ctx context.Context, actor models.Actor) error

	ResendVerification(ctx context.Context, req *EmailRequest) error
	ForgotPassword(ctx context.Context, req *EmailRequest) error
	ResetPassword(ctx context.Context, req *ResetPasswordRequest) error
}

type UserService interface {
	List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, id uint, req *UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, actor models.Actor, id uint) error

	GetProfile(ctx context.Context, actor models.Actor) (*models.User, error)
	UpdateProfile(ctx context.Context, actor models.Actor, req *UpdateProfileRequest, avatar *FileUpload) (*models.User, error)
	OpenAvatar(ctx context.Context, userID uint) (io.ReadCloser, string, error)
}

type ExportService interface {
	ExportConferencePapersExcel(ctx context.Context, conferenceID uint) ([]byte, string, error)
	WriteConferencePapersZip(ctx context.Context, conferenceID uint, w io.Writer) (string, error)
}
