package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/conference-service/internal/errors"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/workflow"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Error families
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidState     = errors.New("operation not allowed in current state")
	ErrDeadlineExpired  = errors.New("deadline has passed")
	ErrConflict         = errors.New("resource conflict")

	// Ownership and assignment
	ErrNotOwner            = fmt.Errorf("%w: not the owner of this resource", ErrForbidden)
	ErrNotAssignedReviewer = fmt.Errorf("%w: paper is not assigned to this reviewer", ErrForbidden)

	// Workflow
	ErrAlreadySent           = fmt.Errorf("%w: review has already been sent", ErrInvalidState)
	ErrConferenceNotOngoing  = fmt.Errorf("%w: conference is not ongoing", ErrInvalidState)
	ErrReviewDeadlineExpired = fmt.Errorf("%w: review deadline has passed", ErrDeadlineExpired)

	// Lookups
	ErrUserNotFound        = fmt.Errorf("%w: user", ErrNotFound)
	ErrPaperNotFound       = fmt.Errorf("%w: paper", ErrNotFound)
	ErrReviewNotFound      = fmt.Errorf("%w: review", ErrNotFound)
	ErrConferenceNotFound  = fmt.Errorf("%w: conference", ErrNotFound)
	ErrCategoryNotFound    = fmt.Errorf("%w: category", ErrNotFound)
	ErrQuestionNotFound    = fmt.Errorf("%w: question", ErrNotFound)
	ErrFileNotFound        = fmt.Errorf("%w: file", ErrNotFound)
	ErrCommitteeNotFound   = fmt.Errorf("%w: committee member", ErrNotFound)
	ErrProgramItemNotFound = fmt.Errorf("%w: program item", ErrNotFound)
	ErrDocumentNotFound    = fmt.Errorf("%w: conference document", ErrNotFound)

	// Identity
	ErrInvalidCredentials  = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrAccountInactive     = fmt.Errorf("%w: account is not verified or not active", ErrUnauthorized)
	ErrInvalidRefreshToken = fmt.Errorf("%w: invalid or expired refresh token", ErrUnauthorized)
	ErrEmailTaken          = fmt.Errorf("%w: email is already registered", ErrConflict)
)

// Stable error codes returned to clients
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeNotFound              = "NOT_FOUND"
	CodeForbidden             = "FORBIDDEN"
	CodeInvalidState          = "INVALID_STATE"
	CodeDeadlineExpired       = "DEADLINE_EXPIRED"
	CodeConflict              = "CONFLICT"
	CodeNotOwner              = "NOT_OWNER"
	CodeAlreadySent           = "ALREADY_SENT"
	CodeConferenceNotOngoing  = "CONFERENCE_NOT_ONGOING"
	CodeReviewDeadlineExpired = "REVIEW_DEADLINE_EXPIRED"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeInternal              = "INTERNAL_ERROR"
)

// ===== CUSTOM ERROR TYPES =====

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value any) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// fieldError returns a single-field validation failure as an error value
func fieldError(field, message string, value any) error {
	return apperrors.Single(field, message, value)
}

// notFoundOr maps a repository miss onto the given sentinel
func notFoundOr(err error, sentinel error) error {
	if repositories.IsNotFoundError(err) {
		return sentinel
	}
	return err
}

// transitionError folds an illegal workflow transition into ErrInvalidState
func transitionError(err error) error {
	if errors.Is(err, workflow.ErrIllegalTransition) {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) || repositories.IsDuplicateError(err)
}

func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

func IsDeadlineExpired(err error) bool {
	return errors.Is(err, ErrDeadlineExpired)
}

// ErrorCode returns the most specific client code for err.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err):
		return CodeValidation
	case errors.Is(err, ErrNotOwner):
		return CodeNotOwner
	case errors.Is(err, ErrAlreadySent):
		return CodeAlreadySent
	case errors.Is(err, ErrConferenceNotOngoing):
		return CodeConferenceNotOngoing
	case errors.Is(err, ErrReviewDeadlineExpired):
		return CodeReviewDeadlineExpired
	case IsNotFound(err):
		return CodeNotFound
	case IsUnauthorized(err):
		return CodeUnauthorized
	case IsForbidden(err):
		return CodeForbidden
	case IsInvalidState(err):
		return CodeInvalidState
	case IsDeadlineExpired(err):
		return CodeDeadlineExpired
	case IsConflict(err):
		return CodeConflict
	default:
		return CodeInternal
	}
}
