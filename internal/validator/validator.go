package validator

import (
	"path/filepath"
	"reflect"
	"strings"
	"time"

	apperrors "github.com/SAP-F-2025/conference-service/internal/errors"
	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// AllowedPaperExtensions lists the file types accepted for paper uploads.
var AllowedPaperExtensions = []string{".pdf", ".doc", ".docx"}

var AllowedAvatarExtensions = []string{".jpg", ".jpeg", ".png"}

// Validator wraps go-playground/validator with the domain tags registered.
type Validator struct {
	structValidator *validator.Validate
}

func New() *Validator {
	v := validator.New()
	registerCustomValidators(v)
	return &Validator{structValidator: v}
}

// Validate checks struct tags and converts failures to ValidationErrors.
func (v *Validator) Validate(s any) error {
	if err := v.structValidator.Struct(s); err != nil {
		if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// ValidatePaperFile checks the extension of an uploaded paper.
func (v *Validator) ValidatePaperFile(filename string) error {
	if filename == "" {
		return apperrors.ValidationErrors{{Field: "file", Message: "is required", Rule: "required"}}
	}
	if !IsAllowedPaperFile(filename) {
		return apperrors.ValidationErrors{{Field: "file", Message: "must be a pdf, doc or docx file", Value: filename, Rule: "file_ext"}}
	}
	return nil
}

func (v *Validator) ValidateAvatarFile(filename string) error {
	if !hasExtension(filename, AllowedAvatarExtensions) {
		return apperrors.ValidationErrors{{Field: "avatar", Message: "must be a jpg or png image", Value: filename, Rule: "file_ext"}}
	}
	return nil
}

// ValidateUpload checks a required file field against a list of extensions.
func (v *Validator) ValidateUpload(field, filename string, allowed []string) error {
	if filename == "" {
		return apperrors.ValidationErrors{{Field: field, Message: "is required", Rule: "required"}}
	}
	if !hasExtension(filename, allowed) {
		return apperrors.ValidationErrors{{
			Field:   field,
			Message: "must be one of " + strings.Join(allowed, ", "),
			Value:   filename,
			Rule:    "file_ext",
		}}
	}
	return nil
}

func IsAllowedPaperFile(filename string) bool {
	return hasExtension(filename, AllowedPaperExtensions)
}

func hasExtension(filename string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("user_role", oneOf(
		models.RoleParticipant, models.RoleReviewer, models.RoleAdmin,
	))
	validate.RegisterValidation("user_status", oneOf(
		models.UserStatusPending, models.UserStatusActive, models.UserStatusSuspended, models.UserStatusInactive,
	))
	validate.RegisterValidation("paper_status", oneOf(
		models.PaperDraft, models.PaperSubmitted, models.PaperUnderReview, models.PaperAcceptedWithChanges,
		models.PaperSubmittedAfterReview, models.PaperAccepted, models.PaperRejected,
	))
	validate.RegisterValidation("recommendation", oneOf(
		models.RecommendPublish, models.RecommendPublishWithChanges, models.RecommendReject,
	))
	validate.RegisterValidation("conference_status", oneOf(
		models.ConferenceUpcoming, models.ConferenceOngoing, models.ConferenceCompleted, models.ConferenceCanceled,
	))
	validate.RegisterValidation("question_type", oneOf(
		models.QuestionRating, models.QuestionYesNo, models.QuestionText,
	))
	validate.RegisterValidation("conference_year", validateConferenceYear)

	// Report JSON field names in errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func oneOf[T ~string](values ...T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, v := range values {
			if string(v) == value {
				return true
			}
		}
		return false
	}
}

func validateConferenceYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year >= 2010 && year <= time.Now().Year()+5
}
