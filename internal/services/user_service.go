package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/SAP-F-2025/conference-service/internal/auth"
	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/storage"
	"github.com/SAP-F-2025/conference-service/internal/utils"
	"github.com/SAP-F-2025/conference-service/internal/validator"
	"github.com/SAP-F-2025/conference-service/internal/workflow"
)

const avatarDir = "avatars"

type userService struct {
	repo      repositories.Repository
	store     storage.FileStore
	validator *validator.Validator
	clock     utils.Clock
	logger    *slog.Logger
	ops       *ServiceLogger
}

func NewUserService(
	repo repositories.Repository,
	store storage.FileStore,
	validator *validator.Validator,
	clock utils.Clock,
	logger *slog.Logger,
) UserService {
	return &userService{
		repo:      repo,
		store:     store,
		validator: validator,
		clock:     clock,
		logger:    logger,
		ops:       NewServiceLogger(logger, "user"),
	}
}

// ===== ADMIN =====

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	return s.repo.User().List(ctx, filters)
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}
	return user, nil
}

// Create adds an account on behalf of an admin; it is verified and active unless told otherwise
func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	exists, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		University:   req.University,
		Faculty:      req.Faculty,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if req.Status != "" {
		user.Status = req.Status
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uint, req *UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			exists, err := s.repo.User().ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrEmailTaken
			}
			user.Email = email
		}
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.University != nil {
		user.University = *req.University
	}
	if req.Faculty != nil {
		user.Faculty = req.Faculty
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.IsVerified != nil {
		user.IsVerified = *req.IsVerified
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes an account and everything that hangs off it. A reviewer's
// reviews are deleted and their papers under review go back to Submitted; a
// participant's papers are deleted with their files.
func (s *userService) Delete(ctx context.Context, actor models.Actor, id uint) (err error) {
	op := s.ops.WithOperation(ctx, "delete_user", actor.UserID)
	defer func() { op.LogResult(id, "user", err) }()

	if actor.UserID == id {
		return fmt.Errorf("%w: cannot delete your own account", ErrForbidden)
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrUserNotFound)
	}

	var files []string
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := s.releaseReviewerPapers(ctx, tx, actor, user.ID); err != nil {
			return err
		}

		papers, err := tx.Paper().GetByUser(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, paper := range papers {
			if err := tx.Review().DeleteByPaper(ctx, paper.ID); err != nil {
				return err
			}
			if err := tx.Paper().Delete(ctx, paper.ID); err != nil {
				return err
			}
			files = append(files, paper.FilePath)
		}

		return tx.User().Delete(ctx, user.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	for _, f := range files {
		removeStoredFile(ctx, s.store, s.logger, f)
	}
	if user.AvatarPath != nil {
		removeStoredFile(ctx, s.store, s.logger, *user.AvatarPath)
	}
	return nil
}

// releaseReviewerPapers detaches a reviewer from every paper before the account goes away
func (s *userService) releaseReviewerPapers(ctx context.Context, tx repositories.Repository, actor models.Actor, reviewerID uint) error {
	reviews, err := tx.Review().List(ctx, repositories.ReviewFilters{ReviewerID: &reviewerID})
	if err != nil {
		return err
	}
	reviewIDs := make(map[uint]bool, len(reviews))
	for _, r := range reviews {
		reviewIDs[r.ID] = true
	}

	papers, err := tx.Paper().GetByReviewer(ctx, reviewerID)
	if err != nil {
		return err
	}
	touched := make(map[uint]bool, len(papers))
	now := s.clock.Now()

	for _, paper := range papers {
		touched[paper.ID] = true
		paper.ReviewerID = nil
		if paper.ReviewID != nil && reviewIDs[*paper.ReviewID] {
			paper.ReviewID = nil
		}

		var history *models.PaperStatusHistory
		if paper.Status == models.PaperUnderReview {
			if history, err = transition(paper, workflow.EventReviewerRemoved, actor.UserID, now); err != nil {
				return err
			}
		}
		if err := tx.Paper().Update(ctx, paper); err != nil {
			return err
		}
		if history != nil {
			if err := tx.StatusHistory().Create(ctx, history); err != nil {
				return err
			}
		}
	}

	// Papers reassigned since the review was sent still point at it
	for _, r := range reviews {
		if r.IsDraft || touched[r.PaperID] {
			continue
		}
		paper, err := tx.Paper().GetByID(ctx, r.PaperID)
		if repositories.IsNotFoundError(err) {
			continue
		}
		if err != nil {
			return err
		}
		if paper.ReviewID != nil && *paper.ReviewID == r.ID {
			paper.ReviewID = nil
			if err := tx.Paper().Update(ctx, paper); err != nil {
				return err
			}
		}
	}

	return tx.Review().DeleteByReviewer(ctx, reviewerID)
}

// ===== PROFILE =====

func (s *userService) GetProfile(ctx context.Context, actor models.Actor) (*models.User, error) {
	return s.GetByID(ctx, actor.UserID)
}

// UpdateProfile writes a new avatar first, then the row, and only then removes the old avatar
func (s *userService) UpdateProfile(ctx context.Context, actor models.Actor, req *UpdateProfileRequest, avatar *FileUpload) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if avatar != nil {
		if err := s.validator.ValidateAvatarFile(avatar.Name); err != nil {
			return nil, err
		}
	}

	user, err := s.repo.User().GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.University != nil {
		user.University = *req.University
	}
	if req.Faculty != nil {
		user.Faculty = req.Faculty
	}
	if req.About != nil {
		user.About = req.About
	}

	var oldAvatar, newAvatar string
	if avatar != nil {
		if user.AvatarPath != nil {
			oldAvatar = *user.AvatarPath
		}
		newAvatar, err = s.store.Save(ctx, avatar.Reader, avatar.Name, avatarDir)
		if err != nil {
			return nil, fmt.Errorf("failed to store avatar: %w", err)
		}
		user.AvatarPath = &newAvatar
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		removeStoredFile(ctx, s.store, s.logger, newAvatar)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	removeStoredFile(ctx, s.store, s.logger, oldAvatar)
	return user, nil
}

func (s *userService) OpenAvatar(ctx context.Context, userID uint) (io.ReadCloser, string, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return nil, "", notFoundOr(err, ErrUserNotFound)
	}
	if user.AvatarPath == nil {
		return nil, "", ErrFileNotFound
	}

	rc, err := s.store.Open(ctx, *user.AvatarPath)
	if errors.Is(err, storage.ErrFileNotFound) {
		return nil, "", ErrFileNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return rc, path.Base(*user.AvatarPath), nil
}
