package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/conference-service/internal/cache"
	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/validator"
)

const cacheKeyActiveCategories = "categories:active"

type categoryService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	cacheTTL  time.Duration
	validator *validator.Validator
	logger    *slog.Logger
}

func NewCategoryService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	cacheTTL time.Duration,
	validator *validator.Validator,
	logger *slog.Logger,
) CategoryService {
	return &categoryService{
		repo:      repo,
		cache:     cacheService,
		cacheTTL:  cacheTTL,
		validator: validator,
		logger:    logger,
	}
}

func (s *categoryService) Create(ctx context.Context, req *CategoryRequest) (*models.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	category := &models.Category{Name: req.Name, IsActive: true}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.repo.Category().Create(ctx, category); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, req.Name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidate(ctx)
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, req *CategoryRequest) (*models.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	category, err := s.repo.Category().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrCategoryNotFound)
	}

	category.Name = req.Name
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.repo.Category().Update(ctx, category); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, fmt.Errorf("%w: category %q already exists", ErrConflict, req.Name)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidate(ctx)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Category().GetByID(ctx, id); err != nil {
		return notFoundOr(err, ErrCategoryNotFound)
	}

	count, err := s.repo.Paper().CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: category is used by %d papers", ErrConflict, count)
	}

	if err := s.repo.Category().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.repo.Category().List(ctx, false)
}

func (s *categoryService) ListActive(ctx context.Context) ([]*models.Category, error) {
	var cached []*models.Category
	err := s.cache.Get(ctx, cacheKeyActiveCategories, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Category cache read failed", "error", err)
	}

	categories, err := s.repo.Category().List(ctx, true)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKeyActiveCategories, categories, s.cacheTTL); err != nil {
		s.logger.Warn("Category cache write failed", "error", err)
	}
	return categories, nil
}

func (s *categoryService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyActiveCategories); err != nil {
		s.logger.Warn("Category cache invalidation failed", "error", err)
	}
}
