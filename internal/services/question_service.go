package services

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/conference-service/internal/models"
	"github.com/SAP-F-2025/conference-service/internal/repositories"
	"github.com/SAP-F-2025/conference-service/internal/validator"
)

type questionService struct {
	repo      repositories.Repository
	validator *validator.Validator
}

func NewQuestionService(repo repositories.Repository, validator *validator.Validator) QuestionService {
	return &questionService{
		repo:      repo,
		validator: validator,
	}
}

func (s *questionService) Create(ctx context.Context, req *QuestionRequest) (*models.Question, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	question := &models.Question{}
	applyQuestionRequest(question, req)
	if err := s.repo.Question().Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

func (s *questionService) Update(ctx context.Context, id uint, req *QuestionRequest) (*models.Question, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrQuestionNotFound)
	}

	applyQuestionRequest(question, req)
	if err := s.repo.Question().Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

func (s *questionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Question().GetByID(ctx, id); err != nil {
		return notFoundOr(err, ErrQuestionNotFound)
	}
	return s.repo.Question().Delete(ctx, id)
}

func (s *questionService) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrQuestionNotFound)
	}
	return question, nil
}

func (s *questionService) List(ctx context.Context) ([]*models.Question, error) {
	return s.repo.Question().List(ctx)
}

func (s *questionService) checkRequest(req *QuestionRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if req.Type == models.QuestionRating {
		opts := req.Options
		if opts.Min != nil && opts.Max != nil && *opts.Min >= *opts.Max {
			return fieldError("options.max", "must be greater than min", *opts.Max)
		}
	}
	return nil
}

func applyQuestionRequest(question *models.Question, req *QuestionRequest) {
	question.Text = req.Text
	question.Type = req.Type
	question.Category = req.Category
	question.Options = datatypes.NewJSONType(req.Options)
}
