package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/domain"
	"github.com/emreokur/319FinalProject/internal/repository"
	"github.com/emreokur/319FinalProject/pkg/errors"
)

type questionService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(repos *repository.Repositories, logger *zap.Logger) *questionService {
	return &questionService{
		repos:  repos,
		logger: logger,
	}
}

// SubmitQuestion records a customer question. New questions start unresolved.
func (s *questionService) SubmitQuestion(ctx context.Context, email, text string) (*domain.Question, error) {
	if email == "" || text == "" {
		return nil, &errors.ErrValidation{Message: "email and question are required"}
	}

	question := &domain.Question{
		ID:       uuid.New(),
		Email:    email,
		Question: text,
		Resolved: false,
	}

	if err := s.repos.Question.Create(ctx, question); err != nil {
		return nil, err
	}

	s.logger.Info("Question submitted", zap.String("question_id", question.ID.String()))
	return question, nil
}

// ListQuestions returns questions newest first. An empty email returns all.
func (s *questionService) ListQuestions(ctx context.Context, email string) ([]*domain.Question, error) {
	return s.repos.Question.List(ctx, email)
}

// ResolveQuestion marks a question answered.
func (s *questionService) ResolveQuestion(ctx context.Context, id uuid.UUID) error {
	return s.repos.Question.Resolve(ctx, id)
}

// DeleteQuestion removes a question.
func (s *questionService) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return s.repos.Question.Delete(ctx, id)
}
