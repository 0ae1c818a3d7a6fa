package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/internal/domain"
	"github.com/emreokur/319FinalProject/pkg/errors"
)

type questionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *sql.DB, logger *zap.Logger) *questionRepository {
	return &questionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *questionRepository) Create(ctx context.Context, question *domain.Question) error {
	query := `
		INSERT INTO questions (id, email, question, resolved, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		question.ID,
		question.Email,
		question.Question,
		question.Resolved,
		question.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create question", zap.Error(err))
		return err
	}

	return nil
}

// List returns questions newest first, optionally filtered by email.
func (r *questionRepository) List(ctx context.Context, email string) ([]*domain.Question, error) {
	query := `
		SELECT id, email, question, resolved, created_at
		FROM questions
	`
	var args []interface{}
	if email != "" {
		query += ` WHERE email = $1`
		args = append(args, email)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list questions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var questions []*domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Email, &q.Question, &q.Resolved, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, &q)
	}

	return questions, rows.Err()
}

func (r *questionRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE questions SET resolved = true WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to resolve question", zap.Error(err), zap.String("question_id", id.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "question", ID: id.String()}
	}

	return nil
}

func (r *questionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete question", zap.Error(err), zap.String("question_id", id.String()))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "question", ID: id.String()}
	}

	return nil
}
