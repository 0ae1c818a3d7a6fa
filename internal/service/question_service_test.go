package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emreokur/319FinalProject/pkg/errors"
)

func TestSubmitAndResolveQuestion(t *testing.T) {
	tr := newTestRepos()
	svc := NewQuestionService(tr.repos, zap.NewNop())

	ctx := context.Background()
	q, err := svc.SubmitQuestion(ctx, "alice@example.com", "Does the R6 ship with a battery?")
	require.NoError(t, err)
	assert.False(t, q.Resolved)

	require.NoError(t, svc.ResolveQuestion(ctx, q.ID))

	questions, err := svc.ListQuestions(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.True(t, questions[0].Resolved)
}

func TestSubmitQuestionValidation(t *testing.T) {
	tr := newTestRepos()
	svc := NewQuestionService(tr.repos, zap.NewNop())

	_, err := svc.SubmitQuestion(context.Background(), "", "no email")
	require.Error(t, err)
	_, ok := err.(*errors.ErrValidation)
	assert.True(t, ok)
}

func TestListQuestionsEmailFilter(t *testing.T) {
	tr := newTestRepos()
	svc := NewQuestionService(tr.repos, zap.NewNop())

	ctx := context.Background()
	_, err := svc.SubmitQuestion(ctx, "alice@example.com", "q1")
	require.NoError(t, err)
	_, err = svc.SubmitQuestion(ctx, "bob@example.com", "q2")
	require.NoError(t, err)

	all, err := svc.ListQuestions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListQuestions(ctx, "bob@example.com")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "bob@example.com", filtered[0].Email)
}
