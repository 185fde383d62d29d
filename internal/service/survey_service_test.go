package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "invested/internal/errors"
	"invested/internal/model"
	"invested/internal/survey"
)

// MockSurveyRepository is a mock implementation of SurveyRepository.
type MockSurveyRepository struct {
	mock.Mock
}

func (m *MockSurveyRepository) UpsertAnswers(ctx context.Context, answers []model.SurveyAnswer) error {
	args := m.Called(ctx, answers)
	return args.Error(0)
}

func (m *MockSurveyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SurveyAnswer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SurveyAnswer), args.Error(1)
}

func (m *MockSurveyRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestUpdateSurveyEncodesAndReturnsFullRecord(t *testing.T) {
	repo := new(MockSurveyRepository)
	svc := NewSurveyService(repo, nil)
	userID := uuid.New()

	// the user already answered "employment" in an earlier submission
	stored := []model.SurveyAnswer{
		{UserID: userID, QuestionID: "employment", Answer: `"Student"`, CreatedAt: time.Now().Add(-time.Hour), UpdatedAt: time.Now().Add(-time.Hour)},
		{UserID: userID, QuestionID: "debt", Answer: `["Credit card debt","Student loans"]`, CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}
	repo.On("UpsertAnswers", mock.Anything, mock.Anything).Return(nil)
	repo.On("ListByUser", mock.Anything, userID).Return(stored, nil)

	resp, err := svc.UpdateSurvey(context.Background(), userID, []survey.Answer{
		{QuestionID: "debt", Value: survey.Multiple([]string{"Credit card debt", "Student loans"})},
	})
	assert.NoError(t, err)

	// upserted rows carry the storage encoding
	rows := repo.Calls[0].Arguments.Get(1).([]model.SurveyAnswer)
	assert.Len(t, rows, 1)
	assert.Equal(t, `["Credit card debt","Student loans"]`, rows[0].Answer)

	// the response reflects the complete record, not just the written batch
	assert.Equal(t, userID, resp.UserID)
	assert.Len(t, resp.Answers, 2)
	assert.Equal(t, "employment", resp.Answers[0].QuestionID)
	assert.Equal(t, "Student", resp.Answers[0].Value.Single())
	assert.Equal(t, []string{"Credit card debt", "Student loans"}, resp.Answers[1].Value.Choices())
}

func TestUpdateSurveyUpdatedAtIsMostRecent(t *testing.T) {
	repo := new(MockSurveyRepository)
	svc := NewSurveyService(repo, nil)
	userID := uuid.New()

	oldest := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newest := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	stored := []model.SurveyAnswer{
		{UserID: userID, QuestionID: "employment", Answer: `"Student"`, CreatedAt: oldest, UpdatedAt: newest},
		{UserID: userID, QuestionID: "finances", Answer: `"I break even most months"`, CreatedAt: oldest.Add(time.Hour), UpdatedAt: oldest.Add(time.Hour)},
	}
	repo.On("UpsertAnswers", mock.Anything, mock.Anything).Return(nil)
	repo.On("ListByUser", mock.Anything, userID).Return(stored, nil)

	resp, err := svc.UpdateSurvey(context.Background(), userID, []survey.Answer{
		{QuestionID: "employment", Value: survey.Single("Student")},
	})
	assert.NoError(t, err)
	assert.Equal(t, newest, resp.UpdatedAt)
}

func TestGetSurveyAnswersNotFound(t *testing.T) {
	repo := new(MockSurveyRepository)
	svc := NewSurveyService(repo, nil)
	userID := uuid.New()

	repo.On("ListByUser", mock.Anything, userID).Return([]model.SurveyAnswer{}, nil)

	_, err := svc.GetSurveyAnswers(context.Background(), userID)
	assert.Equal(t, apperrors.ErrSurveyNotFound, err)
}

func TestGetSurveyAnswersRoundTrip(t *testing.T) {
	repo := new(MockSurveyRepository)
	svc := NewSurveyService(repo, nil)
	userID := uuid.New()

	stored := []model.SurveyAnswer{
		{UserID: userID, QuestionID: "debt", Answer: `["Credit card debt","Student loans"]`, UpdatedAt: time.Now()},
	}
	repo.On("ListByUser", mock.Anything, userID).Return(stored, nil)

	resp, err := svc.GetSurveyAnswers(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, resp.Answers, 1)
	assert.True(t, resp.Answers[0].Value.IsMultiple())
	assert.Equal(t, []string{"Credit card debt", "Student loans"}, resp.Answers[0].Value.Choices())
}

func TestClearSurvey(t *testing.T) {
	repo := new(MockSurveyRepository)
	svc := NewSurveyService(repo, nil)
	userID := uuid.New()

	repo.On("DeleteByUser", mock.Anything, userID).Return(nil)

	assert.NoError(t, svc.ClearSurvey(context.Background(), userID))
	repo.AssertCalled(t, "DeleteByUser", mock.Anything, userID)
}
