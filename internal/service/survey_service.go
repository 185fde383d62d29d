package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"invested/internal/cache"
	apperrors "invested/internal/errors"
	"invested/internal/model"
	"invested/internal/repository"
	"invested/internal/survey"
)

const surveyCacheTTL = 5 * time.Minute

// SurveyResponse is the full, current survey record for one user.
type SurveyResponse struct {
	UserID    uuid.UUID       `json:"userId"`
	Answers   []survey.Answer `json:"answers"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SurveyService normalizes answer payloads to and from the storage
// representation.
type SurveyService interface {
	// UpdateSurvey upserts the answer batch atomically, then re-reads the
	// full answer set so the response reflects the complete current record,
	// not just the written batch.
	UpdateSurvey(ctx context.Context, userID uuid.UUID, answers []survey.Answer) (*SurveyResponse, error)
	// GetSurveyAnswers returns the stored record, or ErrSurveyNotFound when
	// the user has no answers at all.
	GetSurveyAnswers(ctx context.Context, userID uuid.UUID) (*SurveyResponse, error)
	// ClearSurvey bulk-deletes a user's answers.
	ClearSurvey(ctx context.Context, userID uuid.UUID) error
}

type surveyService struct {
	repo  repository.SurveyRepository
	cache *cache.Client
}

// NewSurveyService creates a new survey service.
func NewSurveyService(repo repository.SurveyRepository, cache *cache.Client) SurveyService {
	return &surveyService{repo: repo, cache: cache}
}

func (s *surveyService) cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("survey:%s", userID)
}

func (s *surveyService) UpdateSurvey(ctx context.Context, userID uuid.UUID, answers []survey.Answer) (*SurveyResponse, error) {
	rows := make([]model.SurveyAnswer, 0, len(answers))
	for _, a := range answers {
		encoded, err := survey.EncodeValue(a.Value)
		if err != nil {
			return nil, apperrors.ErrInvalidAnswer
		}
		rows = append(rows, model.SurveyAnswer{
			UserID:     userID,
			QuestionID: a.QuestionID,
			Answer:     encoded,
		})
	}

	if err := s.repo.UpsertAnswers(ctx, rows); err != nil {
		return nil, fmt.Errorf("upsert answers: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))

	stored, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return s.buildResponse(ctx, userID, stored, false)
}

func (s *surveyService) GetSurveyAnswers(ctx context.Context, userID uuid.UUID) (*SurveyResponse, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		var cached SurveyResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	stored, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	if len(stored) == 0 {
		return nil, apperrors.ErrSurveyNotFound
	}
	return s.buildResponse(ctx, userID, stored, true)
}

func (s *surveyService) ClearSurvey(ctx context.Context, userID uuid.UUID) error {
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return s.repo.DeleteByUser(ctx, userID)
}

// buildResponse decodes stored rows back into answer values. UpdatedAt is the
// most recent update across all rows.
func (s *surveyService) buildResponse(ctx context.Context, userID uuid.UUID, stored []model.SurveyAnswer, cacheResult bool) (*SurveyResponse, error) {
	answers := make([]survey.Answer, 0, len(stored))
	var updatedAt time.Time
	for _, row := range stored {
		value, err := survey.DecodeValue(row.Answer)
		if err != nil {
			return nil, fmt.Errorf("decode answer %q: %w", row.QuestionID, err)
		}
		answers = append(answers, survey.Answer{QuestionID: row.QuestionID, Value: value})
		if row.UpdatedAt.After(updatedAt) {
			updatedAt = row.UpdatedAt
		}
	}

	resp := &SurveyResponse{
		UserID:    userID,
		Answers:   answers,
		UpdatedAt: updatedAt,
	}

	if cacheResult {
		if payload, err := json.Marshal(resp); err == nil {
			_ = s.cache.Set(ctx, s.cacheKey(userID), payload, surveyCacheTTL)
		}
	}
	return resp, nil
}
