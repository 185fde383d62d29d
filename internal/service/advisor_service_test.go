package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "invested/internal/errors"
	"invested/internal/survey"
)

// stubSurveyService returns a fixed survey record or error.
type stubSurveyService struct {
	resp *SurveyResponse
	err  error
}

func (s *stubSurveyService) UpdateSurvey(ctx context.Context, userID uuid.UUID, answers []survey.Answer) (*SurveyResponse, error) {
	return s.resp, s.err
}

func (s *stubSurveyService) GetSurveyAnswers(ctx context.Context, userID uuid.UUID) (*SurveyResponse, error) {
	return s.resp, s.err
}

func (s *stubSurveyService) ClearSurvey(ctx context.Context, userID uuid.UUID) error {
	return s.err
}

func fakeOllama(t *testing.T, capture *string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model   string `json:"model"`
			Prompt  string `json:"prompt"`
			Stream  bool   `json:"stream"`
			Options struct {
				Temperature float64 `json:"temperature"`
				NumPredict  int     `json:"num_predict"`
			} `json:"options"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, 0.7, req.Options.Temperature)
		assert.Equal(t, 500, req.Options.NumPredict)
		if capture != nil {
			*capture = req.Prompt
		}

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response":          "Start with a small emergency fund.",
			"prompt_eval_count": 120,
			"eval_count":        80,
		})
	}))
}

func TestAskIncludesSurveyContext(t *testing.T) {
	var prompt string
	backend := fakeOllama(t, &prompt, http.StatusOK)
	defer backend.Close()

	surveys := &stubSurveyService{resp: &SurveyResponse{
		Answers: []survey.Answer{
			{QuestionID: "employment", Value: survey.Single("Student")},
			{QuestionID: "debt", Value: survey.Multiple([]string{"Student loans"})},
			{QuestionID: "mystery", Value: survey.Single("whatever")},
		},
	}}
	svc := NewAdvisorService(surveys, AdvisorConfig{URL: backend.URL, Model: "llama2"}, nil)

	resp, err := svc.Ask(context.Background(), uuid.New(), "How do I start saving?")
	assert.NoError(t, err)
	assert.Equal(t, "Start with a small emergency fund.", resp.Response)
	assert.Equal(t, 120, resp.TokenUsage.PromptTokens)
	assert.Equal(t, 80, resp.TokenUsage.CompletionTokens)
	assert.Equal(t, 200, resp.TokenUsage.TotalTokens)

	assert.Contains(t, prompt, "Employment Status: Student")
	assert.Contains(t, prompt, `Debt Status: ["Student loans"]`)
	// unknown question IDs fall back to the raw identifier
	assert.Contains(t, prompt, "mystery: whatever")
	assert.True(t, strings.HasSuffix(prompt, "User: How do I start saving?\n\nAssistant:"))
}

func TestAskWithoutSurveySucceeds(t *testing.T) {
	var prompt string
	backend := fakeOllama(t, &prompt, http.StatusOK)
	defer backend.Close()

	surveys := &stubSurveyService{err: apperrors.ErrSurveyNotFound}
	svc := NewAdvisorService(surveys, AdvisorConfig{URL: backend.URL, Model: "llama2"}, nil)

	_, err := svc.Ask(context.Background(), uuid.New(), "Where do I begin?")
	assert.NoError(t, err)
	assert.Contains(t, prompt, "No survey information available.")
}

func TestAskUpstreamFailure(t *testing.T) {
	backend := fakeOllama(t, nil, http.StatusBadGateway)
	defer backend.Close()

	surveys := &stubSurveyService{err: apperrors.ErrSurveyNotFound}
	svc := NewAdvisorService(surveys, AdvisorConfig{URL: backend.URL, Model: "llama2"}, nil)

	_, err := svc.Ask(context.Background(), uuid.New(), "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestAskSendsAPIKey(t *testing.T) {
	var gotAuth string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "ok"})
	}))
	defer backend.Close()

	surveys := &stubSurveyService{err: apperrors.ErrSurveyNotFound}
	svc := NewAdvisorService(surveys, AdvisorConfig{URL: backend.URL, Model: "llama2", APIKey: "sekrit"}, nil)

	_, err := svc.Ask(context.Background(), uuid.New(), "hello")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer sekrit", gotAuth)
}
