package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	apperrors "invested/internal/errors"
	"invested/internal/survey"
)

const noSurveyContext = "No survey information available."

const advisorSystemPrompt = `You are a friendly, encouraging dog financial advisor named Buddy. You provide warm, actionable financial advice in a conversational tone. Keep your responses between 200-300 words and make them practical and easy to understand.

Here is the user's financial profile from their survey:
%s

Based on this information, provide personalized advice that's relevant to their situation. If they ask something outside your expertise, gently redirect them to consider consulting a certified financial professional for complex matters. Always maintain a positive, supportive tone.`

// TokenUsage reports prompt and completion token counts from the backend.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// AdvisorResponse is the reshaped inference result.
type AdvisorResponse struct {
	Response   string     `json:"response"`
	TokenUsage TokenUsage `json:"tokenUsage"`
}

// AdvisorConfig points the service at an Ollama-compatible generate endpoint.
type AdvisorConfig struct {
	URL    string
	Model  string
	APIKey string
}

// AdvisorService forwards a formatted prompt to the inference backend.
// Single blocking request/response: no retry, no streaming, no conversation
// history across calls.
type AdvisorService interface {
	Ask(ctx context.Context, userID uuid.UUID, userQuestion string) (*AdvisorResponse, error)
}

type advisorService struct {
	surveys SurveyService
	cfg     AdvisorConfig
	client  *http.Client
}

// NewAdvisorService creates a new advisor service. A nil httpClient falls
// back to http.DefaultClient.
func NewAdvisorService(surveys SurveyService, cfg AdvisorConfig, httpClient *http.Client) AdvisorService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &advisorService{surveys: surveys, cfg: cfg, client: httpClient}
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response        string `json:"response"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

func (s *advisorService) Ask(ctx context.Context, userID uuid.UUID, userQuestion string) (*AdvisorResponse, error) {
	surveyData, err := s.surveys.GetSurveyAnswers(ctx, userID)
	if err != nil && err != apperrors.ErrSurveyNotFound {
		return nil, fmt.Errorf("fetch survey context: %w", err)
	}

	systemPrompt := fmt.Sprintf(advisorSystemPrompt, formatSurveyContext(surveyData))
	fullPrompt := fmt.Sprintf("%s\n\nUser: %s\n\nAssistant:", systemPrompt, userQuestion)

	payload, err := json.Marshal(generateRequest{
		Model:  s.cfg.Model,
		Prompt: fullPrompt,
		Stream: false,
		Options: generateOptions{
			Temperature: 0.7,
			NumPredict:  500,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call inference backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("inference backend error: %s", resp.Status)
	}

	var generated generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return nil, fmt.Errorf("decode generate response: %w", err)
	}

	answer := generated.Response
	if answer == "" {
		answer = "Sorry, I couldn't generate a response. Please try again."
	}

	return &AdvisorResponse{
		Response: answer,
		TokenUsage: TokenUsage{
			PromptTokens:     generated.PromptEvalCount,
			CompletionTokens: generated.EvalCount,
			TotalTokens:      generated.PromptEvalCount + generated.EvalCount,
		},
	}, nil
}

// formatSurveyContext renders stored answers into the fixed-format context
// block. Unknown question IDs fall back to the raw identifier.
func formatSurveyContext(surveyData *SurveyResponse) string {
	if surveyData == nil || len(surveyData.Answers) == 0 {
		return noSurveyContext
	}
	lines := make([]string, 0, len(surveyData.Answers))
	for _, a := range surveyData.Answers {
		lines = append(lines, fmt.Sprintf("%s: %s", survey.LabelFor(a.QuestionID), a.Value.Display()))
	}
	return strings.Join(lines, "\n")
}
