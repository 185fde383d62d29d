// Package client is a typed HTTP client for the Invested API, used by the
// terminal survey client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"invested/internal/service"
	"invested/internal/survey"
)

var (
	// ErrSurveyNotFound means the server has no survey record for the user,
	// the legitimate "not yet completed" signal.
	ErrSurveyNotFound = errors.New("no survey answers found")
	// ErrUnauthorized covers bad credentials and missing/invalid tokens.
	ErrUnauthorized = errors.New("unauthorized")
)

// Client calls the Invested API, carrying the session token once logged in.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a client against the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SetToken installs the bearer token for subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current bearer token, empty when logged out.
func (c *Client) Token() string { return c.token }

// RegisterResult mirrors the registration response.
type RegisterResult struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password, name string) (*RegisterResult, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	var out RegisterResult
	if err := c.do(ctx, http.MethodPost, "/api/users", body, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and installs the returned session token.
func (c *Client) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out service.LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/tokens", body, &out, http.StatusOK); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Logout retires the session token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/auth/tokens", nil, nil, http.StatusOK); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// GetSurvey fetches the stored survey record, or ErrSurveyNotFound.
func (c *Client) GetSurvey(ctx context.Context, userID uuid.UUID) (*service.SurveyResponse, error) {
	var out service.SurveyResponse
	path := fmt.Sprintf("/api/users/%s/survey", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSurvey submits the complete answer set.
func (c *Client) UpdateSurvey(ctx context.Context, userID uuid.UUID, answers []survey.Answer) (*service.SurveyResponse, error) {
	body := map[string]any{"answers": answers}
	var out service.SurveyResponse
	path := fmt.Sprintf("/api/users/%s/survey", userID)
	if err := c.do(ctx, http.MethodPut, path, body, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ask sends a question to the advisor proxy.
func (c *Client) Ask(ctx context.Context, userID uuid.UUID, question string) (*service.AdvisorResponse, error) {
	body := map[string]string{"userId": userID.String(), "userQuestion": question}
	var out service.AdvisorResponse
	if err := c.do(ctx, http.MethodPost, "/api/advisor", body, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, want int) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return ErrSurveyNotFound
		case http.StatusUnauthorized:
			return ErrUnauthorized
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, bytes.TrimSpace(data))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
