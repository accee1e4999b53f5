package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/AptiPro-2025/exam-session-service/internal/models"
	"github.com/AptiPro-2025/exam-session-service/internal/utils"
)

// ErrMalformedPayload marks a collaborator response that did not match the
// expected schema. It is resolved at this boundary; callers convert it to a
// display state.
var ErrMalformedPayload = errors.New("malformed collaborator payload")

// StatusError carries a non-success collaborator status together with the
// message the collaborator attached, so the viewer sees it verbatim.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("collaborator returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("collaborator returned %d", e.StatusCode)
}

// Client talks to the external collaborator that owns the question bank,
// the grading backend and the results store.
type Client interface {
	FetchQuestions(ctx context.Context, subject string, difficulty models.DifficultyLevel, limit int) ([]models.Question, error)
	FetchTests(ctx context.Context, department string) ([]models.Test, error)
	FetchResults(ctx context.Context, email string) ([]models.RawResult, error)
	SubmitTest(ctx context.Context, submission *models.Submission) error
	Signup(ctx context.Context, form *models.SignupForm) error
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  utils.Logger
}

// NewClient builds an HTTP collaborator client rooted at baseURL.
func NewClient(baseURL string, logger utils.Logger) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

type questionsResponse struct {
	MCQ []models.Question `json:"mcq"`
}

func (c *httpClient) FetchQuestions(ctx context.Context, subject string, difficulty models.DifficultyLevel, limit int) ([]models.Question, error) {
	query := url.Values{}
	query.Set("subject", subject)
	query.Set("difficulty", string(difficulty))
	query.Set("limit", strconv.Itoa(limit))

	var payload questionsResponse
	if err := c.getJSON(ctx, "/questions", query, &payload); err != nil {
		return nil, err
	}
	if payload.MCQ == nil {
		return nil, fmt.Errorf("%w: questions response missing mcq list", ErrMalformedPayload)
	}
	return payload.MCQ, nil
}

type testsResponse struct {
	Tests []models.Test `json:"tests"`
}

func (c *httpClient) FetchTests(ctx context.Context, department string) ([]models.Test, error) {
	query := url.Values{}
	query.Set("department", department)

	var payload testsResponse
	if err := c.getJSON(ctx, "/tests", query, &payload); err != nil {
		return nil, err
	}
	if payload.Tests == nil {
		return nil, fmt.Errorf("%w: tests response missing tests list", ErrMalformedPayload)
	}
	return payload.Tests, nil
}

type resultsResponse struct {
	Results []models.RawResult `json:"results"`
}

func (c *httpClient) FetchResults(ctx context.Context, email string) ([]models.RawResult, error) {
	query := url.Values{}
	query.Set("email", email)

	var payload resultsResponse
	if err := c.getJSON(ctx, "/results", query, &payload); err != nil {
		return nil, err
	}
	// An account with no completed tests yields an absent list.
	return payload.Results, nil
}

func (c *httpClient) SubmitTest(ctx context.Context, submission *models.Submission) error {
	return c.postJSON(ctx, "/submit", submission)
}

func (c *httpClient) Signup(ctx context.Context, form *models.SignupForm) error {
	return c.postJSON(ctx, "/signup", form)
}

func (c *httpClient) getJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("collaborator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

func (c *httpClient) postJSON(ctx context.Context, path string, body interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("collaborator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.statusError(resp)
	}
	return nil
}

// statusError extracts the collaborator's message so it can be passed
// through to the viewer verbatim.
func (c *httpClient) statusError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		_ = json.Unmarshal(body, &payload)
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: payload.Message}
}
