package userclient

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
	"strings"

	"study-quiz/internal/quiz"
)

var ErrServiceUnavailable = errors.New("quiz service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// HTTPClient talks to quiz-service on behalf of one signed-in user.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type sessionQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Selected *int     `json:"selected,omitempty"`
}

type sessionView struct {
	SessionID       string          `json:"session_id"`
	QuizID          string          `json:"quiz_id"`
	QuizTitle       string          `json:"quiz_title"`
	Phase           string          `json:"phase"`
	CurrentIndex    int             `json:"current_index"`
	QuestionCount   int             `json:"question_count"`
	AnsweredCount   int             `json:"answered_count"`
	Unanswered      []int           `json:"unanswered"`
	CurrentQuestion sessionQuestion `json:"current_question"`
}

type submitView struct {
	Result   quiz.Result `json:"result"`
	Verdict  string      `json:"verdict"`
	Warnings []string    `json:"warnings,omitempty"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}

type quizzesResponse struct {
	Quizzes []quiz.QuizMetadata `json:"quizzes"`
}

type resultsResponse struct {
	Results []quiz.Result `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Login obtains a token from the service's development login and uses it
// for every later call.
func (c *HTTPClient) Login(ctx context.Context, username string) (string, error) {
	var payload tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/token", map[string]string{"username": username}, &payload); err != nil {
		return "", err
	}
	c.token = payload.AccessToken
	return payload.Username, nil
}

// SetToken uses an externally issued bearer token instead of Login.
func (c *HTTPClient) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

func (c *HTTPClient) ListQuizzes(ctx context.Context, limit int) ([]quiz.QuizMetadata, error) {
	var payload quizzesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/quizzes?"+limitQuery(limit), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Quizzes, nil
}

func (c *HTTPClient) DeleteQuiz(ctx context.Context, quizID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/quizzes/"+url.PathEscape(quizID), nil, nil)
}

func (c *HTTPClient) StartSession(ctx context.Context, quizID string) (sessionView, error) {
	if strings.TrimSpace(quizID) == "" {
		return sessionView{}, errors.New("quiz_id is required")
	}
	var view sessionView
	err := c.doJSON(ctx, http.MethodPost, "/api/quizzes/"+url.PathEscape(quizID)+"/sessions", nil, &view)
	return view, err
}

func (c *HTTPClient) SelectAnswer(ctx context.Context, sessionID string, option int) (sessionView, error) {
	return c.sessionCall(ctx, sessionID, "/answer", map[string]int{"option": option})
}

func (c *HTTPClient) GoTo(ctx context.Context, sessionID string, index int) (sessionView, error) {
	return c.sessionCall(ctx, sessionID, "/goto", map[string]int{"index": index})
}

func (c *HTTPClient) Next(ctx context.Context, sessionID string) (sessionView, error) {
	return c.sessionCall(ctx, sessionID, "/next", nil)
}

func (c *HTTPClient) Previous(ctx context.Context, sessionID string) (sessionView, error) {
	return c.sessionCall(ctx, sessionID, "/previous", nil)
}

func (c *HTTPClient) Submit(ctx context.Context, sessionID string) (submitView, error) {
	var view submitView
	err := c.doJSON(ctx, http.MethodPost, "/api/sessions/"+url.PathEscape(sessionID)+"/submit", nil, &view)
	return view, err
}

func (c *HTTPClient) Abandon(ctx context.Context, sessionID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/sessions/"+url.PathEscape(sessionID), nil, nil)
}

func (c *HTTPClient) ListResults(ctx context.Context, limit int) ([]quiz.Result, error) {
	var payload resultsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/results?"+limitQuery(limit), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (quiz.Stats, error) {
	var stats quiz.Stats
	err := c.doJSON(ctx, http.MethodGet, "/api/stats", nil, &stats)
	return stats, err
}

func (c *HTTPClient) sessionCall(ctx context.Context, sessionID, action string, requestBody any) (sessionView, error) {
	var view sessionView
	err := c.doJSON(ctx, http.MethodPost, "/api/sessions/"+url.PathEscape(sessionID)+action, requestBody, &view)
	return view, err
}

func limitQuery(limit int) string {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query.Encode()
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
