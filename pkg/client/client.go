package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rehearsehq/rehearse/pkg/domain"
)

// authCookieName is the session cookie issued by the interview service.
const authCookieName = "interview_auth"

// Client is the interview service API client. Authentication is carried by
// an opaque session cookie; the client stores only its value and replays it
// on every request. The cookie is guarded by a mutex: Login and Logout run
// as background commands and may overlap other in-flight requests on the
// same client.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu     sync.Mutex
	cookie string
}

// New creates a new API client. cookie may be empty for an unauthenticated
// client; Login fills it in.
func New(baseURL, cookie string) *Client {
	return &Client{
		baseURL: baseURL,
		cookie:  cookie,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AuthCookie returns the current session cookie value, empty if logged out.
func (c *Client) AuthCookie() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cookie
}

func (c *Client) setCookie(v string) {
	c.mu.Lock()
	c.cookie = v
	c.mu.Unlock()
}

// --- Auth ---

// Register creates a new account. The service responds with status only.
func (c *Client) Register(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/auth/register", body, nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// Login authenticates with email and password. On success the session cookie
// set by the service is captured for subsequent requests, and the profile
// hints from the response body are returned. A 2xx response whose body does
// not decode is an error: a login that yields no usable session is a failure.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Hints, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("client.Login: marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("client.Login: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client.Login: do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("client.Login: %w", readHTTPError(resp))
	}

	var hints domain.Hints
	if err := json.NewDecoder(resp.Body).Decode(&hints); err != nil {
		return nil, fmt.Errorf("client.Login: decode response: %w", err)
	}

	var cookie string
	for _, ck := range resp.Cookies() {
		if ck.Name == authCookieName {
			cookie = ck.Value
		}
	}
	if cookie == "" {
		return nil, fmt.Errorf("client.Login: no %s cookie in response", authCookieName)
	}
	c.setCookie(cookie)
	return &hints, nil
}

// Logout invalidates the server-side session and drops the stored cookie.
// The cookie is dropped even when the call fails; logout is best-effort.
func (c *Client) Logout(ctx context.Context) error {
	err := c.post(ctx, "/auth/logout", nil, nil)
	c.setCookie("")
	if err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// CurrentUser is the identity probe. Any failure means "not logged in" as
// far as callers are concerned; they must not distinguish transport errors
// from auth rejections.
func (c *Client) CurrentUser(ctx context.Context) (*domain.Identity, error) {
	var id domain.Identity
	if err := c.get(ctx, "/auth/user", &id); err != nil {
		return nil, fmt.Errorf("client.CurrentUser: %w", err)
	}
	return &id, nil
}

// --- Interview ---

// StartInterviewRequest is the payload for starting a new interview session.
type StartInterviewRequest struct {
	Role       string `json:"role"`
	Experience string `json:"experience"`
	TechStack  string `json:"tech_stack"`
	Difficulty string `json:"difficulty"`
}

// StartInterviewResponse carries the new session id and its first question.
type StartInterviewResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Question  string    `json:"question"`
}

// StartInterview asks the service to open a new session and pose a question.
func (c *Client) StartInterview(ctx context.Context, r StartInterviewRequest) (*StartInterviewResponse, error) {
	var out StartInterviewResponse
	if err := c.post(ctx, "/interview/question", r, &out); err != nil {
		return nil, fmt.Errorf("client.StartInterview: %w", err)
	}
	return &out, nil
}

// Feedback is the scored evaluation of a submitted answer.
type Feedback struct {
	Feedback string  `json:"feedback"`
	Score    float64 `json:"score"`
}

// SubmitAnswer submits an answer for the given session and returns the
// service's feedback and score.
func (c *Client) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, answer string) (*Feedback, error) {
	body := map[string]string{
		"session_id": sessionID.String(),
		"answer":     answer,
	}
	var out Feedback
	if err := c.post(ctx, "/interview/feedback", body, &out); err != nil {
		return nil, fmt.Errorf("client.SubmitAnswer: %w", err)
	}
	return &out, nil
}

// GetAdvice returns aggregated improvement advice for the authenticated user.
// The text is lightly marked up and needs formatting before display.
func (c *Client) GetAdvice(ctx context.Context) (string, error) {
	var out struct {
		Advice string `json:"advice"`
	}
	if err := c.post(ctx, "/interview/advice", nil, &out); err != nil {
		return "", fmt.Errorf("client.GetAdvice: %w", err)
	}
	return out.Advice, nil
}

// --- History ---

// ListSessions returns the authenticated user's past sessions in the order
// the service reports them; that order is authoritative.
func (c *Client) ListSessions(ctx context.Context) ([]domain.SessionSummary, error) {
	var out struct {
		Sessions []domain.SessionSummary `json:"sessions"`
	}
	if err := c.get(ctx, "/user/session", &out); err != nil {
		return nil, fmt.Errorf("client.ListSessions: %w", err)
	}
	return out.Sessions, nil
}

// GetSession returns the full interaction log of one session.
func (c *Client) GetSession(ctx context.Context, id uuid.UUID) ([]domain.Interaction, error) {
	var out struct {
		Interactions []domain.Interaction `json:"interactions"`
	}
	if err := c.get(ctx, "/session/"+url.PathEscape(id.String()), &out); err != nil {
		return nil, fmt.Errorf("client.GetSession: %w", err)
	}
	return out.Interactions, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie := c.AuthCookie(); cookie != "" {
		req.AddCookie(&http.Cookie{Name: authCookieName, Value: cookie})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		return readHTTPError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// readHTTPError turns a non-2xx response into an *HTTPError, pulling the
// service's "detail" message out of the body when one is present.
func readHTTPError(resp *http.Response) error {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if readErr != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
	}
	var apiErr struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Detail != "" {
		return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Detail}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
}
