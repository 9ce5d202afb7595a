package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"

	"github.com/skillsphere/skillsphere/internal/errors"
)

// Client is the Skillsphere backend API client.
//
// Authentication is cookie-based: the backend sets an opaque session
// cookie on login/signup and the jar carries it on every subsequent
// request. The client reads the cookie, it never writes or inspects it.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new backend API client with an in-memory cookie jar
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return NewClientWithJar(baseURL, jar), nil
}

// NewClientWithJar creates a client using the given jar, typically a
// PersistentJar so the session survives across invocations
func NewClientWithJar(baseURL string, jar http.CookieJar) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

// Error is a non-2xx backend response. Its message is the backend's
// own `message` field when present, so it can be surfaced inline on a
// form without decoration.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// doRequest performs a JSON HTTP request against the backend
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.NewBackendUnreachableError(c.BaseURL, err)
	}

	return resp, nil
}

// errorBody is the backend's error response shape
type errorBody struct {
	Message string `json:"message"`
}

// parseResponse decodes the response body into target, or returns the
// backend's error for non-2xx statuses. target may be nil for
// endpoints whose body is irrelevant.
func parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized {
			return errors.NewNotAuthenticatedError()
		}

		body, _ := io.ReadAll(resp.Body)

		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
			return &Error{StatusCode: resp.StatusCode, Message: eb.Message}
		}
		return &Error{StatusCode: resp.StatusCode}
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// CurrentSession fetches the visitor's session snapshot
func (c *Client) CurrentSession(ctx context.Context) (SessionPayload, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/session", nil)
	if err != nil {
		return SessionPayload{}, err
	}

	var payload SessionPayload
	if err := parseResponse(resp, &payload); err != nil {
		return SessionPayload{}, err
	}
	return payload, nil
}

// Login authenticates and returns the fresh session
func (c *Client) Login(ctx context.Context, creds Credentials) (SessionPayload, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/login", creds)
	if err != nil {
		return SessionPayload{}, err
	}

	var payload SessionPayload
	if err := parseResponse(resp, &payload); err != nil {
		return SessionPayload{}, err
	}
	return payload, nil
}

// Signup registers a new account and returns the fresh session
func (c *Client) Signup(ctx context.Context, req SignupRequest) (SessionPayload, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/signup", req)
	if err != nil {
		return SessionPayload{}, err
	}

	var payload SessionPayload
	if err := parseResponse(resp, &payload); err != nil {
		return SessionPayload{}, err
	}
	return payload, nil
}

// Logout invalidates the backend session. Any 2xx counts as success;
// the caller clears local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// CreateOrganisation creates an organisation with the caller as admin
func (c *Client) CreateOrganisation(ctx context.Context, name string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/create-organization", CreateOrganisationRequest{OrganisationName: name})
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// JoinByInvite joins an organisation as employee using an invite code
func (c *Client) JoinByInvite(ctx context.Context, code string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/join-by-invite", JoinByInviteRequest{InviteCode: code})
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// OnboardingQuestions fetches the organisation's skills questionnaire.
// The list may be empty.
func (c *Client) OnboardingQuestions(ctx context.Context) ([]Question, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/onboarding-questions", nil)
	if err != nil {
		return nil, err
	}

	var payload QuestionsResponse
	if err := parseResponse(resp, &payload); err != nil {
		return nil, err
	}
	return payload.Questions, nil
}

// SubmitOnboardingResponses submits the selected option IDs.
// An empty selection is valid: the questionnaire may have no questions.
func (c *Client) SubmitOnboardingResponses(ctx context.Context, optionIDs []int) error {
	if optionIDs == nil {
		optionIDs = []int{}
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/onboarding-responses", OnboardingResponsesRequest{OptionIDs: optionIDs})
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// CompleteOnboarding marks onboarding as finished for the account
func (c *Client) CompleteOnboarding(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/complete-onboarding", nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}
