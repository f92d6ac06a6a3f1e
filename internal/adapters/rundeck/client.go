// Package rundeck implements the job service on top of the Rundeck HTTP API.
package rundeck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.trai.ch/rollout/internal/build"
	"go.trai.ch/rollout/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// SessionCookie carries the session token after a form login.
	SessionCookie = "JSESSIONID"

	loginPath      = "/j_security_check"
	maxErrorBody   = 4 << 10
	contentTypeKey = "Content-Type"
	jsonMediaType  = "application/json"
)

// Client implements ports.JobService.
type Client struct {
	baseURL    string
	apiVersion int
	httpClient *http.Client
}

// New creates a Client for the configured service.
// Redirects are not followed so the login response can be inspected.
func New(settings domain.ServiceSettings) *Client {
	return newClientWithHTTP(settings, &http.Client{
		Timeout: settings.RequestTimeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	})
}

func newClientWithHTTP(settings domain.ServiceSettings, client *http.Client) *Client {
	version := settings.APIVersion
	if version <= 0 {
		version = domain.DefaultAPIVersion
	}
	return &Client{
		baseURL:    strings.TrimRight(settings.URL, "/"),
		apiVersion: version,
		httpClient: client,
	}
}

// Authenticate performs a form login and returns the session cookie as token.
func (c *Client) Authenticate(ctx context.Context, username, password string) (domain.Session, error) {
	form := url.Values{
		"j_username": {username},
		"j_password": {password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.Session{}, zerr.Wrap(err, domain.ErrAuthenticationFailed.Error())
	}
	req.Header.Set(contentTypeKey, "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Session{}, zerr.Wrap(zerr.Wrap(err, domain.ErrTransport.Error()), domain.ErrAuthenticationFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return domain.Session{}, zerr.With(domain.ErrAuthenticationFailed, "status_code", resp.StatusCode)
	}

	if loc := resp.Header.Get("Location"); strings.Contains(loc, "/user/error") || strings.Contains(loc, "/user/login") {
		return domain.Session{}, zerr.With(domain.ErrAuthenticationFailed, "username", username)
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookie && cookie.Value != "" {
			return domain.Session{Token: cookie.Value}, nil
		}
	}

	return domain.Session{}, zerr.With(domain.ErrAuthenticationFailed, "reason", "no session cookie in login response")
}

// RunJob triggers the job now.
func (c *Client) RunJob(ctx context.Context, session domain.Session, req domain.JobRequest) (string, error) {
	return c.run(ctx, session, req, runRequest{
		ArgString: req.ArgString,
		Options:   req.Options,
	})
}

// ScheduleJob schedules the job at the given wall-clock time.
func (c *Client) ScheduleJob(ctx context.Context, session domain.Session, req domain.JobRequest, at time.Time) (string, error) {
	return c.run(ctx, session, req, runRequest{
		ArgString: req.ArgString,
		Options:   req.Options,
		RunAtTime: at.Format(domain.ScheduleTimeLayout),
	})
}

func (c *Client) run(ctx context.Context, session domain.Session, req domain.JobRequest, body runRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrTransport.Error())
	}

	path := fmt.Sprintf("/job/%s/run", url.PathEscape(req.JobName))

	var exec executionResponse
	if err := c.do(ctx, session, http.MethodPost, path, payload, &exec); err != nil {
		return "", zerr.With(err, "job", req.JobName)
	}

	id := string(exec.ID)
	if id == "0" {
		id = ""
	}
	return id, nil
}

// ExecutionStatus fetches the status of an execution.
func (c *Client) ExecutionStatus(ctx context.Context, session domain.Session, executionID string) (domain.ExecutionStatus, error) {
	var exec executionResponse
	path := "/execution/" + url.PathEscape(executionID)
	if err := c.do(ctx, session, http.MethodGet, path, nil, &exec); err != nil {
		return domain.StatusUnknown, zerr.With(err, "execution_id", executionID)
	}
	return domain.ParseExecutionStatus(exec.Status), nil
}

// do sends an API request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, session domain.Session, method, path string, payload []byte, out any) error {
	endpoint := fmt.Sprintf("%s/api/%d%s", c.baseURL, c.apiVersion, path)

	var body io.Reader = http.NoBody
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return zerr.Wrap(err, domain.ErrTransport.Error())
	}
	req.Header.Set("Accept", jsonMediaType)
	req.Header.Set("User-Agent", userAgent())
	if payload != nil {
		req.Header.Set(contentTypeKey, jsonMediaType)
	}
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session.Token})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zerr.Wrap(err, domain.ErrTransport.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := zerr.With(domain.ErrTransport, "status_code", resp.StatusCode)
		if msg := errorMessage(resp.Body); msg != "" {
			apiErr = zerr.With(apiErr, "message", msg)
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return zerr.Wrap(err, domain.ErrTransport.Error())
	}
	return nil
}

// errorMessage extracts the message from a Rundeck error body, if any.
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var apiErr errorResponse
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return strings.TrimSpace(string(data))
}

func userAgent() string {
	return "rollout/" + build.Version
}
