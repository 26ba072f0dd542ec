// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

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

	"golang.org/x/time/rate"

	"github.com/jeranaias/datamock-tui/internal/model"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

const (
	// DefaultBaseURL points at a locally running backend.
	DefaultBaseURL = "http://127.0.0.1:8000/api"

	// DefaultTimeout bounds the short request/response endpoints. The
	// streaming endpoint is bounded by context only.
	DefaultTimeout = 30 * time.Second

	// checkRateLimit caps availability probes at one per 200ms with a small
	// burst, so keystroke-driven checks cannot hammer the backend even if a
	// caller forgets to debounce.
	checkRateLimit = rate.Limit(5)
	checkRateBurst = 3
)

// Config holds client construction options.
type Config struct {
	// BaseURL is the backend root, without a trailing slash.
	BaseURL string

	// Timeout applies to non-streaming requests. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Client talks to the datamock backend. It is safe for concurrent use.
type Client struct {
	baseURL      string
	http         *http.Client
	streamHTTP   *http.Client
	checkLimiter *rate.Limiter
}

// NewClient builds a Client from cfg, applying defaults for zero fields.
func NewClient(cfg Config) *Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		// No overall timeout on the streaming client. Generation can run
		// for minutes; the caller's context is the only bound.
		streamHTTP:   &http.Client{},
		checkLimiter: rate.NewLimiter(checkRateLimit, checkRateBurst),
	}
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// RegisterRequest carries a new account profile.
type RegisterRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

type titleRequest struct {
	Prompt string          `json:"prompt"`
	Sample []*model.Record `json:"sample,omitempty"`
}

type titleResponse struct {
	Title string `json:"title"`
}

// errorBody matches the backend's error envelope. Detail is usually a
// string but validation errors nest structures, so decode loosely.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func (e errorBody) message() string {
	if len(e.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return s
	}
	return string(e.Detail)
}

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// Login exchanges credentials for a bearer token. The backend accepts the
// OAuth2 password form, so the body is form-encoded rather than JSON.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", newError(ErrTypeConnection, "building login request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", cancelErr(ctx)
		}
		return "", newError(ErrTypeConnection, "login request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusForbidden:
		msg := readErrorDetail(resp.Body)
		if msg == "" {
			msg = "Invalid email or password."
		}
		return "", newError(ErrTypeAuth, msg, ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		return "", statusError(resp)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", newError(ErrTypeResponse, "decoding login response", err)
	}
	if tok.AccessToken == "" {
		return "", newError(ErrTypeResponse, "login response missing token", nil)
	}
	return tok.AccessToken, nil
}

// Register creates a new account. A conflict or rejected profile comes back
// as a validation-typed error carrying the backend's message.
func (c *Client) Register(ctx context.Context, reg RegisterRequest) error {
	resp, err := c.postJSON(ctx, "/auth/register", reg)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		msg := readErrorDetail(resp.Body)
		if msg == "" {
			msg = "Registration was rejected."
		}
		return newError(ErrTypeValidation, msg, nil)
	default:
		return statusError(resp)
	}
}

// CheckUsername reports whether username is already taken.
func (c *Client) CheckUsername(ctx context.Context, username string) (bool, error) {
	return c.checkExists(ctx, "/auth/check-username", map[string]string{"username": username})
}

// CheckEmail reports whether email is already registered.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	return c.checkExists(ctx, "/auth/check-email", map[string]string{"email": email})
}

func (c *Client) checkExists(ctx context.Context, path string, body map[string]string) (bool, error) {
	if err := c.checkLimiter.Wait(ctx); err != nil {
		return false, cancelErr(ctx)
	}
	resp, err := c.postJSON(ctx, path, body)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, statusError(resp)
	}
	var out existsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, newError(ErrTypeResponse, "decoding availability response", err)
	}
	return out.Exists, nil
}

// =============================================================================
// TITLE ENDPOINT
// =============================================================================

// GenerateTitle asks the backend to name a session from its first prompt and
// a sample of the produced records. Callers treat any failure as soft.
func (c *Client) GenerateTitle(ctx context.Context, token, prompt string, sample []*model.Record) (string, error) {
	resp, err := c.postJSONAuth(ctx, "/data/generate-title", token, titleRequest{
		Prompt: prompt,
		Sample: sample,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", newError(ErrTypeAuth, readErrorDetail(resp.Body), ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}
	var out titleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", newError(ErrTypeResponse, "decoding title response", err)
	}
	return strings.TrimSpace(out.Title), nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.postJSONAuth(ctx, path, "", body)
}

func (c *Client) postJSONAuth(ctx context.Context, path, token string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, newError(ErrTypeResponse, "encoding request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, newError(ErrTypeConnection, "building request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, cancelErr(ctx)
		}
		return nil, newError(ErrTypeConnection, fmt.Sprintf("POST %s failed", path), err)
	}
	return resp, nil
}

// readErrorDetail drains up to a small bound of the body and extracts the
// backend's detail message, if any.
func readErrorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 8192))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.message())
}

func statusError(resp *http.Response) *ClientError {
	msg := readErrorDetail(resp.Body)
	if msg == "" {
		msg = fmt.Sprintf("server returned %s", resp.Status)
	}
	return newError(ErrTypeConnection, msg, nil)
}
