// Package apiclient is the HTTP client the admin editor and the booking
// page use to talk to the ticketing service. It speaks the service's
// response envelope and maps rejection statuses onto the shared sentinel
// errors, so callers branch on errors.Is rather than status codes.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cinematicketing/internal/domain"
)

// ErrUnauthorized is returned when the server rejects the bearer token.
var ErrUnauthorized = errors.New("unauthorized")

const (
	requestTimeout = 15 * time.Second

	// refreshInterval is how often the background refresher trades the
	// current token for a fresh one. Well inside the 7-day token life.
	refreshInterval = 12 * time.Hour
)

// Client is a bearer-token HTTP client for the ticketing API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	mu       sync.Mutex
	token    string
	tokenExp time.Time
	stop     chan struct{}
}

func New(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type refreshRequest struct {
	Token string `json:"token"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// SignUp registers an operator account.
func (c *Client) SignUp(ctx context.Context, email, password, name string) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", signUpRequest{Email: email, Password: password, Name: name}, nil)
}

// Login authenticates and stores the bearer token, then keeps it fresh in
// the background until Logout.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &out)
	if errors.Is(err, ErrUnauthorized) {
		return domain.ErrInvalidCredentials
	}
	if err != nil {
		return err
	}
	c.setToken(out.Token)
	c.startRefresh()
	return nil
}

// Logout drops the token and stops the background refresher.
func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.tokenExp = time.Time{}
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

// Authenticated reports whether the client holds an unexpired token.
func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" {
		return false
	}
	return c.tokenExp.IsZero() || time.Now().Before(c.tokenExp)
}

// setToken stores a token along with its expiry read from the exp claim.
// The parse is unverified; the client only schedules around the expiry,
// the server still verifies every request.
func (c *Client) setToken(token string) {
	var exp time.Time
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.tokenExp = exp
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) startRefresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	stop := make(chan struct{})
	c.stop = stop

	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := c.refreshToken(); err != nil {
					c.logger.Warn("token refresh failed", "error", err)
				}
			}
		}
	}()
}

func (c *Client) refreshToken() error {
	token := c.currentToken()
	if token == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh-token", refreshRequest{Token: token}, &out); err != nil {
		return err
	}
	c.setToken(out.Token)
	return nil
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

// do performs one request and decodes the response envelope into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && resp.StatusCode < 300 {
		return fmt.Errorf("decode response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrValidation, errMessage(env))
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return fmt.Errorf("server returned %s", resp.Status)
	}
}

func errMessage(env envelope) string {
	if env.Error != nil {
		return env.Error.Message
	}
	return "request rejected"
}
