// Package api is the remote store adapter: the only component talking to
// the LinkVault REST service.
//
// The adapter is a stateless pass-through. It holds the base URL, an
// http.Client and the explicit Session it was constructed with; every
// mutating call decodes and returns the created or updated record so the
// caller can merge it locally instead of refetching everything.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"linkvault/internal/logger"
)

const defaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept for the user
// message.
const maxErrorBody = 512

// Client talks to the remote LinkVault service.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	log     zerolog.Logger
}

// New creates an adapter for the service at baseURL. session may be nil for
// unauthenticated calls (login, register).
func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		session: session,
		log:     logger.WithComponent("api"),
	}
}

// Session returns the session the adapter was constructed with.
func (c *Client) Session() *Session { return c.session }

// tokenResponse is the body of POST /token/.
type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair. A 401 from the token
// endpoint means bad credentials, not an expired session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	const op = "Login"

	body := map[string]string{"username": username, "password": password}
	var tok tokenResponse
	err := c.do(ctx, op, http.MethodPost, "token/", body, &tok, false)
	if err != nil {
		var remote *RemoteError
		if errors.As(err, &remote) && remote.Status == http.StatusUnauthorized {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	c.log.Info().Str("username", username).Msg("Logged in")
	sess := &Session{Access: tok.Access, Refresh: tok.Refresh}
	c.session = sess
	return sess, nil
}

// RefreshToken renews the access token using the refresh token and returns
// the updated session.
func (c *Client) RefreshToken(ctx context.Context) (*Session, error) {
	const op = "RefreshToken"

	if c.session == nil || c.session.Refresh == "" {
		return nil, ErrNoSession
	}
	body := map[string]string{"refresh": c.session.Refresh}
	var tok tokenResponse
	if err := c.do(ctx, op, http.MethodPost, "token/refresh/", body, &tok, false); err != nil {
		return nil, err
	}
	c.session.Access = tok.Access
	if tok.Refresh != "" {
		c.session.Refresh = tok.Refresh
	}
	return c.session, nil
}

// Register creates a new account. Email is optional.
func (c *Client) Register(ctx context.Context, username, password, email string) error {
	const op = "Register"

	body := map[string]string{"username": username, "password": password, "email": email}
	return c.do(ctx, op, http.MethodPost, "register/", body, nil, false)
}

// do performs one round-trip: encode body, set the bearer token when the
// call is authenticated, classify the response, decode into out.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: %s: cannot encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return fmt.Errorf("api: %s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if c.session == nil || c.session.Access == "" {
			return ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+c.session.Access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s: %w", op, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("Remote call")

	if authed && resp.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RemoteError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(detail))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: %s: cannot decode response: %w", op, err)
	}
	return nil
}
