// Package account talks to the qlock sync API. Sessions live locally
// first; an authenticated account mirrors them to the server so the
// same history is visible across devices.
package account

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jatin/qlock/internal/session"
)

// DefaultAPIURL is the hosted sync backend.
const DefaultAPIURL = "https://qlock-api-jatin123-53a75330.koyeb.app"

var ErrUnauthorized = errors.New("not authenticated")

// User is the account profile returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is the login/register response.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Client is an authenticated HTTP client for the sync API. A zero
// token means anonymous; only Login and Register work without one.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a client for baseURL. An empty baseURL uses the hosted
// backend.
func New(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken replaces the bearer token after a successful login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Authenticated reports whether the client carries a token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// Token returns the current bearer token, empty when anonymous.
func (c *Client) Token() string {
	return c.token
}

// Login exchanges email and password for a token.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	var creds Credentials
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &creds); err != nil {
		return Credentials{}, err
	}
	c.token = creds.Token
	return creds, nil
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, name, email, password string) (Credentials, error) {
	var creds Credentials
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &creds); err != nil {
		return Credentials{}, err
	}
	c.token = creds.Token
	return creds, nil
}

// Me returns the profile for the current token.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Logout invalidates the token server side. Errors are returned but
// callers normally discard them: the local token is cleared regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// SyncLocal uploads locally created sessions and returns the merged
// cloud list. The server keys uploads by client id, so re-syncing the
// same sessions does not duplicate them.
func (c *Client) SyncLocal(ctx context.Context, local []session.Session) ([]session.Session, error) {
	body := map[string][]session.Session{"sessions": local}
	var remote []remoteSession
	if err := c.do(ctx, http.MethodPost, "/api/sessions/sync", body, &remote); err != nil {
		return nil, err
	}
	return fromRemote(remote), nil
}

// FetchRemote downloads the full cloud session list.
func (c *Client) FetchRemote(ctx context.Context) ([]session.Session, error) {
	var remote []remoteSession
	if err := c.do(ctx, http.MethodGet, "/api/sessions", nil, &remote); err != nil {
		return nil, err
	}
	return fromRemote(remote), nil
}

// SaveSession creates or updates one session in the cloud, chosen by
// whether it already has a remote id.
func (c *Client) SaveSession(ctx context.Context, s session.Session) (session.Session, error) {
	method := http.MethodPost
	path := "/api/sessions"
	if s.RemoteID != "" {
		method = http.MethodPut
		path = "/api/sessions/" + s.RemoteID
	}
	var remote remoteSession
	if err := c.do(ctx, method, path, s, &remote); err != nil {
		return session.Session{}, err
	}
	return remote.toLocal(), nil
}

// DeleteSession removes a session from the cloud by remote id.
func (c *Client) DeleteSession(ctx context.Context, remoteID string) error {
	return c.do(ctx, http.MethodDelete, "/api/sessions/"+remoteID, nil, nil)
}

// remoteSession is the server's wire shape. The server renames the
// client-generated id to client_id and issues its own id, which the
// local model keeps as RemoteID.
type remoteSession struct {
	ID              string             `json:"id"`
	ClientID        string             `json:"client_id"`
	Topic           string             `json:"topic"`
	Subtopic        string             `json:"subtopic"`
	TimerMode       session.TimerMode  `json:"timer_mode"`
	TimePerQuestion int                `json:"time_per_question"`
	TotalTime       int                `json:"total_time"`
	Questions       []session.Question `json:"questions"`
	Attempts        []session.Attempt  `json:"attempts"`
	CreatedAt       time.Time          `json:"createdAt"`
}

func (r remoteSession) toLocal() session.Session {
	return session.Session{
		ID:              r.ClientID,
		RemoteID:        r.ID,
		Topic:           r.Topic,
		Subtopic:        r.Subtopic,
		TimerMode:       r.TimerMode,
		TimePerQuestion: r.TimePerQuestion,
		TotalTime:       r.TotalTime,
		Questions:       r.Questions,
		Attempts:        r.Attempts,
		CreatedAt:       r.CreatedAt,
	}
}

func fromRemote(remote []remoteSession) []session.Session {
	out := make([]session.Session, len(remote))
	for i, r := range remote {
		out[i] = r.toLocal()
	}
	return out
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// TokenExpired reports whether token carries an exp claim in the past.
// The signature is not checked; the server is the authority, this only
// avoids a doomed round trip. Malformed tokens count as expired.
func TokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
