// ABOUTME: HTTP client for the realm auth and game services
// ABOUTME: Wraps API calls with typed errors for controller and CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every request made by the client
const DefaultTimeout = 30 * time.Second

// Client is the API client for the auth and game services
type Client struct {
	authURL    string
	gameURL    string
	httpClient *http.Client
	timeout    time.Duration
	jar        http.CookieJar
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient bases requests on a copy of hc; hc itself is never modified
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCookieJar makes the client send and receive cookies like a browser
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithLogger sets the logger used for request tracing.
// Without it the client logs to whatever slog.Default() is at request time.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a new API client for the given service base URLs
func New(authURL, gameURL string, opts ...Option) *Client {
	c := &Client{
		authURL:    strings.TrimRight(authURL, "/"),
		gameURL:    strings.TrimRight(gameURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	if c.jar != nil {
		hc.Jar = c.jar
	}
	c.httpClient = &hc
	return c
}

func (c *Client) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

// Credentials is the body of login and register requests
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult represents the /api/login success response
type AuthResult struct {
	AccessToken string `json:"access_token"`
	RedirectURL string `json:"redirect_url"`
}

// RegisterResult represents the /api/register success response
type RegisterResult struct {
	Message     string `json:"message,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// ResourceState is the player's resource counters
type ResourceState struct {
	Wood  int `json:"wood"`
	Stone int `json:"stone"`
	Gold  int `json:"gold"`
}

// CollectResult represents the /collect_resources success response
type CollectResult struct {
	Resources *ResourceState `json:"resources"`
	Message   string         `json:"message,omitempty"`
}

// wireResources tells a missing counter apart from a zero one
type wireResources struct {
	Wood  *int `json:"wood"`
	Stone *int `json:"stone"`
	Gold  *int `json:"gold"`
}

func (w *wireResources) state() (*ResourceState, bool) {
	if w == nil || w.Wood == nil || w.Stone == nil || w.Gold == nil {
		return nil, false
	}
	return &ResourceState{Wood: *w.Wood, Stone: *w.Stone, Gold: *w.Gold}, true
}

// ErrMissingResources is wrapped in the TransportError returned when a
// success body lacks the resource counters
var ErrMissingResources = errors.New("response has no resources")

// BuildingLevels is the player's production building levels
type BuildingLevels struct {
	Sawmill int `json:"sawmill_level"`
	Quarry  int `json:"quarry_level"`
	Mine    int `json:"mine_level"`
}

// BuildResult represents the /build/{building} success response
type BuildResult struct {
	Message   string          `json:"message,omitempty"`
	Buildings *BuildingLevels `json:"buildings,omitempty"`
}

// ErrorResponse represents an API error body
type ErrorResponse struct {
	Message string `json:"message"`
}

// Buildings that can be upgraded
var Buildings = []string{"sawmill", "quarry", "mine"}

// ErrUnknownBuilding is returned for a building name the game does not have
var ErrUnknownBuilding = errors.New("unknown building")

// Login calls POST /api/login
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, c.authURL+"/api/login", "", creds, &result); err != nil {
		return nil, err
	}
	if result.AccessToken == "" {
		return nil, &TransportError{Op: "login", Err: errors.New("response has no access_token")}
	}
	return &result, nil
}

// Register calls POST /api/register
func (c *Client) Register(ctx context.Context, creds Credentials) (*RegisterResult, error) {
	var result RegisterResult
	if err := c.doJSON(ctx, http.MethodPost, c.authURL+"/api/register", "", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Resources calls GET /resources with a bearer token
func (c *Client) Resources(ctx context.Context, token string) (*ResourceState, error) {
	url := c.gameURL + "/resources"
	var body wireResources
	if err := c.doJSON(ctx, http.MethodGet, url, bearer(token), nil, &body); err != nil {
		return nil, err
	}
	state, ok := body.state()
	if !ok {
		return nil, &TransportError{Op: http.MethodGet + " " + url, Err: ErrMissingResources}
	}
	return state, nil
}

// CollectResources calls POST /collect_resources with a bearer token
func (c *Client) CollectResources(ctx context.Context, token string) (*CollectResult, error) {
	url := c.gameURL + "/collect_resources"
	var body struct {
		Resources *wireResources `json:"resources"`
		Message   string         `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, url, bearer(token), nil, &body); err != nil {
		return nil, err
	}
	state, ok := body.Resources.state()
	if !ok {
		return nil, &TransportError{Op: http.MethodPost + " " + url, Err: ErrMissingResources}
	}
	return &CollectResult{Resources: state, Message: body.Message}, nil
}

// UpgradeBuilding calls POST /build/{building} with a bearer token
func (c *Client) UpgradeBuilding(ctx context.Context, token, building string) (*BuildResult, error) {
	if !ValidBuilding(building) {
		return nil, fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownBuilding, building, strings.Join(Buildings, ", "))
	}

	var result BuildResult
	if err := c.doJSON(ctx, http.MethodPost, c.gameURL+"/build/"+building, bearer(token), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ValidBuilding reports whether name is an upgradable building
func ValidBuilding(name string) bool {
	for _, b := range Buildings {
		if b == name {
			return true
		}
	}
	return false
}

// bearer is the Authorization value for game calls. It is sent even when
// token is empty and the game service answers 401.
func bearer(token string) string {
	return "Bearer " + token
}

// doJSON sends one request and decodes a 2xx JSON body into out.
// authorization is omitted when empty.
// Non-2xx responses become *APIError; everything else that fails is a *TransportError.
func (c *Client) doJSON(ctx context.Context, method, url, authorization string, in, out any) error {
	op := method + " " + url

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	// The game service expects a JSON content type on every POST, body or not
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, op, err)
	}
	defer resp.Body.Close()

	c.log().Debug("API request", "method", method, "url", url, "status", resp.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("invalid response from backend: %w", err)}
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return &TransportError{Op: op, Err: fmt.Errorf("request canceled: %w", context.Canceled)}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TransportError{Op: op, Err: fmt.Errorf("request timed out: %w", context.DeadlineExceeded)}
	}
	return &TransportError{Op: op, Err: fmt.Errorf("cannot connect to backend: %w", err)}
}

// handleErrorResponse parses API error responses. A body that is not JSON
// still yields an APIError, just without a message.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		apiErr.Message = errResp.Message
	}
	return apiErr
}
