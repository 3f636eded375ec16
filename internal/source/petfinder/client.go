// Package petfinder implements the Petfinder v2 API source: OAuth2
// client-credentials token lifecycle, authenticated GETs with a single
// retry on 401, server-driven pagination, and mapping of raw records
// into domain rows.
package petfinder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	SourceName = "petfinder"

	// A cached token is reused only while more than tokenMargin of its
	// lifetime remains.
	tokenMargin      = 60 * time.Second
	defaultExpiresIn = 3600

	DefaultPageSize = 100
)

// ErrMissingCredentials is returned by New when the client id or secret is
// empty. Credentials are required and immutable for the process lifetime.
var ErrMissingCredentials = errors.New("missing petfinder client credentials")

// Config holds Petfinder source configuration.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	PageSize     int
	Filters      Filters
}

// Filters are the /animals query parameters for one run.
type Filters struct {
	Type     string
	Age      string
	Gender   string
	Location string
	Distance int
	Status   string
}

// Values renders the filters as query parameters, omitting empty fields.
func (f Filters) Values() url.Values {
	v := url.Values{}
	if f.Type != "" {
		v.Set("type", f.Type)
	}
	if f.Age != "" {
		v.Set("age", f.Age)
	}
	if f.Gender != "" {
		v.Set("gender", f.Gender)
	}
	if f.Location != "" {
		v.Set("location", f.Location)
	}
	if f.Distance > 0 {
		v.Set("distance", strconv.Itoa(f.Distance))
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	return v
}

// Client talks to the Petfinder v2 API. It owns the bearer token: the token
// is replaced wholesale on refresh and never mutated in place. Calls are
// expected to be serialized; the token cache is not guarded by a lock.
type Client struct {
	httpClient *http.Client
	baseURL    string

	clientID     string
	clientSecret string

	pageSize int
	filters  Filters
	logger   *slog.Logger

	now      func() time.Time
	token    string
	tokenExp time.Time
}

// New creates a Petfinder client. Missing or empty credentials are a fatal
// configuration error at construction time.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		pageSize:     pageSize,
		filters:      cfg.Filters,
		logger:       logger.With("source", SourceName),
		now:          time.Now,
	}, nil
}

// Name returns the source identifier.
func (c *Client) Name() string {
	return SourceName
}

// ensureToken exchanges credentials for a fresh bearer token unless the
// cached one still has more than tokenMargin of lifetime left. A non-2xx
// status on the exchange is fatal; there is no retry here.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.token != "" && c.now().Before(c.tokenExp.Add(-tokenMargin)) {
		return nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token exchange: unexpected status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}

	expiresIn := tok.ExpiresIn
	if expiresIn == 0 {
		expiresIn = defaultExpiresIn
	}

	c.token = tok.AccessToken
	c.tokenExp = c.now().Add(time.Duration(expiresIn) * time.Second)

	c.logger.Debug("obtained access token", "expires_in", expiresIn)
	return nil
}

// get issues an authenticated GET and decodes the JSON body into out. On a
// 401 the cached token is invalidated and the request retried exactly once
// with a fresh token; any other non-2xx status, or a second failure of any
// kind, is surfaced as an error.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.doGet(ctx, path, query)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.token = ""
		c.logger.Debug("got 401, refreshing token and retrying", "path", path)

		resp, err = c.doGet(ctx, path, query)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// GetTypes returns the /types response as-is. Sanity endpoint.
func (c *Client) GetTypes(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, "/types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
