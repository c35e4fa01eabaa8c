package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/raphi011/ghv/internal/log"
)

const (
	// DefaultBaseURL is the public GitHub REST API.
	DefaultBaseURL = "https://api.github.com"

	// ReposPerPage is the size of the single repository page requested.
	ReposPerPage = 30

	acceptJSON = "application/vnd.github.v3+json"
	acceptRaw  = "application/vnd.github.v3.raw"

	// maxReadmeBytes caps how much of a README is read.
	maxReadmeBytes = 1 << 20
)

// RateLimit is the quota reported by the most recent response.
type RateLimit struct {
	Limit     int       `json:"limit" yaml:"limit"`
	Remaining int       `json:"remaining" yaml:"remaining"`
	Reset     time.Time `json:"reset" yaml:"reset"`
}

// Client issues read-only calls against the GitHub REST API.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	http      *http.Client

	mu        sync.Mutex
	rateLimit *RateLimit
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (GitHub Enterprise, tests).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithToken attaches a bearer token to calls to the API host. Empty means
// anonymous.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header (GitHub rejects requests without one).
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client for the public API with no token.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: "ghv",
		http:      &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasToken reports whether a credential is attached to calls.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// RateLimit returns the quota from the last response that carried one.
func (c *Client) RateLimit() (RateLimit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rateLimit == nil {
		return RateLimit{}, false
	}
	return *c.rateLimit, true
}

// FetchProfile looks up a user by login.
func (c *Client) FetchProfile(ctx context.Context, username string) (*Profile, error) {
	endpoint := c.baseURL + "/users/" + url.PathEscape(username)

	var raw apiProfile
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	return raw.normalize(), nil
}

// FetchRepositories fetches the first page of the list at reposURL, sorted
// by stars descending.
func (c *Client) FetchRepositories(ctx context.Context, reposURL string) ([]Repository, error) {
	u, err := url.Parse(reposURL)
	if err != nil {
		return nil, &TransportError{Op: "parse repos url", Err: err}
	}
	q := u.Query()
	q.Set("sort", "stars")
	q.Set("per_page", strconv.Itoa(ReposPerPage))
	u.RawQuery = q.Encode()

	var raw []apiRepository
	if err := c.getJSON(ctx, u.String(), &raw); err != nil {
		return nil, err
	}

	repos := make([]Repository, len(raw))
	for i, r := range raw {
		repos[i] = r.normalize()
	}
	return repos, nil
}

// FetchReadme returns the raw README of owner/repo. The second result is
// false when the README is missing or could not be fetched for any reason.
func (c *Client) FetchReadme(ctx context.Context, owner, repo string) (string, bool) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))

	resp, err := c.do(ctx, endpoint, acceptRaw)
	if err != nil {
		log.FromContext(ctx).Debug("readme unavailable", "repo", owner+"/"+repo, "error", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.FromContext(ctx).Debug("readme unavailable", "repo", owner+"/"+repo, "status", resp.StatusCode)
		return "", false
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReadmeBytes))
	if err != nil {
		log.FromContext(ctx).Debug("readme read failed", "repo", owner+"/"+repo, "error", err)
		return "", false
	}
	return string(data), true
}

// getJSON performs a GET and decodes a 2xx body into dest. Non-2xx statuses
// are classified; everything else becomes a TransportError.
func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	resp, err := c.do(ctx, endpoint, acceptJSON)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)
		return classify(resp.StatusCode, body.Message)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &TransportError{Op: "decode response", Err: err}
	}
	return nil
}

// do sends a single GET with the common headers. It never retries.
func (c *Client) do(ctx context.Context, endpoint, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" && c.trusted(req.URL) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	done := log.FromContext(ctx).Request(req.Method, endpoint)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		done(0, time.Since(start))
		return nil, &TransportError{Op: "GET " + endpoint, Err: err}
	}
	done(resp.StatusCode, time.Since(start))

	c.recordRateLimit(resp.Header)
	return resp, nil
}

// trusted reports whether u points at the configured API host. The token is
// only sent there, whatever URLs the API hands back.
func (c *Client) trusted(u *url.URL) bool {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, base.Scheme) && strings.EqualFold(u.Host, base.Host)
}

func (c *Client) recordRateLimit(h http.Header) {
	remaining, err := strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	if err != nil {
		return
	}
	rl := RateLimit{Remaining: remaining}
	if limit, err := strconv.Atoi(h.Get("X-RateLimit-Limit")); err == nil {
		rl.Limit = limit
	}
	if reset, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		rl.Reset = time.Unix(reset, 0)
	}

	c.mu.Lock()
	c.rateLimit = &rl
	c.mu.Unlock()
}
