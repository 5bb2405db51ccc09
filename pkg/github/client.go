package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
)

const (
	acceptHeader  = "application/vnd.github+json"
	apiVersion    = "2022-11-28"
	userAgent     = "integration-assist-github/1.0"
	maxPerPage    = 100
	defaultSearch = 10
	defaultList   = 30
)

// Client issues authenticated requests against the GitHub REST API. It keeps
// no state beyond the underlying HTTP client; retries, backoff, and caching
// are deliberately absent.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	authenticated bool
	log           zerolog.Logger
}

// NewClient builds a client from the configuration. With a token present the
// transport injects the bearer credential on every request.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Token != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), source)
		httpClient.Timeout = cfg.Timeout
	} else {
		log.Warn().Msg("GITHUB_TOKEN not set; write operations will be rejected and rate limits are lower")
	}

	return &Client{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:    httpClient,
		authenticated: cfg.Token != "",
		log:           log,
	}
}

// Authenticated reports whether a token was configured.
func (c *Client) Authenticated() bool {
	return c.authenticated
}

// SearchRepositories forwards a query to /search/repositories and returns at
// most limit repository summaries.
func (c *Client) SearchRepositories(ctx context.Context, query, sort, order string, limit int) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New(errors.CodeMissingParameter, "github", "search query is required", nil)
	}
	if limit <= 0 {
		limit = defaultSearch
	}
	if limit > maxPerPage {
		limit = maxPerPage
	}
	if sort == "" {
		sort = "stars"
	}
	if order == "" {
		order = "desc"
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", sort)
	params.Set("order", order)
	params.Set("per_page", strconv.Itoa(limit))

	var result SearchResult
	if err := c.do(ctx, http.MethodGet, "/search/repositories", params, nil, &result); err != nil {
		return nil, err
	}
	if len(result.Items) > limit {
		result.Items = result.Items[:limit]
	}
	return &result, nil
}

// ListUserRepositories lists the authenticated user's repositories.
func (c *Client) ListUserRepositories(ctx context.Context, filter, sort string, perPage int) ([]Repository, error) {
	if filter == "" {
		filter = "all"
	}
	if sort == "" {
		sort = "updated"
	}
	if perPage <= 0 {
		perPage = defaultList
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	params := url.Values{}
	params.Set("type", filter)
	params.Set("sort", sort)
	params.Set("per_page", strconv.Itoa(perPage))

	var repos []Repository
	if err := c.do(ctx, http.MethodGet, "/user/repos", params, nil, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// GetRepository fetches a single repository's metadata.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	if err := validateRepoPath(owner, repo); err != nil {
		return nil, err
	}
	var repository Repository
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s", owner, repo), nil, nil, &repository); err != nil {
		return nil, err
	}
	return &repository, nil
}

// GetUser fetches the authenticated user's profile.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetRepositoryFiles lists the entries at a path inside a repository. The
// contents endpoint answers with an array for directories and a single object
// for files; both shapes come back as a slice of entries.
func (c *Client) GetRepositoryFiles(ctx context.Context, owner, repo, path string) ([]ContentEntry, error) {
	if err := validateRepoPath(owner, repo); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, contentsPath(owner, repo, path), nil, nil, &raw); err != nil {
		return nil, err
	}

	if len(raw) > 0 && raw[0] == '[' {
		var entries []ContentEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, errors.New(errors.CodeUpstreamError, "github", "malformed contents listing", err)
		}
		return entries, nil
	}

	var entry ContentEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, errors.New(errors.CodeUpstreamError, "github", "malformed contents entry", err)
	}
	return []ContentEntry{entry}, nil
}

// GetFileContents fetches one file and decodes it to UTF-8 text. Content that
// does not decode as valid UTF-8 is reported as binary instead of being
// returned raw.
func (c *Client) GetFileContents(ctx context.Context, owner, repo, path, ref string) (*FileContents, error) {
	if err := validateRepoPath(owner, repo); err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New(errors.CodeMissingParameter, "github", "file path is required", nil)
	}

	var params url.Values
	if ref != "" {
		params = url.Values{}
		params.Set("ref", ref)
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, contentsPath(owner, repo, path), params, nil, &raw); err != nil {
		return nil, err
	}
	if len(raw) > 0 && raw[0] == '[' {
		return nil, errors.New(errors.CodeInvalidParameter, "github",
			fmt.Sprintf("%q is a directory, not a file", path), nil)
	}

	var entry ContentEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, errors.New(errors.CodeUpstreamError, "github", "malformed contents entry", err)
	}

	contents := &FileContents{Path: entry.Path, Ref: ref, Size: entry.Size}
	if entry.Encoding != "base64" {
		contents.Text = entry.Content
		return contents, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(entry.Content, "\n", ""))
	if err != nil {
		return nil, errors.New(errors.CodeUpstreamError, "github", "content decode failed", err)
	}
	if !utf8.Valid(decoded) {
		contents.Binary = true
		return contents, nil
	}
	contents.Text = string(decoded)
	return contents, nil
}

// CreateIssue opens an issue. This is the adapter's only write operation and
// requires a configured token.
func (c *Client) CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (*Issue, error) {
	if err := validateRepoPath(owner, repo); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, errors.New(errors.CodeMissingParameter, "github", "issue title is required", nil)
	}
	if !c.authenticated {
		return nil, errors.New(errors.CodeAuthenticationFailed, "github", "GITHUB_TOKEN is required to create issues", nil)
	}

	var issue Issue
	payload := issueRequest{Title: title, Body: body, Labels: labels}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/issues", owner, repo), nil, payload, &issue); err != nil {
		return nil, err
	}

	c.log.Info().Str("repo", owner+"/"+repo).Int("number", issue.Number).Msg("Issue created")
	return &issue, nil
}

// do executes one request and maps the response onto the structured error
// kinds. 401 is always an authentication failure, 403 with exhausted
// rate-limit headers is a throttle, 404 is not-found, and every other
// non-2xx status is an upstream error carrying status and message.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.New(errors.CodeInternalError, "github", "encoding request body failed", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.New(errors.CodeInternalError, "github", "building request failed", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return errors.New(errors.CodeTimeoutError, "github", "request timed out", err)
		}
		return errors.New(errors.CodeConnectivityError, "github", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.New(errors.CodeUpstreamError, "github", "decoding response failed", err)
		}
		return nil
	}

	message := upstreamMessage(resp.Body)
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return errors.New(errors.CodeAuthenticationFailed, "github", "authentication failed (invalid or expired token)", nil)
	case resp.StatusCode == http.StatusForbidden && rateLimited(resp):
		return errors.New(errors.CodeRateLimited, "github",
			fmt.Sprintf("rate limited: %s (%s)", message, retryHint(resp)), nil)
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.CodeNotFound, "github", fmt.Sprintf("not found: %s %s", method, path), nil)
	default:
		return errors.New(errors.CodeUpstreamError, "github",
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, message), nil)
	}
}

func rateLimited(resp *http.Response) bool {
	return resp.Header.Get("X-RateLimit-Remaining") == "0" || resp.Header.Get("Retry-After") != ""
}

// retryHint extracts retry-after information from throttle responses.
func retryHint(resp *http.Response) string {
	if after := resp.Header.Get("Retry-After"); after != "" {
		return "retry after " + after + "s"
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		return "limit resets at epoch " + reset
	}
	return "retry later"
}

func upstreamMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return "no response body"
	}
	var payload apiError
	if err := json.Unmarshal(data, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(data))
}

func validateRepoPath(owner, repo string) error {
	if strings.TrimSpace(owner) == "" || strings.TrimSpace(repo) == "" {
		return errors.New(errors.CodeMissingParameter, "github", "owner and repo are required", nil)
	}
	if strings.ContainsAny(owner, "/?#") || strings.ContainsAny(repo, "/?#") {
		return errors.New(errors.CodeInvalidParameter, "github", "owner and repo must be path segments", nil)
	}
	return nil
}

func contentsPath(owner, repo, path string) string {
	base := fmt.Sprintf("/repos/%s/%s/contents", owner, repo)
	path = strings.TrimPrefix(strings.TrimSpace(path), "/")
	if path == "" {
		return base
	}
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return base + "/" + strings.Join(segments, "/")
}
