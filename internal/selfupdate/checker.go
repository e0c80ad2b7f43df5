package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultAPIBaseURL      = "https://api.github.com"
	defaultDownloadBaseURL = "https://github.com"
	defaultOwner           = "quizprog"
	defaultRepo            = "quizprog"
)

// Checker talks to GitHub releases to find and apply newer versions.
type Checker struct {
	client          *http.Client
	apiBaseURL      string
	downloadBaseURL string
	owner           string
	repo            string
	execPath        func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		c.client.Timeout = d
	}
}

// WithBaseURLs overrides the GitHub endpoints. Used by tests.
func WithBaseURLs(api, download string) Option {
	return func(c *Checker) {
		c.apiBaseURL = api
		c.downloadBaseURL = download
	}
}

// WithExecPath overrides executable path resolution. Used by tests.
func WithExecPath(fn func() (string, error)) Option {
	return func(c *Checker) {
		c.execPath = fn
	}
}

// NewChecker creates a Checker for the quizprog release repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:          &http.Client{Timeout: 30 * time.Second},
		apiBaseURL:      defaultAPIBaseURL,
		downloadBaseURL: defaultDownloadBaseURL,
		owner:           defaultOwner,
		repo:            defaultRepo,
		execPath:        os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckInput carries the running version.
type CheckInput struct {
	Version string
}

// CheckResult reports whether a newer release exists.
type CheckResult struct {
	UpdateAvailable bool
	LatestVersion   string
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// Check queries the latest release and compares it against the running
// version using semver ordering.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(c.apiBaseURL, "/"), c.owner, c.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if release.TagName == "" {
		return nil, fmt.Errorf("latest release has no tag name")
	}

	return &CheckResult{
		UpdateAvailable: semver.Compare(canonicalVersion(release.TagName), canonicalVersion(input.Version)) > 0,
		LatestVersion:   release.TagName,
	}, nil
}

// canonicalVersion normalizes a release tag for semver comparison.
func canonicalVersion(v string) string {
	if v == "" {
		return "v0.0.0"
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "v0.0.0"
	}
	return v
}
