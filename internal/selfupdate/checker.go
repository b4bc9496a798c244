// Package selfupdate checks GitHub releases for newer qlock builds and
// replaces the running binary in place.
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
	defaultOwner           = "jatin"
	defaultRepo            = "qlock"
	defaultAPIBaseURL      = "https://api.github.com"
	defaultDownloadBaseURL = "https://github.com"
)

// Checker queries the GitHub releases API for a repository.
type Checker struct {
	owner           string
	repo            string
	apiBaseURL      string
	downloadBaseURL string
	client          *http.Client
	execPath        func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURLs overrides the GitHub API and download hosts, for tests
// and mirrors.
func WithBaseURLs(api, download string) Option {
	return func(c *Checker) {
		c.apiBaseURL = api
		c.downloadBaseURL = download
	}
}

// WithExecPath overrides how the running binary's path is resolved.
func WithExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

// WithTimeout sets the HTTP client timeout, covering the archive
// download as well as API calls.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// NewChecker returns a Checker for the qlock release repository.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		owner:           defaultOwner,
		repo:            defaultRepo,
		apiBaseURL:      defaultAPIBaseURL,
		downloadBaseURL: defaultDownloadBaseURL,
		client:          &http.Client{Timeout: 30 * time.Second},
		execPath:        os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type CheckInput struct {
	Version string // current version, with or without leading v
}

type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string // release tag, e.g. v1.4.0
	UpdateAvailable bool
	ReleaseURL      string
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check fetches the latest release tag and compares it with the
// running version. Versions that don't parse as semver report an
// update available so the user still sees the real latest tag.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest",
		strings.TrimRight(c.apiBaseURL, "/"), c.owner, c.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from releases API", resp.StatusCode)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if release.TagName == "" {
		return nil, fmt.Errorf("release has no tag name")
	}

	current := ensureV(input.Version)
	latest := ensureV(release.TagName)

	result := &CheckResult{
		CurrentVersion: input.Version,
		LatestVersion:  release.TagName,
		ReleaseURL:     release.HTMLURL,
	}
	if !semver.IsValid(current) {
		result.UpdateAvailable = true
		return result, nil
	}
	result.UpdateAvailable = semver.Compare(latest, current) > 0
	return result, nil
}

func ensureV(version string) string {
	if version == "" {
		return version
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}
