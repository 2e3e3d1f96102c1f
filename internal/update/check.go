// Package update looks up published releases on GitHub.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/version"
)

var apiBaseURL = "https://api.github.com"
var archiveBaseURL = "https://github.com"
var httpClient = &http.Client{Timeout: 10 * time.Second}
var retryDelay = 250 * time.Millisecond
var updateSleep = time.Sleep

const fetchRetryCount = 1

// RateLimitError indicates GitHub's API rate limit was hit.
type RateLimitError struct {
	StatusCode int
	Status     string
	Remaining  *int
}

func (e *RateLimitError) Error() string {
	remainingText := "unknown"
	if e.Remaining != nil {
		remainingText = fmt.Sprintf("%d", *e.Remaining)
	}
	return fmt.Sprintf(messages.UpdateRateLimitedFmt, e.Status, remainingText)
}

// IsRateLimitError reports whether err represents a GitHub API rate-limit condition.
func IsRateLimitError(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// Release is one published release of the package.
type Release struct {
	Tag        string
	Version    string
	Prerelease bool
	// ArchiveURL is a pip-installable zip of the tagged source.
	ArchiveURL string
}

// Requirement returns a PEP 508 direct reference to the release archive,
// e.g. "cs_tools[cli] @ https://github.com/owner/repo/archive/v1.5.0.zip".
func (r Release) Requirement(pkg string) string {
	return fmt.Sprintf("%s @ %s", pkg, r.ArchiveURL)
}

// CheckResult compares an installed version with the latest release.
type CheckResult struct {
	Installed string
	Latest    string
	Outdated  bool
}

// LatestRelease returns the newest published release of repo ("owner/name").
// Prereleases are skipped unless allowPrerelease is set. Drafts and tags that
// are not versions are always skipped.
func LatestRelease(ctx context.Context, repo string, allowPrerelease bool) (Release, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	releases, err := fetchReleases(ctx, repo)
	if err != nil {
		return Release{}, err
	}
	var invalid error
	for _, rel := range releases {
		if rel.Draft {
			continue
		}
		tag := strings.TrimSpace(rel.TagName)
		if tag == "" {
			continue
		}
		pre := rel.Prerelease || version.IsPrerelease(tag)
		if pre && !allowPrerelease {
			continue
		}
		normalized, err := version.Normalize(tag)
		if err != nil {
			if invalid == nil {
				invalid = fmt.Errorf(messages.UpdateInvalidReleaseTagFmt, tag, err)
			}
			continue
		}
		return Release{
			Tag:        tag,
			Version:    normalized,
			Prerelease: pre,
			ArchiveURL: fmt.Sprintf("%s/%s/archive/%s.zip", archiveBaseURL, repo, tag),
		}, nil
	}
	if invalid != nil {
		return Release{}, invalid
	}
	return Release{}, fmt.Errorf(messages.UpdateNoReleaseFoundFmt, repo)
}

// Check compares the installed version against the latest stable release.
func Check(ctx context.Context, repo string, installed string) (CheckResult, error) {
	current, err := version.Normalize(installed)
	if err != nil {
		return CheckResult{}, fmt.Errorf(messages.UpdateInvalidInstalledVersionFmt, installed, err)
	}
	latest, err := LatestRelease(ctx, repo, false)
	if err != nil {
		return CheckResult{}, err
	}
	cmp, err := version.Compare(current, latest.Version)
	if err != nil {
		return CheckResult{}, err
	}
	return CheckResult{Installed: current, Latest: latest.Version, Outdated: cmp < 0}, nil
}

type releaseResponse struct {
	TagName    string `json:"tag_name"`
	Prerelease bool   `json:"prerelease"`
	Draft      bool   `json:"draft"`
}

// fetchReleases returns the repository's releases, newest first.
func fetchReleases(ctx context.Context, repo string) ([]releaseResponse, error) {
	url := fmt.Sprintf("%s/repos/%s/releases", apiBaseURL, repo)
	for attempt := 0; attempt <= fetchRetryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf(messages.UpdateCreateRequestErrFmt, err)
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("User-Agent", "cs_tools-bootstrap")

		resp, err := httpClient.Do(req)
		if err != nil {
			if shouldRetry(err, 0, attempt) {
				updateSleep(retryDelay)
				continue
			}
			return nil, fmt.Errorf(messages.UpdateFetchReleasesErrFmt, err)
		}

		if resp.StatusCode != http.StatusOK {
			if rateLimitErr := rateLimitErrorFromResponse(resp); rateLimitErr != nil {
				_ = resp.Body.Close()
				return nil, rateLimitErr
			}
			status := resp.StatusCode
			statusText := resp.Status
			_ = resp.Body.Close()
			if shouldRetry(nil, status, attempt) {
				updateSleep(retryDelay)
				continue
			}
			return nil, fmt.Errorf(messages.UpdateFetchReleasesStatusFmt, statusText)
		}

		var payload []releaseResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			_ = resp.Body.Close()
			return nil, fmt.Errorf(messages.UpdateDecodeReleasesErrFmt, err)
		}
		_ = resp.Body.Close()
		return payload, nil
	}

	return nil, fmt.Errorf(messages.UpdateFetchReleasesErrFmt, errors.New(messages.UpdateRetryBudgetExhausted))
}

func rateLimitErrorFromResponse(resp *http.Response) *RateLimitError {
	if resp == nil {
		return nil
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	// Unauthenticated exhaustion comes back as 403; the header confirms it.
	if resp.StatusCode == http.StatusForbidden {
		remainingStr := strings.TrimSpace(resp.Header.Get("X-RateLimit-Remaining"))
		if remainingStr == "" {
			return nil
		}
		remaining, err := strconv.Atoi(remainingStr)
		if err != nil {
			return nil //nolint:nilerr // unparseable header cannot confirm rate limiting
		}
		if remaining == 0 {
			return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status, Remaining: &remaining}
		}
	}
	return nil
}

func shouldRetry(err error, statusCode int, attempt int) bool {
	if attempt >= fetchRetryCount {
		return false
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		var netErr net.Error
		return errors.As(err, &netErr)
	}
	return statusCode >= 500 && statusCode <= 599
}
