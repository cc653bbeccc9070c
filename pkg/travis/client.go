// Package travis is a small client for the Travis CI v3 API, covering just
// what trytravis needs: finding the scratch repository, locating the build
// for a submitted commit, and polling that build's jobs.
package travis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.travis-ci.org"

	defaultPollInterval = 3 * time.Second
	defaultWaitTimeout  = 60 * time.Second
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string

	// Token authenticates against the API ("Authorization: token ...").
	Token string

	// PollInterval and WaitTimeout control WaitForBuild; zero values mean
	// the Travis-friendly defaults (3s / 60s).
	PollInterval time.Duration
	WaitTimeout  time.Duration
}

func (c *Client) fillDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.UserAgent == "" {
		c.UserAgent = "trytravis (https://github.com/sethmlarson/trytravis)"
	}
	if c.PollInterval == 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.WaitTimeout == 0 {
		c.WaitTimeout = defaultWaitTimeout
	}
}

type HTTPError struct {
	Status     string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %s", e.Status)
}

func (c Client) get(ctx context.Context, path string, out interface{}) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("GET %q => %w", path, err)
		}
	}()
	c.fillDefaults()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Travis-API-Version", "3")
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Authorization", "token "+c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		_ = resp.Body.Close()
		return err
	}
	if err := resp.Body.Close(); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &HTTPError{Status: resp.Status, StatusCode: resp.StatusCode}
	}
	return json.Unmarshal(content, out)
}

type Repository struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Commit struct {
	ID          int64  `json:"id"`
	SHA         string `json:"sha"`
	CommittedAt string `json:"committed_at"`
}

// CommittedAtTime parses the API's UTC timestamp.
func (c Commit) CommittedAtTime() (time.Time, error) {
	return time.Parse("2006-01-02T15:04:05Z", c.CommittedAt)
}

type Build struct {
	ID     int64  `json:"id"`
	Commit Commit `json:"commit"`
}

type Job struct {
	State  string    `json:"state"`
	Config JobConfig `json:"config"`
}

type JobConfig struct {
	OS       string `json:"os"`
	Language string `json:"language"`
	Env      string `json:"env"`

	// Sudo may be a bool, a string ("required"), or absent; absent and
	// any non-empty string both mean a sudo-enabled worker.
	Sudo interface{} `json:"sudo"`
}

// SudoEnabled reports whether the job runs on a sudo-enabled (VM) worker as
// opposed to a container one.
func (c JobConfig) SudoEnabled() bool {
	switch v := c.Sudo.(type) {
	case nil:
		return true
	case bool:
		return v
	case string:
		return v != ""
	default:
		return true
	}
}

// FindRepoID locates the user's scratch repository by the `trytravis` name
// marker.
func (c Client) FindRepoID(ctx context.Context) (int64, error) {
	var list struct {
		Repositories []Repository `json:"repositories"`
	}
	if err := c.get(ctx, "/repos", &list); err != nil {
		return 0, err
	}
	for _, repo := range list.Repositories {
		if strings.Contains(repo.Name, "trytravis") {
			return repo.ID, nil
		}
	}
	return 0, fmt.Errorf("no repository with `trytravis` in its name is visible to this token")
}

// Builds lists a repository's recent builds.
func (c Client) Builds(ctx context.Context, repoID int64) ([]Build, error) {
	var list struct {
		Builds []Build `json:"builds"`
	}
	if err := c.get(ctx, fmt.Sprintf("/repo/%d/builds", repoID), &list); err != nil {
		return nil, err
	}
	return list.Builds, nil
}

// Jobs lists a build's jobs with their state and config included.
func (c Client) Jobs(ctx context.Context, buildID int64) ([]Job, error) {
	var list struct {
		Jobs []Job `json:"jobs"`
	}
	path := fmt.Sprintf("/build/%d/jobs?include=job.config,job.state", buildID)
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}
	return list.Jobs, nil
}

// WaitForBuild polls until a build shows up whose commit sha matches the
// submission and whose commit isn't older than it, and returns that build's
// id.  It gives up after WaitTimeout.
func (c Client) WaitForBuild(ctx context.Context, commit string, committedAt time.Time) (int64, error) {
	c.fillDefaults()

	deadline := time.Now().Add(c.WaitTimeout)
	for {
		repoID, err := c.FindRepoID(ctx)
		if err != nil {
			return 0, err
		}
		builds, err := c.Builds(ctx, repoID)
		if err != nil {
			return 0, err
		}
		for _, build := range builds {
			buildCommittedAt, err := build.Commit.CommittedAtTime()
			if err != nil || buildCommittedAt.Before(committedAt.Truncate(time.Second)) {
				continue
			}
			if build.Commit.SHA == commit {
				return build.ID, nil
			}
		}

		if !time.Now().Add(c.PollInterval).Before(deadline) {
			return 0, fmt.Errorf("timed out waiting for a Travis build to start for commit %s; "+
				"is Travis enabled for the repository?", commit)
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(c.PollInterval):
		}
	}
}

// BuildURL returns the human-facing URL of a build.
func BuildURL(slug string, buildID int64) string {
	return fmt.Sprintf("https://travis-ci.org/%s/builds/%d", slug, buildID)
}
