// Package event reads the GitHub Actions environment and event payloads.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v50/github"
)

// GitHub Actionsのイベント名
const (
	PullRequestTarget = "pull_request_target"
	PullRequest       = "pull_request"
	Push              = "push"
)

// ErrUnsupportedEvent is returned for events other than pull request and push events.
var ErrUnsupportedEvent = errors.New("unsupported event")

// Env is the subset of the GitHub Actions environment this tool reads.
type Env struct {
	Name       string
	Path       string
	Repository string
}

// FromEnv reads GITHUB_EVENT_NAME, GITHUB_EVENT_PATH and GITHUB_REPOSITORY.
// Pass os.Getenv in production.
func FromEnv(getenv func(string) string) Env {
	return Env{
		Name:       getenv("GITHUB_EVENT_NAME"),
		Path:       getenv("GITHUB_EVENT_PATH"),
		Repository: getenv("GITHUB_REPOSITORY"),
	}
}

// IsPullRequest reports whether the event carries a single pull request.
func (e Env) IsPullRequest() bool {
	return e.Name == PullRequestTarget || e.Name == PullRequest
}

// IsPush reports whether the event is a push.
func (e Env) IsPush() bool {
	return e.Name == Push
}

// Validate checks that the event is supported and the payload path and
// repository are present.
func (e Env) Validate() error {
	if !e.IsPullRequest() && !e.IsPush() {
		return fmt.Errorf("unable to run on a %q event: %w", e.Name, ErrUnsupportedEvent)
	}
	if e.Path == "" {
		return errors.New("expected non-empty GITHUB_EVENT_PATH")
	}
	if e.Repository == "" {
		return errors.New("expected non-empty GITHUB_REPOSITORY")
	}
	return nil
}

// SplitRepository splits an "owner/repo" slug.
func SplitRepository(slug string) (owner, repo string, err error) {
	parts := strings.Split(slug, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/repo", slug)
	}
	return parts[0], parts[1], nil
}

// ReadPullRequestEvent decodes a pull_request / pull_request_target payload.
func ReadPullRequestEvent(path string) (*github.PullRequestEvent, error) {
	var ev github.PullRequestEvent
	if err := readPayload(path, &ev); err != nil {
		return nil, err
	}
	if ev.GetPullRequest().GetNumber() <= 0 {
		return nil, errors.New("event payload has no positive pull_request.number")
	}
	return &ev, nil
}

// ReadPushEvent decodes a push payload.
func ReadPushEvent(path string) (*github.PushEvent, error) {
	var ev github.PushEvent
	if err := readPayload(path, &ev); err != nil {
		return nil, err
	}
	if ev.GetRef() == "" {
		return nil, errors.New("event payload has no ref")
	}
	return &ev, nil
}

func readPayload(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read event payload: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse event payload %s: %w", path, err)
	}
	return nil
}
