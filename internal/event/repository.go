package event

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// RepositoryError は作業ディレクトリからリポジトリを特定できなかった理由を保持する
type RepositoryError struct {
	Step  string
	Cause error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("failed to detect repository (%s): %v", e.Step, e.Cause)
}

func (e *RepositoryError) Unwrap() error {
	return e.Cause
}

var (
	// https://github.com/owner/repo(.git) やGHEのホスト
	httpsRemotePattern = regexp.MustCompile(`^https?://[^/]+/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	// git@github.com:owner/repo(.git) または ssh://git@github.com/owner/repo(.git)
	sshRemotePattern = regexp.MustCompile(`^(?:ssh://)?[^@/]+@[^:/]+[:/]([^/]+)/([^/]+?)(?:\.git)?$`)
)

// ParseRemoteURL extracts owner and repo from a git remote URL.
func ParseRemoteURL(remote string) (owner, repo string, err error) {
	remote = strings.TrimSpace(remote)
	for _, p := range []*regexp.Regexp{httpsRemotePattern, sshRemotePattern} {
		if m := p.FindStringSubmatch(remote); len(m) == 3 {
			return m[1], m[2], nil
		}
	}
	return "", "", fmt.Errorf("invalid remote URL format: %s", remote)
}

// RepositoryFromGit reads the origin remote of the git repository at dir.
func RepositoryFromGit(ctx context.Context, dir string) (owner, repo string, err error) {
	cmd := exec.CommandContext(ctx, "git", "remote", "get-url", "origin")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", "", &RepositoryError{Step: "remote_url", Cause: err}
	}

	owner, repo, err = ParseRemoteURL(string(out))
	if err != nil {
		return "", "", &RepositoryError{Step: "url_parsing", Cause: err}
	}
	return owner, repo, nil
}
