package event

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePayload(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"GITHUB_EVENT_NAME": "push",
		"GITHUB_EVENT_PATH": "/tmp/event.json",
		"GITHUB_REPOSITORY": "douhashi/merge-labeler",
	}
	got := FromEnv(func(k string) string { return env[k] })

	assert.Equal(t, Env{Name: "push", Path: "/tmp/event.json", Repository: "douhashi/merge-labeler"}, got)
	assert.True(t, got.IsPush())
	assert.False(t, got.IsPullRequest())
}

func TestEnv_Validate(t *testing.T) {
	tests := []struct {
		name        string
		env         Env
		wantErr     string
		unsupported bool
	}{
		{name: "正常系: pull_request_target", env: Env{Name: PullRequestTarget, Path: "/e.json", Repository: "o/r"}},
		{name: "正常系: pull_request", env: Env{Name: PullRequest, Path: "/e.json", Repository: "o/r"}},
		{name: "正常系: push", env: Env{Name: Push, Path: "/e.json", Repository: "o/r"}},
		{name: "異常系: 未対応のイベント", env: Env{Name: "issues", Path: "/e.json", Repository: "o/r"}, wantErr: `unable to run on a "issues" event`, unsupported: true},
		{name: "異常系: イベント名なし", env: Env{}, wantErr: "unsupported event", unsupported: true},
		{name: "異常系: パスなし", env: Env{Name: Push, Repository: "o/r"}, wantErr: "GITHUB_EVENT_PATH"},
		{name: "異常系: リポジトリなし", env: Env{Name: Push, Path: "/e.json"}, wantErr: "GITHUB_REPOSITORY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.env.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, tt.unsupported, errors.Is(err, ErrUnsupportedEvent))
		})
	}
}

func TestSplitRepository(t *testing.T) {
	tests := []struct {
		slug      string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{slug: "douhashi/merge-labeler", wantOwner: "douhashi", wantRepo: "merge-labeler"},
		{slug: "douhashi", wantErr: true},
		{slug: "/merge-labeler", wantErr: true},
		{slug: "douhashi/", wantErr: true},
		{slug: "a/b/c", wantErr: true},
		{slug: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			owner, repo, err := SplitRepository(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantRepo, repo)
		})
	}
}

func TestReadPullRequestEvent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
		wantErr string
	}{
		{name: "正常系", payload: `{"action":"synchronize","number":42,"pull_request":{"number":42,"title":"Add feature"}}`, want: 42},
		{name: "異常系: pull_requestなし", payload: `{"action":"opened"}`, wantErr: "positive pull_request.number"},
		{name: "異常系: 番号が0", payload: `{"pull_request":{"number":0}}`, wantErr: "positive pull_request.number"},
		{name: "異常系: 不正なJSON", payload: `{`, wantErr: "failed to parse event payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ReadPullRequestEvent(writePayload(t, tt.payload))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev.GetPullRequest().GetNumber())
		})
	}

	t.Run("異常系: ファイルがない", func(t *testing.T) {
		_, err := ReadPullRequestEvent(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read event payload")
	})
}

func TestReadPushEvent(t *testing.T) {
	ev, err := ReadPushEvent(writePayload(t, `{"ref":"refs/heads/main","before":"a","after":"b"}`))
	require.NoError(t, err)
	assert.Equal(t, "refs/heads/main", ev.GetRef())

	_, err = ReadPushEvent(writePayload(t, `{"after":"b"}`))
	assert.EqualError(t, err, "event payload has no ref")
}
