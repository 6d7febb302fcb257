package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	defer func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	}()

	Version, Commit, Date = "v1.2.3", "abc1234", "2026-01-02"

	info := Get()
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, "merge-labeler v1.2.3 (commit abc1234, built 2026-01-02, "+runtime.Version()+")", info.String())
}
