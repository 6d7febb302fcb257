package labeler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/douhashi/merge-labeler/internal/mergeability"
	"github.com/douhashi/merge-labeler/internal/testutil/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// stubLister returns fixed pull request numbers.
type stubLister struct {
	numbers []int
	err     error
}

func (s *stubLister) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]int, error) {
	return s.numbers, s.err
}

func TestLabeler_ProcessAll(t *testing.T) {
	transportErr := &mergeability.TransportError{Number: 3, Err: helpers.ErrConnection}

	tests := []struct {
		name        string
		concurrency int
	}{
		{name: "並列数制限なし", concurrency: 0},
		{name: "並列数1", concurrency: 1},
		{name: "並列数2", concurrency: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, recorded := helpers.NewObservableLogger(zapcore.DebugLevel)
			resolver := &fakeResolver{
				prs: map[int]*mergeability.PullRequestData{
					1: prData(1, boolPtr(true), "behind"),
					2: prData(2, boolPtr(false), "dirty"),
					4: prData(4, boolPtr(true), "clean", "behind"),
					5: prData(5, boolPtr(true), "clean"),
				},
				errs: map[int]error{3: transportErr},
			}
			mutator := newRecordingMutator()

			l, err := New(resolver, mutator, log, WithConcurrency(tt.concurrency))
			require.NoError(t, err)

			report := l.ProcessAll(context.Background(), "douhashi", "merge-labeler", []int{1, 2, 3, 4, 5})

			assert.Equal(t, 5, report.Attempted())
			assert.Len(t, report.Results, 4)
			assert.Equal(t, []int{3}, sortedKeys(report.Failures))
			assert.True(t, errors.Is(report.Failures[3], mergeability.ErrTransport))

			// 失敗したPR以外は処理が完了している
			assert.Equal(t, []string{"behind"}, mutator.added[1])
			assert.Equal(t, []string{"conflict"}, mutator.added[2])
			assert.Equal(t, []string{"behind"}, mutator.removed[4])
			assert.Empty(t, mutator.added[5])
			assert.Empty(t, mutator.removed[5])

			errEntries := recorded.FilterMessage("error checking PR labels").All()
			require.Len(t, errEntries, 1)
			assert.Equal(t, int64(3), errEntries[0].ContextMap()["pr_number"])

			batch := helpers.FieldsOf(recorded, "Batch complete")
			assert.Equal(t, int64(5), batch["attempted"])
			assert.Equal(t, int64(1), batch["failed"])

			require.Error(t, report.Err())
			assert.Contains(t, report.Err().Error(), "PR#3")
		})
	}
}

func TestLabeler_ProcessAll_Panic(t *testing.T) {
	log, _ := helpers.NewObservableLogger(zapcore.InfoLevel)
	resolver := &fakeResolver{prs: map[int]*mergeability.PullRequestData{
		1: prData(1, boolPtr(true), "behind"),
		// 2はnilが返るのでpanicする
	}}
	mutator := newRecordingMutator()

	l, err := New(resolver, mutator, log)
	require.NoError(t, err)

	report := l.ProcessAll(context.Background(), "douhashi", "merge-labeler", []int{1, 2})

	assert.Len(t, report.Results, 1)
	require.Contains(t, report.Failures, 2)
	assert.Contains(t, report.Failures[2].Error(), "panic while processing PR#2")
}

func TestBatchReport_Err(t *testing.T) {
	t.Run("正常系: 失敗がなければnil", func(t *testing.T) {
		report := newBatchReport()
		report.record(1, &Result{Number: 1}, nil)
		assert.NoError(t, report.Err())
	})

	t.Run("異常系: 失敗をPR番号順にまとめる", func(t *testing.T) {
		report := newBatchReport()
		report.record(8, nil, fmt.Errorf("PR#8 failed"))
		report.record(2, nil, fmt.Errorf("PR#2 failed"))

		err := report.Err()
		require.Error(t, err)
		msg := err.Error()
		assert.Contains(t, msg, "2 errors occurred")
		assert.Less(t, strings.Index(msg, "PR#2"), strings.Index(msg, "PR#8"))
	})
}

func TestLabeler_SyncOpenPullRequests(t *testing.T) {
	t.Run("正常系: オープンなPRを全て処理する", func(t *testing.T) {
		log, _ := helpers.NewObservableLogger(zapcore.InfoLevel)
		resolver := &fakeResolver{prs: map[int]*mergeability.PullRequestData{
			11: prData(11, boolPtr(true), "behind"),
			12: prData(12, boolPtr(true), "clean"),
		}}
		mutator := newRecordingMutator()

		l, err := New(resolver, mutator, log)
		require.NoError(t, err)

		report, err := l.SyncOpenPullRequests(context.Background(), &stubLister{numbers: []int{11, 12}}, "douhashi", "merge-labeler")
		require.NoError(t, err)
		assert.Equal(t, 2, report.Attempted())
		assert.NoError(t, report.Err())
		assert.Equal(t, []string{"behind"}, mutator.added[11])
	})

	t.Run("異常系: 一覧取得に失敗", func(t *testing.T) {
		log, _ := helpers.NewObservableLogger(zapcore.InfoLevel)
		l, err := New(&fakeResolver{}, newRecordingMutator(), log)
		require.NoError(t, err)

		report, err := l.SyncOpenPullRequests(context.Background(), &stubLister{err: helpers.ErrConnection}, "douhashi", "merge-labeler")
		require.Error(t, err)
		assert.Nil(t, report)
		assert.True(t, errors.Is(err, helpers.ErrConnection))
	})

	t.Run("正常系: オープンなPRがない", func(t *testing.T) {
		log, _ := helpers.NewObservableLogger(zapcore.InfoLevel)
		l, err := New(&fakeResolver{}, newRecordingMutator(), log)
		require.NoError(t, err)

		report, err := l.SyncOpenPullRequests(context.Background(), &stubLister{}, "douhashi", "merge-labeler")
		require.NoError(t, err)
		assert.Equal(t, 0, report.Attempted())
		assert.NoError(t, report.Err())
	})
}
