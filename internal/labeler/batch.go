package labeler

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/douhashi/merge-labeler/internal/logger"
	"github.com/douhashi/merge-labeler/internal/mergeability"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// BatchReport collects the outcome of every pull request in a batch.
type BatchReport struct {
	mu       sync.Mutex
	Results  map[int]*Result
	Failures map[int]error
}

func newBatchReport() *BatchReport {
	return &BatchReport{
		Results:  make(map[int]*Result),
		Failures: make(map[int]error),
	}
}

func (r *BatchReport) record(number int, result *Result, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.Failures[number] = err
		return
	}
	r.Results[number] = result
}

// Attempted returns the number of pull requests that were processed.
func (r *BatchReport) Attempted() int {
	return len(r.Results) + len(r.Failures)
}

// Err aggregates every failure, ordered by pull request number. nil when
// all pull requests succeeded.
func (r *BatchReport) Err() error {
	numbers := make([]int, 0, len(r.Failures))
	for n := range r.Failures {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	var result *multierror.Error
	for _, n := range numbers {
		result = multierror.Append(result, r.Failures[n])
	}
	return result.ErrorOrNil()
}

// ProcessAll syncs every given pull request concurrently. A failure of one
// pull request is recorded and logged; it never stops the others.
func (l *Labeler) ProcessAll(ctx context.Context, owner, repo string, numbers []int) *BatchReport {
	report := newBatchReport()

	// errgroup.WithContextは使わない。1件の失敗で他をキャンセルしないため
	var g errgroup.Group
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}

	for _, number := range numbers {
		number := number
		g.Go(func() error {
			ref := mergeability.PullRequestRef{Owner: owner, Repo: repo, Number: number}
			log := l.logger.WithFields("pr_number", number)

			result, err := l.safeProcess(ctx, ref, log)
			if err != nil {
				log.Error("error checking PR labels", "error", err)
			}
			report.record(number, result, err)
			return nil
		})
	}
	_ = g.Wait()

	l.logger.Info("Batch complete",
		"owner", owner,
		"repo", repo,
		"attempted", report.Attempted(),
		"failed", len(report.Failures),
	)

	return report
}

// safeProcess はpanicも1件の失敗として扱う
func (l *Labeler) safeProcess(ctx context.Context, ref mergeability.PullRequestRef, log logger.Logger) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("panic while processing PR#%d: %v", ref.Number, r)
		}
	}()
	return l.process(ctx, ref, log)
}

// SyncOpenPullRequests lists the open pull requests of owner/repo and
// processes all of them.
func (l *Labeler) SyncOpenPullRequests(ctx context.Context, lister PullRequestLister, owner, repo string) (*BatchReport, error) {
	numbers, err := lister.ListOpenPullRequests(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list open pull requests of %s/%s: %w", owner, repo, err)
	}

	l.logger.Info("Checking labels of open pull requests",
		"owner", owner,
		"repo", repo,
		"count", len(numbers),
	)

	return l.ProcessAll(ctx, owner, repo, numbers), nil
}
