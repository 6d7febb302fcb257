// Package mergeability waits for GitHub to finish computing whether a pull
// request can be merged.
//
// GitHub computes mergeability in the background. The first GET after a push
// to the base or head branch starts that job and usually returns
// "mergeable": null. Resolver triggers the job, waits, then polls with a
// fixed delay until the field is set or the retry budget is spent.
package mergeability

import (
	"context"
	"errors"
	"fmt"

	"github.com/douhashi/merge-labeler/internal/logger"
)

// Fetcher reads a single pull request from the remote platform.
type Fetcher interface {
	FetchPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequestData, error)
}

// Resolver triggers and polls GitHub's mergeability computation.
type Resolver struct {
	fetcher Fetcher
	policy  BackoffPolicy
	clock   Clock
	logger  logger.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPolicy overrides the default backoff policy.
func WithPolicy(p BackoffPolicy) Option {
	return func(r *Resolver) {
		r.policy = p
	}
}

// WithClock overrides the clock used for waiting.
func WithClock(c Clock) Option {
	return func(r *Resolver) {
		r.clock = c
	}
}

// NewResolver creates a Resolver. fetcher and log are required.
func NewResolver(fetcher Fetcher, log logger.Logger, opts ...Option) (*Resolver, error) {
	if fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}

	r := &Resolver{
		fetcher: fetcher,
		policy:  DefaultBackoffPolicy(),
		clock:   RealClock{},
		logger:  log.WithFields("component", "mergeability"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.policy.MaxRetries < 0 {
		return nil, fmt.Errorf("max retries must not be negative: %d", r.policy.MaxRetries)
	}

	return r, nil
}

// Policy returns the backoff policy in use.
func (r *Resolver) Policy() BackoffPolicy {
	return r.policy
}

// Resolve returns the pull request once GitHub reports a non-null "mergeable".
func (r *Resolver) Resolve(ctx context.Context, ref PullRequestRef) (*PullRequestData, error) {
	res := r.ResolveWithTrace(ctx, ref)
	return res.PullRequest, res.Err
}

// ResolveWithTrace is Resolve, but also reports the final state and how many
// polls it took.
func (r *Resolver) ResolveWithTrace(ctx context.Context, ref PullRequestRef) *Resolution {
	log := r.logger.WithFields("pr_number", ref.Number)
	res := &Resolution{State: StateUnknown}

	fail := func(err error) *Resolution {
		res.State = StateFailed
		res.Err = err
		return res
	}

	// 最初のGETでGitHub側のmergeability計算を開始させる。結果は使わない
	log.Debug("Triggering mergeability computation", "repository", ref.Owner+"/"+ref.Repo)
	if _, err := r.fetcher.FetchPullRequest(ctx, ref.Owner, ref.Repo, ref.Number); err != nil {
		log.Error("Failed to trigger mergeability computation", "error", err)
		return fail(&TransportError{Number: ref.Number, Err: err})
	}

	log.Debug("Waiting for mergeability computation to settle", "delay", r.policy.SettleDelay)
	if err := r.clock.Sleep(ctx, r.policy.SettleDelay); err != nil {
		return fail(fmt.Errorf("PR#%d - interrupted while waiting: %w", ref.Number, err))
	}

	retries := 0
	for {
		res.Attempts++
		pr, err := r.fetcher.FetchPullRequest(ctx, ref.Owner, ref.Repo, ref.Number)
		if err != nil {
			log.Error("Failed to poll pull request", "attempt", res.Attempts, "error", err)
			return fail(&TransportError{Number: ref.Number, Err: err})
		}

		if pr.IsMergeabilityKnown() {
			log.Debug("Mergeability resolved",
				"attempt", res.Attempts,
				"mergeable", *pr.Mergeable,
				"mergeable_state", pr.MergeableState,
			)
			res.State = StateResolved
			res.PullRequest = pr
			return res
		}

		res.State = StateResolving
		if !r.policy.ShouldRetry(retries) {
			err := &RetryExhaustedError{Number: ref.Number, Attempts: res.Attempts}
			log.Warn("Giving up on mergeability", "retries", retries, "attempts", res.Attempts)
			return fail(err)
		}

		retries++
		delay := r.policy.Delay(retries)
		log.Debug("Mergeability is not ready, retrying",
			"retry", retries,
			"max_retries", r.policy.MaxRetries,
			"delay", delay,
		)
		if err := r.clock.Sleep(ctx, delay); err != nil {
			return fail(fmt.Errorf("PR#%d - interrupted while waiting: %w", ref.Number, err))
		}
	}
}
