// Package labeler keeps the status labels of pull requests in sync with
// their mergeability.
package labeler

import (
	"context"
	"errors"
	"fmt"

	"github.com/douhashi/merge-labeler/internal/labels"
	"github.com/douhashi/merge-labeler/internal/logger"
	"github.com/douhashi/merge-labeler/internal/mergeability"
)

// Resolver resolves the mergeability of one pull request.
type Resolver interface {
	Resolve(ctx context.Context, ref mergeability.PullRequestRef) (*mergeability.PullRequestData, error)
}

// LabelMutator applies label changes on the remote platform.
type LabelMutator interface {
	AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error
	RemoveLabel(ctx context.Context, owner, repo string, number int, label string) error
}

// PullRequestLister lists open pull requests of a repository.
type PullRequestLister interface {
	ListOpenPullRequests(ctx context.Context, owner, repo string) ([]int, error)
}

// Result is what Process did for one pull request.
type Result struct {
	Number  int
	Current []string
	Changes labels.ChangeSet
	Overlap []string
	Plan    labels.Plan
}

// Labeler runs resolve → rules → reconcile → apply for pull requests.
type Labeler struct {
	resolver    Resolver
	mutator     LabelMutator
	rules       []labels.Rule
	concurrency int
	logger      logger.Logger
}

// Option configures a Labeler.
type Option func(*Labeler)

// WithRules replaces the default rules.
func WithRules(rules ...labels.Rule) Option {
	return func(l *Labeler) {
		l.rules = rules
	}
}

// WithConcurrency bounds how many pull requests ProcessAll handles at once.
// 0 means one goroutine per pull request.
func WithConcurrency(n int) Option {
	return func(l *Labeler) {
		l.concurrency = n
	}
}

// New creates a Labeler.
func New(resolver Resolver, mutator LabelMutator, log logger.Logger, opts ...Option) (*Labeler, error) {
	if resolver == nil {
		return nil, errors.New("resolver is required")
	}
	if mutator == nil {
		return nil, errors.New("label mutator is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}

	l := &Labeler{
		resolver: resolver,
		mutator:  mutator,
		rules:    labels.DefaultRules(labels.DefaultLabelNames()),
		logger:   log.WithFields("component", "labeler"),
	}
	for _, opt := range opts {
		opt(l)
	}
	if len(l.rules) == 0 {
		return nil, errors.New("at least one rule is required")
	}

	return l, nil
}

// Process syncs the labels of a single pull request.
func (l *Labeler) Process(ctx context.Context, ref mergeability.PullRequestRef) (*Result, error) {
	return l.process(ctx, ref, l.logger.WithFields("pr_number", ref.Number))
}

func (l *Labeler) process(ctx context.Context, ref mergeability.PullRequestRef, log logger.Logger) (*Result, error) {
	pr, err := l.resolver.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve mergeability of PR#%d: %w", ref.Number, err)
	}

	log.Info("Labels that we have", "labels", pr.Labels)

	sets := make([]labels.ChangeSet, 0, len(l.rules))
	for _, rule := range l.rules {
		set := rule.Evaluate(pr)
		log.Info("Label check result",
			"rule", rule.Name,
			"label", rule.Label,
			"draft", pr.Draft,
			"mergeable", pr.Mergeable,
			"mergeable_state", pr.MergeableState,
			"result", set.String(),
		)
		sets = append(sets, set)
	}

	view := labels.NewPullRequestView(pr.Number, pr.Labels, labels.Merge(sets...))
	result := &Result{
		Number:  view.Number,
		Current: view.Current,
		Changes: view.Changes,
		Overlap: view.Overlap(),
		Plan:    view.Plan(),
	}

	if len(result.Overlap) > 0 {
		log.Warn("The following labels were queued to be added AND removed", "labels", result.Overlap)
	}

	if err := l.apply(ctx, ref, result, log); err != nil {
		return result, err
	}

	log.Info("Complete")
	return result, nil
}

// apply は差分が空でない場合のみAPIを呼び出す
func (l *Labeler) apply(ctx context.Context, ref mergeability.PullRequestRef, result *Result, log logger.Logger) error {
	log.Info("Labels that we want", "labels", result.Changes.ToAdd())
	if len(result.Plan.NeedAdd) == 0 {
		log.Info("No labels to add")
	} else {
		log.Info("Adding labels", "labels", result.Plan.NeedAdd)
		if err := l.mutator.AddLabels(ctx, ref.Owner, ref.Repo, ref.Number, result.Plan.NeedAdd); err != nil {
			return &mergeability.TransportError{Number: ref.Number, Err: err}
		}
	}

	log.Info("Labels that we don't want", "labels", result.Changes.ToRemove())
	if len(result.Plan.NeedRemove) == 0 {
		log.Info("No labels to remove")
		return nil
	}

	log.Info("Removing labels", "labels", result.Plan.NeedRemove)
	for _, label := range result.Plan.NeedRemove {
		if err := l.mutator.RemoveLabel(ctx, ref.Owner, ref.Repo, ref.Number, label); err != nil {
			return &mergeability.TransportError{Number: ref.Number, Err: err}
		}
	}

	return nil
}
