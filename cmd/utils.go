package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/douhashi/merge-labeler/internal/config"
	"github.com/douhashi/merge-labeler/internal/event"
	"github.com/douhashi/merge-labeler/internal/github"
	"github.com/douhashi/merge-labeler/internal/labeler"
	"github.com/douhashi/merge-labeler/internal/labels"
	"github.com/douhashi/merge-labeler/internal/logger"
	"github.com/douhashi/merge-labeler/internal/mergeability"
)

// app はコマンドから使う依存関係をまとめたもの
type app struct {
	labeler *labeler.Labeler
	lister  labeler.PullRequestLister
}

// newApp は設定からGitHubクライアントとLabelerを組み立てる。テストで差し替える
var newApp = func(cfg *config.Config, log logger.Logger) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []github.ClientOption{github.WithLogger(log)}
	if cfg.GitHub.BaseURL != "" {
		opts = append(opts, github.WithBaseURL(cfg.GitHub.BaseURL))
	}

	client, err := github.NewClient(cfg.GitHub.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	var fetcher mergeability.Fetcher = client
	if cfg.GitHub.API == config.APIGraphQL {
		fetcher, err = github.NewGraphQLFetcher(cfg.GitHub.Token, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub GraphQL client: %w", err)
		}
	}

	resolver, err := mergeability.NewResolver(fetcher, log, mergeability.WithPolicy(cfg.BackoffPolicy()))
	if err != nil {
		return nil, err
	}

	l, err := labeler.New(resolver, client, log,
		labeler.WithRules(labels.DefaultRules(cfg.LabelNames())...),
		labeler.WithConcurrency(cfg.Batch.Concurrency),
	)
	if err != nil {
		return nil, err
	}

	return &app{labeler: l, lister: client}, nil
}

// getenv はGitHub Actionsの環境変数を読む。テストで差し替える
var getenv = os.Getenv

// resolveRepository は--repoフラグ、GITHUB_REPOSITORY、カレントディレクトリのoriginの順にowner/repoを得る
func resolveRepository(ctx context.Context, flag string) (string, string, error) {
	slug := flag
	if slug == "" {
		slug = getenv("GITHUB_REPOSITORY")
	}
	if slug != "" {
		return event.SplitRepository(slug)
	}

	owner, repo, err := event.RepositoryFromGit(ctx, ".")
	if err != nil {
		return "", "", fmt.Errorf("repository is required: use --repo owner/repo or set GITHUB_REPOSITORY: %w", err)
	}
	return owner, repo, nil
}
