package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/douhashi/merge-labeler/internal/logger"
	"github.com/douhashi/merge-labeler/internal/mergeability"
	"github.com/google/go-github/v50/github"
	"golang.org/x/oauth2"
)

// Client はGitHub REST APIクライアントのラッパー
type Client struct {
	github *github.Client
	logger logger.Logger
}

// ClientOption はClientの設定オプション
type ClientOption func(*clientOptions)

type clientOptions struct {
	baseURL    string
	logger     logger.Logger
	httpClient *http.Client
}

// WithBaseURL はAPIのベースURLを設定する（GitHub Enterprise Server用、例: https://ghe.example.com/api/v3/）
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithLogger はHTTPリクエストをログ出力するロガーを設定する
func WithLogger(l logger.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = l
	}
}

// WithHTTPClient はoauth2トランスポートの下に敷くHTTPクライアントを設定する
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// NewClient は新しいGitHub APIクライアントを作成する
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, errors.New("GitHub token is required")
	}

	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}

	hc := newHTTPClient(token, o.httpClient, o.logger)
	gh := github.NewClient(hc)

	if o.baseURL != "" {
		base, err := parseBaseURL(o.baseURL)
		if err != nil {
			return nil, err
		}
		gh.BaseURL = base
	}

	log := o.logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		github: gh,
		logger: log.WithFields("component", "github"),
	}, nil
}

// newHTTPClient はトークン認証と（任意で）ログ出力を行うHTTPクライアントを作成する。
// ログはoauth2トランスポートの内側で取るため、認証ヘッダ付与後のリクエストが記録される
func newHTTPClient(token string, base *http.Client, l logger.Logger) *http.Client {
	inner := &http.Client{}
	if base != nil {
		*inner = *base
	}

	if l != nil {
		inner.Transport = &loggingRoundTripper{
			base:   inner.Transport,
			logger: l.WithFields("component", "github_http"),
		}
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, inner)
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	return oauth2.NewClient(ctx, ts)
}

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API base URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid GitHub API base URL %q: scheme and host are required", raw)
	}
	return u, nil
}

func validateRepo(owner, repo string) error {
	if owner == "" {
		return errors.New("owner is required")
	}
	if repo == "" {
		return errors.New("repo is required")
	}
	return nil
}

// FetchPullRequest はプルリクエストを取得する。
// mergeableがまだ計算されていない場合、GitHubはnullを返しバックグラウンドで計算を開始する
func (c *Client) FetchPullRequest(ctx context.Context, owner, repo string, number int) (*mergeability.PullRequestData, error) {
	if err := validateRepo(owner, repo); err != nil {
		return nil, err
	}

	pr, _, err := c.github.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, ClassifyError(err)
	}

	return toPullRequestData(pr), nil
}

// ListOpenPullRequests はオープンなプルリクエストの番号を全ページ分取得する
func (c *Client) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]int, error) {
	if err := validateRepo(owner, repo); err != nil {
		return nil, err
	}

	opts := &github.PullRequestListOptions{
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var numbers []int
	for {
		prs, resp, err := c.github.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, ClassifyError(err)
		}
		for _, pr := range prs {
			numbers = append(numbers, pr.GetNumber())
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debug("Listed open pull requests",
		"owner", owner,
		"repo", repo,
		"count", len(numbers),
	)

	return numbers, nil
}

// AddLabels はプルリクエストにラベルを追加する
func (c *Client) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	if err := validateRepo(owner, repo); err != nil {
		return err
	}
	if len(labels) == 0 {
		return errors.New("at least one label is required")
	}

	if _, _, err := c.github.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels); err != nil {
		return fmt.Errorf("failed to add labels %v to #%d: %w", labels, number, ClassifyError(err))
	}
	return nil
}

// RemoveLabel はプルリクエストからラベルを1つ削除する
func (c *Client) RemoveLabel(ctx context.Context, owner, repo string, number int, label string) error {
	if err := validateRepo(owner, repo); err != nil {
		return err
	}
	if label == "" {
		return errors.New("label is required")
	}

	if _, err := c.github.Issues.RemoveLabelForIssue(ctx, owner, repo, number, label); err != nil {
		return fmt.Errorf("failed to remove label %s from #%d: %w", label, number, ClassifyError(err))
	}
	return nil
}

// toPullRequestData はgo-githubのPullRequestをラベル判定用の構造体に変換する
func toPullRequestData(pr *github.PullRequest) *mergeability.PullRequestData {
	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.GetName())
	}

	return &mergeability.PullRequestData{
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		HeadSHA:        pr.GetHead().GetSHA(),
		Mergeable:      pr.Mergeable,
		MergeableState: pr.GetMergeableState(),
		Labels:         labels,
		Draft:          pr.GetDraft(),
	}
}
