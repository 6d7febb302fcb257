package github

import (
	"context"
	"net/url"
	"strings"

	"github.com/douhashi/merge-labeler/internal/logger"
	"github.com/douhashi/merge-labeler/internal/mergeability"
	"github.com/pkg/errors"
	"github.com/shurcooL/githubv4"
)

// GraphQLFetcher はGitHub GraphQL APIでプルリクエストのmergeabilityを取得する。
// mergeStateStatusはRESTのmergeable_stateと同じ分類（behind, blocked, clean...）を返す
type GraphQLFetcher struct {
	client *githubv4.Client
	logger logger.Logger
}

type pullRequestQuery struct {
	Repository struct {
		PullRequest struct {
			Number           githubv4.Int
			Title            githubv4.String
			HeadRefOid       githubv4.GitObjectID
			Mergeable        githubv4.MergeableState
			MergeStateStatus githubv4.MergeStateStatus
			IsDraft          githubv4.Boolean
			Labels           struct {
				Nodes []struct {
					Name githubv4.String
				}
			} `graphql:"labels(first: 100)"`
		} `graphql:"pullRequest(number: $number)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGraphQLFetcher creates a GraphQLFetcher. When WithBaseURL is given, the
// GraphQL endpoint of that GitHub Enterprise Server is derived from it.
func NewGraphQLFetcher(token string, opts ...ClientOption) (*GraphQLFetcher, error) {
	if token == "" {
		return nil, errors.New("GitHub token is required")
	}

	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}

	hc := newHTTPClient(token, o.httpClient, o.logger)

	var client *githubv4.Client
	if o.baseURL == "" {
		client = githubv4.NewClient(hc)
	} else {
		endpoint, err := graphQLEndpoint(o.baseURL)
		if err != nil {
			return nil, err
		}
		client = githubv4.NewEnterpriseClient(endpoint, hc)
	}

	log := o.logger
	if log == nil {
		log = logger.NewNop()
	}

	return &GraphQLFetcher{
		client: client,
		logger: log.WithFields("component", "github_graphql"),
	}, nil
}

// graphQLEndpoint は https://ghe.example.com/api/v3/ から https://ghe.example.com/api/graphql を導出する。
// /graphql で終わるURLはそのまま使う
func graphQLEndpoint(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", errors.Errorf("invalid GitHub API base URL %q", baseURL)
	}
	if strings.HasSuffix(strings.TrimSuffix(u.Path, "/"), "/graphql") {
		return strings.TrimSuffix(u.String(), "/"), nil
	}
	// github.com（GITHUB_API_URL=https://api.github.com）
	if u.Host == "api.github.com" {
		return "https://api.github.com/graphql", nil
	}

	endpoint, err := url.JoinPath(u.Scheme+"://"+u.Host, "api", "graphql")
	if err != nil {
		return "", errors.Wrap(err, "failed to build GraphQL endpoint")
	}
	return endpoint, nil
}

// FetchPullRequest implements mergeability.Fetcher.
func (f *GraphQLFetcher) FetchPullRequest(ctx context.Context, owner, repo string, number int) (*mergeability.PullRequestData, error) {
	if err := validateRepo(owner, repo); err != nil {
		return nil, err
	}

	var q pullRequestQuery
	vars := map[string]interface{}{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(repo),
		"number": githubv4.Int(number),
	}

	if err := f.client.Query(ctx, &q, vars); err != nil {
		return nil, ClassifyError(errors.Wrap(err, "error in executing pull request query"))
	}

	pr := q.Repository.PullRequest
	labels := make([]string, 0, len(pr.Labels.Nodes))
	for _, n := range pr.Labels.Nodes {
		labels = append(labels, string(n.Name))
	}

	data := &mergeability.PullRequestData{
		Number:         int(pr.Number),
		Title:          string(pr.Title),
		HeadSHA:        string(pr.HeadRefOid),
		Mergeable:      mergeableFromGraphQL(pr.Mergeable),
		MergeableState: strings.ToLower(string(pr.MergeStateStatus)),
		Labels:         labels,
		Draft:          bool(pr.IsDraft),
	}

	f.logger.Debug("Fetched pull request via GraphQL",
		"pr_number", data.Number,
		"mergeable", string(pr.Mergeable),
		"merge_state_status", data.MergeableState,
	)

	return data, nil
}

// mergeableFromGraphQL はMergeableStateをRESTと同じ表現（nil=未計算）に変換する
func mergeableFromGraphQL(state githubv4.MergeableState) *bool {
	var v bool
	switch state {
	case githubv4.MergeableStateMergeable:
		v = true
	case githubv4.MergeableStateConflicting:
		v = false
	default:
		return nil
	}
	return &v
}
