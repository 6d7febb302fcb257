package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphQLPullRequest(mergeable, status string, labels ...string) map[string]interface{} {
	nodes := make([]map[string]string, len(labels))
	for i, l := range labels {
		nodes[i] = map[string]string{"name": l}
	}
	return map[string]interface{}{
		"data": map[string]interface{}{
			"repository": map[string]interface{}{
				"pullRequest": map[string]interface{}{
					"number":           42,
					"title":            "Add feature",
					"headRefOid":       "0123456789abcdef0123456789abcdef01234567",
					"mergeable":        mergeable,
					"mergeStateStatus": status,
					"isDraft":          false,
					"labels":           map[string]interface{}{"nodes": nodes},
				},
			},
		},
	}
}

func setupGraphQLServer(t *testing.T, response interface{}) (*GraphQLFetcher, *map[string]interface{}) {
	t.Helper()
	var variables map[string]interface{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/graphql", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body.Query, "mergeStateStatus")
		variables = body.Variables

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	f, err := NewGraphQLFetcher("test-token", WithBaseURL(server.URL+"/api/v3/"))
	require.NoError(t, err)
	return f, &variables
}

func TestGraphQLFetcher_FetchPullRequest(t *testing.T) {
	tests := []struct {
		name          string
		mergeable     string
		status        string
		labels        []string
		wantMergeable *bool
		wantState     string
	}{
		{name: "UNKNOWNはnull", mergeable: "UNKNOWN", status: "UNKNOWN", wantState: "unknown"},
		{name: "MERGEABLEかつBEHIND", mergeable: "MERGEABLE", status: "BEHIND", labels: []string{"bug"}, wantMergeable: boolPtr(true), wantState: "behind"},
		{name: "CONFLICTING", mergeable: "CONFLICTING", status: "DIRTY", labels: []string{"behind", "conflict"}, wantMergeable: boolPtr(false), wantState: "dirty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, vars := setupGraphQLServer(t, graphQLPullRequest(tt.mergeable, tt.status, tt.labels...))

			data, err := f.FetchPullRequest(context.Background(), "douhashi", "merge-labeler", 42)
			require.NoError(t, err)

			assert.Equal(t, 42, data.Number)
			assert.Equal(t, "Add feature", data.Title)
			assert.Equal(t, tt.wantMergeable, data.Mergeable)
			assert.Equal(t, tt.wantState, data.MergeableState)
			wantLabels := tt.labels
			if wantLabels == nil {
				wantLabels = []string{}
			}
			assert.Equal(t, wantLabels, data.Labels)

			assert.Equal(t, "douhashi", (*vars)["owner"])
			assert.Equal(t, "merge-labeler", (*vars)["name"])
			assert.Equal(t, float64(42), (*vars)["number"])
		})
	}

	t.Run("異常系: GraphQLエラー", func(t *testing.T) {
		f, _ := setupGraphQLServer(t, map[string]interface{}{
			"errors": []map[string]interface{}{
				{"message": "Could not resolve to a PullRequest with the number of 42."},
			},
		})

		_, err := f.FetchPullRequest(context.Background(), "douhashi", "merge-labeler", 42)
		require.Error(t, err)
		var ghErr *GitHubError
		require.ErrorAs(t, err, &ghErr)
		assert.Contains(t, err.Error(), "error in executing pull request query")
		assert.Contains(t, err.Error(), "Could not resolve")
	})
}

func TestNewGraphQLFetcher(t *testing.T) {
	_, err := NewGraphQLFetcher("")
	assert.EqualError(t, err, "GitHub token is required")

	_, err = NewGraphQLFetcher("test-token", WithBaseURL("not a url"))
	assert.Error(t, err)
}

func TestGraphQLEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{name: "GHEのREST URL", baseURL: "https://ghe.example.com/api/v3/", want: "https://ghe.example.com/api/graphql"},
		{name: "github.com", baseURL: "https://api.github.com", want: "https://api.github.com/graphql"},
		{name: "graphqlで終わるURL", baseURL: "https://ghe.example.com/api/graphql/", want: "https://ghe.example.com/api/graphql"},
		{name: "スキームなし", baseURL: "ghe.example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := graphQLEndpoint(tt.baseURL)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeableFromGraphQL(t *testing.T) {
	assert.Equal(t, boolPtr(true), mergeableFromGraphQL(githubv4.MergeableStateMergeable))
	assert.Equal(t, boolPtr(false), mergeableFromGraphQL(githubv4.MergeableStateConflicting))
	assert.Nil(t, mergeableFromGraphQL(githubv4.MergeableStateUnknown))
}
