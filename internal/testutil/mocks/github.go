package mocks

import (
	"context"

	"github.com/douhashi/merge-labeler/internal/mergeability"
	"github.com/stretchr/testify/mock"
)

// MockGitHubClient is a mock of the GitHub client. It satisfies
// mergeability.Fetcher, labeler.LabelMutator and labeler.PullRequestLister.
type MockGitHubClient struct {
	mock.Mock
}

// NewMockGitHubClient creates a new instance of MockGitHubClient
func NewMockGitHubClient() *MockGitHubClient {
	return &MockGitHubClient{}
}

// WithDefaultBehavior sets up common default behaviors for the mock
func (m *MockGitHubClient) WithDefaultBehavior() *MockGitHubClient {
	// ラベル操作はデフォルトで成功する
	m.On("AddLabels", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Maybe().Return(nil)
	m.On("RemoveLabel", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Maybe().Return(nil)

	return m
}

// FetchPullRequest mocks the FetchPullRequest method
func (m *MockGitHubClient) FetchPullRequest(ctx context.Context, owner, repo string, number int) (*mergeability.PullRequestData, error) {
	args := m.Called(ctx, owner, repo, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mergeability.PullRequestData), args.Error(1)
}

// ListOpenPullRequests mocks the ListOpenPullRequests method
func (m *MockGitHubClient) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]int, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// AddLabels mocks the AddLabels method
func (m *MockGitHubClient) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	args := m.Called(ctx, owner, repo, number, labels)
	return args.Error(0)
}

// RemoveLabel mocks the RemoveLabel method
func (m *MockGitHubClient) RemoveLabel(ctx context.Context, owner, repo string, number int, label string) error {
	args := m.Called(ctx, owner, repo, number, label)
	return args.Error(0)
}

// MockResolver is a mock of a mergeability resolver
type MockResolver struct {
	mock.Mock
}

// NewMockResolver creates a new instance of MockResolver
func NewMockResolver() *MockResolver {
	return &MockResolver{}
}

// Resolve mocks the Resolve method
func (m *MockResolver) Resolve(ctx context.Context, ref mergeability.PullRequestRef) (*mergeability.PullRequestData, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mergeability.PullRequestData), args.Error(1)
}
