// Package mocks provides testify mocks for the interfaces the labeler
// depends on.
//
// # Available Mocks
//
//   - MockGitHubClient: FetchPullRequest, ListOpenPullRequests, AddLabels, RemoveLabel
//   - MockResolver: Resolve
//
// # Example
//
//	gh := mocks.NewMockGitHubClient()
//	gh.On("AddLabels", mock.Anything, "owner", "repo", 42, []string{"behind"}).Return(nil)
package mocks
