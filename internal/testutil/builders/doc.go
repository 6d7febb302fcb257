// Package builders provides test data builders for go-github types and
// the application config.
//
// # Available Builders
//
//   - PullRequestBuilder: Creates github.PullRequest instances
//   - LabelBuilder: Creates github.Label instances
//   - RepositoryBuilder: Creates github.Repository instances
//   - ConfigBuilder: Creates config.Config instances
//
// # Example
//
//	pr := builders.NewPullRequestBuilder().
//	    WithNumber(42).
//	    Behind().
//	    WithLabels("conflict").
//	    Build()
package builders
