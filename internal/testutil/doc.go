// Package testutil provides common test utilities, mocks, and builders for testing merge-labeler components.
//
// This package is organized into the following sub-packages:
//
//   - mocks: testify mocks for the GitHub client and the mergeability resolver
//   - builders: Test data builders for go-github types and config.Config
//   - helpers: fake clock, observable logger and common test errors
package testutil
