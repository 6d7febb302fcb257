package builders

import (
	"time"

	"github.com/douhashi/merge-labeler/internal/config"
)

// ConfigBuilder builds config.Config instances for testing
type ConfigBuilder struct {
	cfg *config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with a valid token and
// zero delays so that tests never wait.
func NewConfigBuilder() *ConfigBuilder {
	cfg := config.NewConfig()
	cfg.GitHub.Token = "test-token"
	cfg.Mergeability.SettleDelay = 0
	cfg.Mergeability.RetryDelay = 0
	return &ConfigBuilder{cfg: cfg}
}

// WithToken sets the GitHub token
func (b *ConfigBuilder) WithToken(token string) *ConfigBuilder {
	b.cfg.GitHub.Token = token
	return b
}

// WithAPI sets which GitHub API fetches pull requests
func (b *ConfigBuilder) WithAPI(api string) *ConfigBuilder {
	b.cfg.GitHub.API = api
	return b
}

// WithBaseURL sets the GitHub API base URL
func (b *ConfigBuilder) WithBaseURL(baseURL string) *ConfigBuilder {
	b.cfg.GitHub.BaseURL = baseURL
	return b
}

// WithLabels sets the behind and conflict label names
func (b *ConfigBuilder) WithLabels(behind, conflict string) *ConfigBuilder {
	b.cfg.Labels.Behind = behind
	b.cfg.Labels.Conflict = conflict
	return b
}

// WithMergeability sets the polling schedule
func (b *ConfigBuilder) WithMergeability(settle, retry time.Duration, maxRetries int) *ConfigBuilder {
	b.cfg.Mergeability.SettleDelay = settle
	b.cfg.Mergeability.RetryDelay = retry
	b.cfg.Mergeability.MaxRetries = maxRetries
	return b
}

// WithConcurrency sets the batch concurrency
func (b *ConfigBuilder) WithConcurrency(n int) *ConfigBuilder {
	b.cfg.Batch.Concurrency = n
	return b
}

// WithFailOnError sets whether batch failures fail the run
func (b *ConfigBuilder) WithFailOnError(v bool) *ConfigBuilder {
	b.cfg.Batch.FailOnError = v
	return b
}

// Build returns a copy of the built config
func (b *ConfigBuilder) Build() *config.Config {
	cfg := *b.cfg
	return &cfg
}
