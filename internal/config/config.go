package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/douhashi/merge-labeler/internal/labels"
	"github.com/douhashi/merge-labeler/internal/mergeability"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix は環境変数のプレフィックス
	EnvPrefix = "MERGE_LABELER"

	// APIREST はREST APIでプルリクエストを取得する
	APIREST = "rest"
	// APIGraphQL はGraphQL APIでプルリクエストを取得する
	APIGraphQL = "graphql"
)

// Config はアプリケーション全体の設定
type Config struct {
	GitHub       GitHubConfig       `mapstructure:"github"`
	Labels       LabelConfig        `mapstructure:"labels"`
	Mergeability MergeabilityConfig `mapstructure:"mergeability"`
	Batch        BatchConfig        `mapstructure:"batch"`
}

// GitHubConfig はGitHub関連の設定
type GitHubConfig struct {
	Token   string `mapstructure:"token"`
	API     string `mapstructure:"api"`
	BaseURL string `mapstructure:"base_url"`
}

// LabelConfig は付け外しするラベル名の設定
type LabelConfig struct {
	Behind   string `mapstructure:"behind"`
	Conflict string `mapstructure:"conflict"`
}

// MergeabilityConfig はmergeabilityのポーリング設定
type MergeabilityConfig struct {
	SettleDelay time.Duration `mapstructure:"settle_delay"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
	MaxRetries  int           `mapstructure:"max_retries"`
}

// BatchConfig はpushイベント時の一括処理の設定
type BatchConfig struct {
	// Concurrency は同時に処理するPR数の上限（0は無制限）
	Concurrency int  `mapstructure:"concurrency"`
	FailOnError bool `mapstructure:"fail_on_error"`
}

// NewConfig はデフォルト値のConfigを作成する
func NewConfig() *Config {
	policy := mergeability.DefaultBackoffPolicy()
	return &Config{
		GitHub: GitHubConfig{
			API: APIREST,
		},
		Labels: LabelConfig{
			Behind:   labels.DefaultBehindLabel,
			Conflict: labels.DefaultConflictLabel,
		},
		Mergeability: MergeabilityConfig{
			SettleDelay: policy.SettleDelay,
			RetryDelay:  policy.RetryDelay,
			MaxRetries:  policy.MaxRetries,
		},
	}
}

// Load は設定ファイル（任意）と環境変数から設定を読み込む
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// GitHub Actionsの入力（with: github_token）とGITHUB_TOKENもサポート
	if err := v.BindEnv("github.token", EnvPrefix+"_GITHUB_TOKEN", "INPUT_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind token env: %w", err)
	}
	if err := v.BindEnv("github.base_url", EnvPrefix+"_GITHUB_BASE_URL", "GITHUB_API_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind base url env: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to access config file: %w", err)
		}
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := NewConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.GitHub.API = strings.ToLower(cfg.GitHub.API)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := NewConfig()
	v.SetDefault("github.token", "")
	v.SetDefault("github.api", d.GitHub.API)
	v.SetDefault("github.base_url", "")
	v.SetDefault("labels.behind", d.Labels.Behind)
	v.SetDefault("labels.conflict", d.Labels.Conflict)
	v.SetDefault("mergeability.settle_delay", d.Mergeability.SettleDelay)
	v.SetDefault("mergeability.retry_delay", d.Mergeability.RetryDelay)
	v.SetDefault("mergeability.max_retries", d.Mergeability.MaxRetries)
	v.SetDefault("batch.concurrency", d.Batch.Concurrency)
	v.SetDefault("batch.fail_on_error", d.Batch.FailOnError)
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if c.GitHub.Token == "" {
		return errors.New("Missing GITHUB_TOKEN variable")
	}

	switch c.GitHub.API {
	case APIREST, APIGraphQL:
	default:
		return fmt.Errorf("unsupported github.api %q (want %q or %q)", c.GitHub.API, APIREST, APIGraphQL)
	}

	if c.Labels.Behind == "" || c.Labels.Conflict == "" {
		return errors.New("label names must not be empty")
	}
	if c.Labels.Behind == c.Labels.Conflict {
		return fmt.Errorf("behind and conflict labels must differ: %q", c.Labels.Behind)
	}

	if c.Mergeability.SettleDelay < 0 || c.Mergeability.RetryDelay < 0 {
		return errors.New("mergeability delays must not be negative")
	}
	if c.Mergeability.MaxRetries < 0 {
		return errors.New("mergeability.max_retries must not be negative")
	}
	if c.Batch.Concurrency < 0 {
		return errors.New("batch.concurrency must not be negative")
	}

	return nil
}

// BackoffPolicy はmergeabilityのポーリング設定をポリシー値に変換する
func (c *Config) BackoffPolicy() mergeability.BackoffPolicy {
	return mergeability.BackoffPolicy{
		SettleDelay: c.Mergeability.SettleDelay,
		RetryDelay:  c.Mergeability.RetryDelay,
		MaxRetries:  c.Mergeability.MaxRetries,
	}
}

// LabelNames はルールが管理するラベル名を返す
func (c *Config) LabelNames() labels.LabelNames {
	return labels.LabelNames{
		Behind:   c.Labels.Behind,
		Conflict: c.Labels.Conflict,
	}
}
