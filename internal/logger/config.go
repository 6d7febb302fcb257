package logger

import (
	"os"
	"strings"
)

// ConfigFromEnv は環境変数から設定を読み込む
func ConfigFromEnv() *Config {
	return configFromLookup(os.Getenv)
}

func configFromLookup(getenv func(string) string) *Config {
	config := &Config{
		Level:  "info",
		Format: "text",
	}

	// GitHub Actionsのデバッグログ（ACTIONS_STEP_DEBUG）が有効な場合はRUNNER_DEBUG=1になる
	if isTrue(getenv("DEBUG")) || getenv("RUNNER_DEBUG") == "1" {
		config.Level = "debug"
	}

	// LOG_LEVELはDEBUGより優先
	if level := getenv("LOG_LEVEL"); level != "" {
		config.Level = strings.ToLower(level)
	}

	if format := getenv("LOG_FORMAT"); format != "" {
		config.Format = strings.ToLower(format)
	}

	config.File = getenv("LOG_FILE")

	return config
}

// NewFromEnv は環境変数から設定を読み込んでロガーを作成する
func NewFromEnv() (Logger, error) {
	config := ConfigFromEnv()
	return New(
		WithLevel(config.Level),
		WithFormat(config.Format),
		WithFile(config.File),
	)
}

// isTrue は文字列がtrueを表すかチェックする
func isTrue(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
