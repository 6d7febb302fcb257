package github

import (
	"net/http"
	"time"

	"github.com/douhashi/merge-labeler/internal/logger"
)

// loggingRoundTripper はGitHub APIへのリクエスト/レスポンスをデバッグログに出力する
type loggingRoundTripper struct {
	base   http.RoundTripper
	logger logger.Logger
}

// RoundTrip はHTTPリクエストを実行し、結果をログ出力する
func (rt *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	base := rt.base
	if base == nil {
		base = http.DefaultTransport
	}

	rt.logger.Debug("github_api_request",
		"method", req.Method,
		"path", req.URL.Path,
		"authenticated", req.Header.Get("Authorization") != "",
	)

	resp, err := base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		rt.logger.Error("github_api_error",
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	fields := []interface{}{
		"method", req.Method,
		"path", req.URL.Path,
		"status_code", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	}

	// レート制限の残量はバッチ処理時の診断に使う
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		fields = append(fields, "rate_limit_remaining", remaining)
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		fields = append(fields, "rate_limit_reset", reset)
	}

	rt.logger.Debug("github_api_response", fields...)

	return resp, nil
}
