package logger

import (
	"regexp"
	"strings"
)

const masked = "***MASKED***"

// ログに出してはいけないキー（大文字小文字を区別しない）
var sensitiveKeys = []string{
	"token",
	"github_token",
	"access_token",
	"authorization",
	"password",
	"secret",
	"credential",
}

// GitHubのトークン形式（ghp_, ghs_, ghu_, gho_, ghr_, github_pat_）
var tokenValuePattern = regexp.MustCompile(`^(ghp_|ghs_|ghu_|gho_|ghr_|github_pat_)[A-Za-z0-9_]{20,}$`)

// Authorizationヘッダー形式
var authValuePattern = regexp.MustCompile(`(?i)^(bearer|token)\s+[A-Za-z0-9\-_.]{20,}$`)

// SanitizeArgs はログ引数（key-valueペア）のうちトークンらしき値をマスクする
func SanitizeArgs(args ...interface{}) []interface{} {
	if len(args) < 2 {
		return args
	}

	sanitized := make([]interface{}, len(args))
	copy(sanitized, args)

	for i := 0; i+1 < len(sanitized); i += 2 {
		key, ok := sanitized[i].(string)
		if !ok {
			continue
		}
		sanitized[i+1] = SanitizeValue(key, sanitized[i+1])
	}

	return sanitized
}

// SanitizeValue はキーまたは値がセンシティブな場合にマスクした値を返す
func SanitizeValue(key string, value interface{}) interface{} {
	str, isString := value.(string)

	if isString && str != "" {
		if m := tokenValuePattern.FindStringSubmatch(str); m != nil {
			return m[1] + masked
		}
		if authValuePattern.MatchString(str) {
			return strings.SplitN(str, " ", 2)[0] + " " + masked
		}
	}

	if isSensitiveKey(key) {
		return masked
	}

	return value
}

func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, k := range sensitiveKeys {
		if lowerKey == k || strings.HasSuffix(lowerKey, "_"+k) {
			return true
		}
	}
	return false
}
