// Package redact strips credentials from strings before they reach logs.
package redact

import (
	"regexp"
	"strings"
)

var (
	bearerTokenRe = regexp.MustCompile(`(?i)\b(Bearer|token)\s+[^\s"']+`)
	apiKeyKVRe    = regexp.MustCompile(`(?i)\b(x-api-key|api[_-]?key|key)\b\s*[:=]\s*[^\s"'&]+`)
)

// Secrets removes bearer tokens and key=value credentials from s.
func Secrets(s string) string {
	if s == "" {
		return ""
	}
	out := bearerTokenRe.ReplaceAllString(s, "$1 <redacted>")
	out = apiKeyKVRe.ReplaceAllString(out, "<redacted_kv>")
	return strings.TrimSpace(out)
}

// Error is Secrets applied to err.Error(); nil yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return Secrets(err.Error())
}
