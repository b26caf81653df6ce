// Package logutil holds helpers that keep credentials and signatures out of logs.
package logutil

import "strings"

// TruncateForLog keeps the first maxLen runes of s and appends "..." when
// anything was cut.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}

// MaskSecret hides all but the last four characters of a secret.
// Values of four characters or fewer are fully masked.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	if len(r) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 4) + string(r[len(r)-4:])
}

var sensitiveKeys = map[string]bool{
	"secret_key":   true,
	"checksum_key": true,
	"signature":    true,
	"checksum":     true,
	"card_number":  true,
	"cvv":          true,
	"card_token":   true,
}

// IsSensitiveKey reports whether a log attribute or payload key carries a secret.
func IsSensitiveKey(key string) bool {
	return sensitiveKeys[strings.ToLower(key)]
}
