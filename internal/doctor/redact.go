package doctor

import (
	"net/url"
	"strings"
)

// SecretKeyPatterns contains substrings that indicate a key likely contains sensitive data.
// Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// TokenPrefixes contains known API token prefixes that indicate sensitive values
// regardless of key name.
var TokenPrefixes = []string{
	"sk-",   // OpenAI, Anthropic and most OpenAI-compatible relays
	"AIza",  // Google API keys (Gemini)
	"ya29.", // Google OAuth access tokens
	"ghp_",  // GitHub personal access token
	"gho_",  // GitHub OAuth token
	"AKIA",  // AWS access key prefix
	"xoxb-", // Slack bot token
	"xoxp-", // Slack user token
}

// MaskSecrets masks sensitive values in the given environment variable map.
// Returns a new map with sensitive values redacted.
func MaskSecrets(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}

	masked := make(map[string]string, len(env))
	for k, v := range env {
		if ShouldMask(k) || ContainsTokenPrefix(v) {
			masked[k] = MaskValue(v)
		} else {
			masked[k] = v
		}
	}
	return masked
}

// MaskDocument returns a copy of a JSON-shaped tree with every secret-looking
// string leaf masked. Auth-mode selectors such as "selectedType" are kept
// because their values are mode names, not credentials.
func MaskDocument(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = maskAny(k, v)
	}
	return out
}

func maskAny(key string, v any) any {
	switch val := v.(type) {
	case map[string]any:
		return MaskDocument(val)
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = maskAny(key, item)
		}
		return items
	case string:
		if isModeKey(key) {
			return val
		}
		if ShouldMask(key) || ContainsTokenPrefix(val) {
			return MaskValue(val)
		}
		return MaskURL(val)
	default:
		return v
	}
}

func isModeKey(key string) bool {
	switch strings.ToLower(key) {
	case "selectedtype", "requires_openai_auth", "env_key", "auth_mode":
		return true
	}
	return false
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskURL redacts the password of URLs with embedded credentials.
// Values that are not URLs with user info are returned unchanged.
func MaskURL(rawURL string) string {
	if !strings.Contains(rawURL, "@") {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil {
		return rawURL
	}

	password, hasPassword := parsed.User.Password()
	if !hasPassword || password == "" {
		return rawURL
	}

	parsed.User = url.UserPassword(parsed.User.Username(), MaskValue(password))
	return parsed.String()
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
// Matching is case-insensitive.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix returns true if the value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
