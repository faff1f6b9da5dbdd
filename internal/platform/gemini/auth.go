package gemini

import (
	"strings"

	"github.com/thoreinstein/switchboard/internal/store"
)

// AuthMode is the value Gemini CLI reads from security.auth.selectedType.
type AuthMode string

const (
	AuthAPIKey AuthMode = "gemini-api-key"
	AuthOAuth  AuthMode = "oauth-personal"
)

// GoogleOfficialKey is the partner promotion key of the Google provider.
const GoogleOfficialKey = "google-official"

// apiKeyVars are removed from .env in OAuth mode.
var apiKeyVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}

// DetectAuthMode returns AuthOAuth for the Google official provider,
// identified by its partner promotion key or a name of "Google" or
// "Google ...", and AuthAPIKey otherwise.
func DetectAuthMode(p *store.Provider) AuthMode {
	if p.Meta != nil && strings.EqualFold(p.Meta.PartnerPromotionKey, GoogleOfficialKey) {
		return AuthOAuth
	}
	name := strings.ToLower(strings.TrimSpace(p.Name))
	if name == "google" || strings.HasPrefix(name, "google ") {
		return AuthOAuth
	}
	return AuthAPIKey
}
