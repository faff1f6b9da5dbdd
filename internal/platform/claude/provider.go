package claude

import (
	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/platform"
	"github.com/thoreinstein/switchboard/internal/store"
)

// Model environment keys. ANTHROPIC_SMALL_FAST_MODEL is the legacy key the
// per-tier DEFAULT_* keys replaced.
const (
	envModel       = "ANTHROPIC_MODEL"
	envSmallFast   = "ANTHROPIC_SMALL_FAST_MODEL"
	envHaikuModel  = "ANTHROPIC_DEFAULT_HAIKU_MODEL"
	envSonnetModel = "ANTHROPIC_DEFAULT_SONNET_MODEL"
	envOpusModel   = "ANTHROPIC_DEFAULT_OPUS_MODEL"
)

// ParseCommon decodes a JSON object snippet.
func (a *Adapter) ParseCommon(snippet string) (document.Document, error) {
	doc, err := document.DecodeJSON([]byte(snippet), "claude common config snippet")
	if err != nil {
		return nil, errors.Mark(err, errors.ErrValidationFailed)
	}
	if len(doc) == 0 {
		return nil, nil
	}
	return doc, nil
}

// NormalizeSettings fills the per-tier model keys from ANTHROPIC_MODEL and
// the legacy small/fast key when they are unset, then drops the legacy key.
func (a *Adapter) NormalizeSettings(settings document.Document) document.Document {
	env, ok := settings["env"].(document.Document)
	if !ok {
		return settings
	}

	str := func(k string) string {
		s, _ := env[k].(string)
		return s
	}
	model, small := str(envModel), str(envSmallFast)
	_, hasLegacy := env[envSmallFast]

	fill := map[string][2]string{
		envHaikuModel:  {small, model},
		envSonnetModel: {model, small},
		envOpusModel:   {model, small},
	}
	var missing []string
	for _, k := range []string{envHaikuModel, envSonnetModel, envOpusModel} {
		if _, set := env[k]; !set {
			c := fill[k]
			if c[0] != "" || c[1] != "" {
				missing = append(missing, k)
			}
		}
	}
	if len(missing) == 0 && !hasLegacy {
		return settings
	}

	out := document.Clone(settings)
	outEnv := out["env"].(document.Document)
	for _, k := range missing {
		v := fill[k][0]
		if v == "" {
			v = fill[k][1]
		}
		outEnv[k] = v
	}
	delete(outEnv, envSmallFast)
	return out
}

// ValidateSettings requires env, when present, to be an object of strings.
func (a *Adapter) ValidateSettings(settings document.Document) error {
	if settings == nil {
		return errors.Invalidf("claude settings must be a JSON object")
	}
	raw, ok := settings["env"]
	if !ok || raw == nil {
		return nil
	}
	env, ok := raw.(document.Document)
	if !ok {
		return errors.Invalidf("claude settings: env must be an object, got %T", raw)
	}
	for k, v := range env {
		switch v.(type) {
		case string, int64, float64, bool:
		default:
			return errors.Invalidf("claude settings: env.%s must be a scalar, got %T", k, v)
		}
	}
	return nil
}

// RenderProvider merges p's settings, then common, over settings.json. The
// env object is replaced as a whole so no credential of the previous
// provider survives the switch.
func (a *Adapter) RenderProvider(p *store.Provider, common document.Document, existing platform.Files) (platform.Files, error) {
	if err := a.ValidateSettings(p.SettingsConfig); err != nil {
		return nil, err
	}
	patch := document.Merge(a.NormalizeSettings(p.SettingsConfig), common)

	f := a.Existing(existing, platform.RoleSettings)
	f.Doc = document.Merge(f.Doc, patch)
	if env := document.LookupMap(patch, "env"); env != nil {
		f.Doc["env"] = document.Clone(env)
	} else {
		delete(f.Doc, "env")
	}
	return platform.Files{platform.RoleSettings: f}, nil
}

// CaptureProvider returns settings.json without the common snippet's values.
func (a *Adapter) CaptureProvider(live platform.Files, common document.Document) (document.Document, error) {
	f := live[platform.RoleSettings]
	if f == nil {
		return nil, errors.Unavailablef("claude %s does not exist", settingsFile)
	}
	captured := a.NormalizeSettings(document.Clone(f.Doc))
	if common != nil {
		captured = document.Strip(captured, common)
	}
	if captured == nil {
		captured = document.Document{}
	}
	return captured, nil
}

// UsageCredentials reads the auth token (or API key) and base URL from env.
func (a *Adapter) UsageCredentials(settings document.Document) (apiKey, baseURL string) {
	apiKey = document.LookupString(settings, "env.ANTHROPIC_AUTH_TOKEN")
	if apiKey == "" {
		apiKey = document.LookupString(settings, "env.ANTHROPIC_API_KEY")
	}
	return apiKey, document.LookupString(settings, "env.ANTHROPIC_BASE_URL")
}
