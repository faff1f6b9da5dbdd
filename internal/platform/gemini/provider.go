package gemini

import (
	"fmt"

	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/platform"
	"github.com/thoreinstein/switchboard/internal/store"
)

// ParseCommon decodes a JSON snippet shaped like provider settings, for
// example {"env": {"GEMINI_MODEL": "gemini-2.5-pro"}}.
func (a *Adapter) ParseCommon(snippet string) (document.Document, error) {
	doc, err := document.DecodeJSON([]byte(snippet), "gemini common config snippet")
	if err != nil {
		return nil, errors.Mark(err, errors.ErrValidationFailed)
	}
	if len(doc) == 0 {
		return nil, nil
	}
	if err := a.ValidateSettings(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// NormalizeSettings returns settings unchanged.
func (a *Adapter) NormalizeSettings(settings document.Document) document.Document {
	return settings
}

// ValidateSettings requires env to be an object of scalars and config to be
// an object or null.
func (a *Adapter) ValidateSettings(settings document.Document) error {
	if settings == nil {
		return errors.Invalidf("gemini settings must be a JSON object")
	}
	if raw, ok := settings["env"]; ok && raw != nil {
		env, ok := raw.(document.Document)
		if !ok {
			return errors.Invalidf("gemini settings: env must be an object, got %T", raw)
		}
		for k, v := range env {
			switch v.(type) {
			case string, int64, float64, bool:
			default:
				return errors.Invalidf("gemini settings: env.%s must be a scalar, got %T", k, v)
			}
		}
	}
	if raw, ok := settings["config"]; ok && raw != nil {
		if _, ok := raw.(document.Document); !ok {
			return errors.Invalidf("gemini settings: config must be an object or null, got %T", raw)
		}
	}
	return nil
}

// RenderProvider rebuilds .env from p's env merged with common's and writes
// the auth mode and p's config into settings.json. settings.json keeps every
// key config does not name; without a config object only the auth mode
// changes.
func (a *Adapter) RenderProvider(p *store.Provider, common document.Document, existing platform.Files) (platform.Files, error) {
	if err := a.ValidateSettings(p.SettingsConfig); err != nil {
		return nil, err
	}
	merged := document.Merge(p.SettingsConfig, common)
	mode := DetectAuthMode(p)
	files := platform.Files{}

	env := document.LookupMap(merged, "env")
	if len(env) > 0 || existing.Has(platform.RoleEnv) {
		f := a.Existing(existing, platform.RoleEnv)
		f.Doc = stringify(env)
		if mode == AuthOAuth {
			for _, k := range apiKeyVars {
				delete(f.Doc, k)
			}
		}
		files[platform.RoleEnv] = f
	}

	f := a.Existing(existing, platform.RoleSettings)
	f.Doc = document.Merge(f.Doc, document.Document{
		"security": document.Document{
			"auth": document.Document{"selectedType": string(mode)},
		},
	})
	if cfg := document.LookupMap(merged, "config"); len(cfg) > 0 {
		f.Doc = document.Merge(f.Doc, cfg)
	}
	files[platform.RoleSettings] = f

	return files, nil
}

// stringify converts env values to strings for the .env codec.
func stringify(env document.Document) document.Document {
	out := make(document.Document, len(env))
	for k, v := range env {
		if s, ok := v.(string); ok {
			out[k] = s
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}

// CaptureProvider reads .env and settings.json back into provider settings.
// MCP servers are omitted; they are owned by MCP sync.
func (a *Adapter) CaptureProvider(live platform.Files, common document.Document) (document.Document, error) {
	envDoc := live.Doc(platform.RoleEnv)
	cfgDoc := live.Doc(platform.RoleSettings)
	if envDoc == nil && cfgDoc == nil {
		return nil, errors.Unavailablef("gemini %s and %s do not exist", envFile, settingsFile)
	}

	env := document.Clone(envDoc)
	if env == nil {
		env = document.Document{}
	}
	cfg := document.Clone(cfgDoc)
	if cfg == nil {
		cfg = document.Document{}
	}
	delete(cfg, mcpKey)
	out := document.Document{"env": env, "config": cfg}

	if common != nil {
		out = document.Strip(out, common)
	}
	return out, nil
}

// UsageCredentials reads GEMINI_API_KEY and GOOGLE_GEMINI_BASE_URL from env.
func (a *Adapter) UsageCredentials(settings document.Document) (apiKey, baseURL string) {
	return document.LookupString(settings, "env.GEMINI_API_KEY"),
		document.LookupString(settings, "env.GOOGLE_GEMINI_BASE_URL")
}
