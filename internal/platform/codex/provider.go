package codex

import (
	"strings"

	"github.com/gosimple/slug"

	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/platform"
	"github.com/thoreinstein/switchboard/internal/store"
)

// Defaults applied when a flat provider snippet omits them.
const (
	DefaultModel   = "gpt-5.2-codex"
	DefaultWireAPI = "chat"
)

// Keys of a flat provider snippet that belong in the provider table rather
// than at the root of config.toml.
const (
	keyBaseURL      = "base_url"
	keyWireAPI      = "wire_api"
	keyEnvKey       = "env_key"
	keyRequiresAuth = "requires_openai_auth"
	keyModel        = "model"
	keyProvider     = "model_provider"
	keyProviders    = "model_providers"
)

var tableKeys = []string{keyBaseURL, keyWireAPI, keyEnvKey, keyRequiresAuth}

// ProviderKey derives the [model_providers] table name from a provider's
// display name: lowercase letters and digits only.
func ProviderKey(p *store.Provider) string {
	key := strings.ReplaceAll(slug.Make(p.Name), "-", "")
	if key == "" {
		key = strings.ReplaceAll(slug.Make(p.ID), "-", "")
	}
	return key
}

// ParseCommon decodes a TOML snippet.
func (a *Adapter) ParseCommon(snippet string) (document.Document, error) {
	doc, err := document.DecodeTOML([]byte(snippet), "codex common config snippet")
	if err != nil {
		return nil, errors.Mark(err, errors.ErrValidationFailed)
	}
	if len(doc) == 0 {
		return nil, nil
	}
	return doc, nil
}

// NormalizeSettings returns settings unchanged.
func (a *Adapter) NormalizeSettings(settings document.Document) document.Document {
	return settings
}

// ValidateSettings requires auth to be an object and config to be TOML text.
func (a *Adapter) ValidateSettings(settings document.Document) error {
	if settings == nil {
		return errors.Invalidf("codex settings must be a JSON object")
	}
	if raw, ok := settings["auth"]; ok && raw != nil {
		if _, ok := raw.(document.Document); !ok {
			return errors.Invalidf("codex settings: auth must be an object, got %T", raw)
		}
	}
	if raw, ok := settings["config"]; ok && raw != nil {
		text, ok := raw.(string)
		if !ok {
			return errors.Invalidf("codex settings: config must be a TOML string, got %T", raw)
		}
		if _, err := document.DecodeTOML([]byte(text), "codex provider config"); err != nil {
			return errors.Mark(err, errors.ErrValidationFailed)
		}
	}
	return nil
}

// splitSettings returns the auth object and decoded config of settings.
func splitSettings(settings document.Document) (auth, config document.Document, err error) {
	auth, _ = settings["auth"].(document.Document)
	text, _ := settings["config"].(string)
	config, err = document.DecodeTOML([]byte(text), "codex provider config")
	if err != nil {
		return nil, nil, errors.Mark(err, errors.ErrValidationFailed)
	}
	return auth, config, nil
}

// RenderProvider writes p's config snippet, then common, into config.toml,
// and p's auth into auth.json when it has any.
//
// A flat snippet (one carrying base_url at the root) is expanded into a
// [model_providers.<key>] table selected by model_provider. requires_openai_auth
// is written when set or implied by an OPENAI_API_KEY env_key with auth
// present; otherwise env_key is written only if the snippet names one.
func (a *Adapter) RenderProvider(p *store.Provider, common document.Document, existing platform.Files) (platform.Files, error) {
	if err := a.ValidateSettings(p.SettingsConfig); err != nil {
		return nil, err
	}
	auth, stored, err := splitSettings(p.SettingsConfig)
	if err != nil {
		return nil, err
	}

	cfg := a.Existing(existing, platform.RoleConfig)
	for _, k := range tableKeys {
		delete(cfg.Doc, k)
	}

	if _, flat := stored[keyBaseURL]; flat {
		key := ProviderKey(p)
		table := providerTable(key, stored, len(auth) > 0)

		patch := document.Clone(stored)
		for _, k := range tableKeys {
			delete(patch, k)
		}
		delete(patch, "name")
		patch[keyProvider] = key
		if _, ok := patch[keyModel]; !ok {
			patch[keyModel] = DefaultModel
		}

		cfg.Doc = document.Merge(cfg.Doc, patch)
		providers, _ := cfg.Doc[keyProviders].(document.Document)
		if providers == nil {
			providers = document.Document{}
		}
		providers[key] = table
		cfg.Doc[keyProviders] = providers
	} else {
		if _, ok := stored[keyProvider]; !ok {
			delete(cfg.Doc, keyProvider)
		}
		cfg.Doc = document.Merge(cfg.Doc, stored)
	}

	cfg.Doc = document.Merge(cfg.Doc, common)

	files := platform.Files{platform.RoleConfig: cfg}
	if len(auth) > 0 {
		f := a.Existing(existing, platform.RoleAuth)
		f.Doc = document.Clone(auth)
		files[platform.RoleAuth] = f
	}
	return files, nil
}

func providerTable(key string, stored document.Document, hasAuth bool) document.Document {
	table := document.Document{"name": key}
	if base := document.LookupString(stored, keyBaseURL); base != "" {
		table[keyBaseURL] = base
	}
	wire := document.LookupString(stored, keyWireAPI)
	if wire == "" {
		wire = DefaultWireAPI
	}
	table[keyWireAPI] = wire

	envKey := document.LookupString(stored, keyEnvKey)
	requires, explicit := stored[keyRequiresAuth].(bool)
	if !explicit {
		requires = envKey == "OPENAI_API_KEY" && hasAuth
	}
	switch {
	case requires:
		table[keyRequiresAuth] = true
	case envKey != "":
		table[keyEnvKey] = envKey
	}
	return table
}

// CaptureProvider collapses the active provider table of config.toml back
// into a flat snippet and reads auth.json when present.
func (a *Adapter) CaptureProvider(live platform.Files, common document.Document) (document.Document, error) {
	cfgDoc := live.Doc(platform.RoleConfig)
	authDoc := live.Doc(platform.RoleAuth)
	if cfgDoc == nil && authDoc == nil {
		return nil, errors.Unavailablef("codex %s and %s do not exist", authFile, configFile)
	}

	out := document.Document{}
	if len(authDoc) > 0 {
		out["auth"] = document.Clone(authDoc)
	}

	snippet := flatSnippet(cfgDoc)
	if common != nil {
		snippet = document.Strip(snippet, common)
	}
	text, err := document.EncodeTOML(snippet)
	if err != nil {
		return nil, errors.Wrap(err, "encoding codex provider config")
	}
	out["config"] = string(text)
	return out, nil
}

// flatSnippet extracts the provider-specific fields of a config.toml
// document, preferring the table selected by model_provider and falling back
// to root-level keys.
func flatSnippet(cfg document.Document) document.Document {
	snippet := document.Document{}
	if cfg == nil {
		return snippet
	}

	var table document.Document
	if mp := document.LookupString(cfg, keyProvider); mp != "" {
		if providers, ok := cfg[keyProviders].(document.Document); ok {
			table, _ = providers[mp].(document.Document)
		}
	}
	get := func(k string) any {
		if v, ok := table[k]; ok {
			return v
		}
		return cfg[k]
	}

	if base, _ := get(keyBaseURL).(string); strings.TrimSpace(base) != "" {
		snippet[keyBaseURL] = strings.TrimSpace(base)
	}
	if model := document.LookupString(cfg, keyModel); model != "" {
		snippet[keyModel] = model
	}
	if wire, _ := get(keyWireAPI).(string); strings.TrimSpace(wire) != "" {
		snippet[keyWireAPI] = strings.TrimSpace(wire)
	}

	envKey, _ := get(keyEnvKey).(string)
	envKey = strings.TrimSpace(envKey)
	requires, hasRequires := get(keyRequiresAuth).(bool)
	switch {
	case hasRequires && requires:
		snippet[keyRequiresAuth] = true
	case hasRequires:
		if envKey != "" {
			snippet[keyEnvKey] = envKey
		}
		snippet[keyRequiresAuth] = false
	case envKey != "":
		// Pin the mode so render does not infer OpenAI auth from the key name.
		snippet[keyEnvKey] = envKey
		snippet[keyRequiresAuth] = false
	}
	return snippet
}

// UsageCredentials reads OPENAI_API_KEY from auth and base_url from the
// config snippet.
func (a *Adapter) UsageCredentials(settings document.Document) (apiKey, baseURL string) {
	apiKey = document.LookupString(settings, "auth.OPENAI_API_KEY")
	text, _ := settings["config"].(string)
	cfg, err := document.DecodeTOML([]byte(text), "codex provider config")
	if err != nil {
		return apiKey, ""
	}
	baseURL, _ = flatSnippet(cfg)[keyBaseURL].(string)
	return apiKey, baseURL
}
