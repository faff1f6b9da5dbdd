package provider

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/switchboard/internal/cli"
	"github.com/thoreinstein/switchboard/internal/document"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
	"github.com/thoreinstein/switchboard/internal/store"
)

var (
	addName         string
	addSettings     string
	addSettingsFile string
	addEnv          []string
	addWebsite      string
	addCategory     string
	addNotes        string
)

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "display name (default: the id)")
	addCmd.Flags().StringVar(&addSettings, "settings", "", "provider settings as a JSON object")
	addCmd.Flags().StringVar(&addSettingsFile, "settings-file", "", "read provider settings from a JSON file")
	addCmd.Flags().StringArrayVarP(&addEnv, "env", "e", nil, "set an env entry in the settings (KEY=VALUE, repeatable)")
	addCmd.Flags().StringVar(&addWebsite, "website", "", "provider website URL")
	addCmd.Flags().StringVar(&addCategory, "category", "", "provider category (official, third_party, custom, ...)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "free-form notes")
	addCmd.MarkFlagsMutuallyExclusive("settings", "settings-file")
	Cmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a provider",
	Long: `Add a provider. The first provider of an app becomes current.

Settings use the app's own shape:

  claude  the settings.json object, e.g. {"env": {"ANTHROPIC_BASE_URL": "..."}}
  codex   {"auth": {"OPENAI_API_KEY": "..."}, "config": "<config.toml text>"}
  gemini  {"env": {"GEMINI_API_KEY": "..."}, "config": {...settings.json keys}}

--env entries are merged into the "env" object (claude and gemini) or the
"auth" object (codex).`,
	Example: `  switchboard provider add relay --name Relay \
    -e ANTHROPIC_BASE_URL=https://relay.example.com \
    -e ANTHROPIC_AUTH_TOKEN=sk-...

  switchboard provider add work --app codex --settings-file work.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAddWithWriter(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runAddWithWriter(ctx context.Context, w io.Writer, id string) error {
	m, app, err := open(ctx)
	if err != nil {
		return err
	}

	settings, err := loadSettings(addSettings, addSettingsFile)
	if err != nil {
		return err
	}
	envKey := "env"
	if app == paths.AppCodex {
		envKey = "auth"
	}
	if err := applyEnv(settings, envKey, addEnv); err != nil {
		return err
	}

	name := addName
	if name == "" {
		name = id
	}
	p := &store.Provider{
		ID:             id,
		Name:           name,
		SettingsConfig: settings,
		WebsiteURL:     addWebsite,
		Category:       addCategory,
		Notes:          addNotes,
	}

	res, err := m.AddProvider(app, p)
	if err != nil {
		return err
	}
	cli.PrintWarnings(w, res)
	cli.Success(w, "Added %s provider %s", app.DisplayName(), id)
	return nil
}

// loadSettings parses inline JSON or a JSON file into a document. With
// neither it returns an empty document.
func loadSettings(inline, file string) (document.Document, error) {
	data := []byte(inline)
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", file)
		}
		data = b
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return document.Document{}, nil
	}
	name := "--settings"
	if file != "" {
		name = file
	}
	doc, err := document.DecodeJSON(data, name)
	if err != nil {
		return nil, errors.NewUserError(err, "Settings must be a JSON object")
	}
	return doc, nil
}

// applyEnv merges KEY=VALUE pairs into settings[key].
func applyEnv(settings document.Document, key string, pairs []string) error {
	if len(pairs) == 0 {
		return nil
	}
	env, ok := settings[key].(map[string]any)
	if !ok {
		if _, exists := settings[key]; exists {
			return errors.Invalidf("settings %q is not an object", key)
		}
		env = make(map[string]any)
	}
	for _, pair := range pairs {
		k, v, found := strings.Cut(pair, "=")
		if !found || k == "" {
			return errors.NewUserError(errors.Invalidf("invalid env entry %q", pair), "Use KEY=VALUE")
		}
		env[k] = v
	}
	settings[key] = env
	return nil
}
