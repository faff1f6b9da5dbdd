package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/switchboard/cmd/switchboard/commands/flags"
	"github.com/thoreinstein/switchboard/internal/config"
	"github.com/thoreinstein/switchboard/internal/editor"
	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage switchboard configuration",
	Long: `Manage switchboard configuration stored in config.yaml.

Every key can also be set through the environment, e.g.
SWITCHBOARD_SYNC_LIVE_POLICY=always.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  switchboard config

  # Get a specific value
  switchboard config get sync.live_policy

  # Point Codex at a different config directory
  switchboard config set apps.codex.config_dir ~/work/.codex

See Also: switchboard validate`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigList(cmd.OutOrStdout())
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Get a single configuration value by key. Nested keys use dot notation.`,
	Example: `  switchboard config get backup.retention

See Also: switchboard config set, switchboard config list`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGet(cmd.OutOrStdout(), args[0])
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write config.yaml. The resulting
configuration is validated before it is written.`,
	Example: `  switchboard config set sync.live_policy always
  switchboard config set backup.retention 20

See Also: switchboard config get, switchboard config list`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values in YAML format.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigList(cmd.OutOrStdout())
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file and store locations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigPath(cmd.OutOrStdout())
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your default editor.

Uses $EDITOR, then $VISUAL, then nano or vi. A default config.yaml is
written first when none exists.`,
	Example: `  EDITOR=nano switchboard config edit`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runConfigEdit()
	},
}

func runConfigGet(w io.Writer, key string) error {
	if !slices.Contains(viper.AllKeys(), key) {
		return errors.NewUserError(errors.Newf("unknown key %q", key), "Run: switchboard config list")
	}
	fmt.Fprintln(w, viper.GetString(key))
	return nil
}

func runConfigSet(w io.Writer, key, value string) error {
	if !slices.Contains(viper.AllKeys(), key) {
		return errors.NewUserError(errors.Newf("unknown key %q", key), "Run: switchboard config list")
	}

	viper.Set(key, value)

	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrInvalidConfig)
	}
	if errs := config.Validate(&cfg); len(errs) > 0 {
		return errors.NewUserError(errors.Join(errs...), "")
	}

	if err := writeConfig(&cfg); err != nil {
		return err
	}
	fmt.Fprintf(w, "Set %s = %s\n", key, value)
	return nil
}

func runConfigList(w io.Writer) error {
	data, err := yaml.Marshal(flags.Config())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing output")
}

func runConfigPath(w io.Writer) error {
	cfg := flags.Config()
	fmt.Fprintf(w, "config:  %s\n", configFilePath())
	fmt.Fprintf(w, "store:   %s\n", cfg.StorePath)
	fmt.Fprintf(w, "backups: %s\n", cfg.Backup.Dir)
	fmt.Fprintf(w, "skills:  %s\n", cfg.Skills.Dir)
	return nil
}

func runConfigEdit() error {
	path := configFilePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeConfig(flags.Config()); err != nil {
			return err
		}
	}
	return editor.Open(path)
}

// configFilePath returns the file viper read, or the default location of
// config.yaml when none was read.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(config.Dir(), "config.yaml")
}

func writeConfig(cfg *config.Config) error {
	path := configFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}
