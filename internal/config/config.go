// Package config provides configuration management for switchboard using Viper.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/thoreinstein/switchboard/internal/errors"
	"github.com/thoreinstein/switchboard/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = paths.ToolName

// EnvPrefix prefixes every environment override (SWITCHBOARD_STORE_PATH, ...).
const EnvPrefix = "SWITCHBOARD"

// ConfigDirEnv overrides the directory searched for config.yaml.
const ConfigDirEnv = EnvPrefix + "_CONFIG_DIR"

// Live sync policies.
const (
	// LivePolicySkipIfAbsent leaves apps whose config directory does not exist
	// untouched and reports a warning.
	LivePolicySkipIfAbsent = "skip-if-absent"

	// LivePolicyAlways creates the config directory and live files as needed.
	LivePolicyAlways = "always"
)

// Skill sync methods.
const (
	SyncMethodAuto    = "auto"
	SyncMethodSymlink = "symlink"
	SyncMethodCopy    = "copy"
)

// Config represents the top-level configuration structure.
type Config struct {
	StorePath string                 `mapstructure:"store_path" yaml:"store_path"`
	Backup    BackupConfig           `mapstructure:"backup" yaml:"backup"`
	Sync      SyncConfig             `mapstructure:"sync" yaml:"sync"`
	Apps      map[string]AppOverride `mapstructure:"apps" yaml:"apps,omitempty"`
	Skills    SkillsConfig           `mapstructure:"skills" yaml:"skills"`
	Language  string                 `mapstructure:"language" yaml:"language"`
}

// BackupConfig controls store snapshots.
type BackupConfig struct {
	Dir       string `mapstructure:"dir" yaml:"dir"`
	Retention int    `mapstructure:"retention" yaml:"retention"`
}

// SyncConfig controls how live files are written.
type SyncConfig struct {
	LivePolicy  string `mapstructure:"live_policy" yaml:"live_policy"`
	ProcessLock bool   `mapstructure:"process_lock" yaml:"process_lock"`
}

// AppOverride contains configuration overrides for a specific app.
type AppOverride struct {
	ConfigDir string `mapstructure:"config_dir" yaml:"config_dir"`
}

// SkillsConfig controls where managed skills live and how they reach each app.
type SkillsConfig struct {
	Dir        string `mapstructure:"dir" yaml:"dir"`
	SyncMethod string `mapstructure:"sync_method" yaml:"sync_method"`
}

// Dir returns the directory config.yaml is read from by default.
func Dir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(paths.ConfigHome(), AppName)
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
// It discards any state left by a previous Init.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(Dir())

	// Environment variable support
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("store_path", d.StorePath)
	v.SetDefault("backup.dir", d.Backup.Dir)
	v.SetDefault("backup.retention", d.Backup.Retention)
	v.SetDefault("sync.live_policy", d.Sync.LivePolicy)
	v.SetDefault("sync.process_lock", d.Sync.ProcessLock)
	v.SetDefault("skills.dir", d.Skills.Dir)
	v.SetDefault("skills.sync_method", d.Skills.SyncMethod)
	v.SetDefault("language", d.Language)
	for _, app := range paths.Apps() {
		v.SetDefault("apps."+app.String()+".config_dir", "")
	}
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		StorePath: paths.StorePath(),
		Backup: BackupConfig{
			Dir:       paths.BackupDir(),
			Retention: 10,
		},
		Sync: SyncConfig{
			LivePolicy: LivePolicySkipIfAbsent,
		},
		Apps: map[string]AppOverride{},
		Skills: SkillsConfig{
			Dir:        paths.SkillStoreDir(),
			SyncMethod: SyncMethodAuto,
		},
		Language: "en",
	}
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load: defaults are fine
		case os.IsNotExist(err) || errors.As(err, &notFound):
			return nil, errors.NotFoundf("config file not found at %s", path)
		default:
			// Real read error (parsing, permissions, etc)
			return nil, errors.Mark(errors.Wrap(err, "reading config file"), errors.ErrInvalidConfig)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrInvalidConfig)
	}
	cfg.expand()

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig)
	}

	return &cfg, nil
}

// AppConfigDir returns the configured config directory for app, or "" when
// the app's default location applies.
func (c *Config) AppConfigDir(app paths.App) string {
	if c == nil || c.Apps == nil {
		return ""
	}
	return c.Apps[app.String()].ConfigDir
}

// expand resolves "~" in every path field.
func (c *Config) expand() {
	c.StorePath = paths.ExpandHome(c.StorePath)
	c.Backup.Dir = paths.ExpandHome(c.Backup.Dir)
	c.Skills.Dir = paths.ExpandHome(c.Skills.Dir)
	for name, o := range c.Apps {
		o.ConfigDir = paths.ExpandHome(o.ConfigDir)
		c.Apps[name] = o
	}
}
