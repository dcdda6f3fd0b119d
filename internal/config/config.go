// Package config loads DevGenesis settings from config.yaml and DEVGENESIS_* variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
)

// AppDir is the directory name used under each XDG base directory
const AppDir = "devgenesis"

// EnvPrefix prefixes environment overrides, e.g. DEVGENESIS_LOG_LEVEL
const EnvPrefix = "DEVGENESIS"

// Config keys
const (
	KeyTemplatesDir       = "templates_dir"
	KeyHistoryDB          = "history_db"
	KeyLogFile            = "log_file"
	KeyLogLevel           = "log_level"
	KeyAuthor             = "author"
	KeyCommandTimeout     = "command_timeout"
	KeyMinFreeSpace       = "min_free_space"
	KeyPreviewLength      = "preview_length"
	KeyDefaultGitInit     = "defaults.git_init"
	KeyDefaultCreateEnv   = "defaults.create_env"
	KeyDefaultRunCommands = "defaults.run_commands"
)

// Config holds resolved settings
type Config struct {
	TemplatesDir   string
	HistoryDB      string
	LogFile        string
	LogLevel       string
	Author         string // Empty means derive from the environment
	CommandTimeout time.Duration
	MinFreeSpace   uint64
	PreviewLength  int
	Defaults       Defaults

	// File is the config file that was read, empty when none was found
	File string
}

// Defaults are the pipeline flags used when a template does not set them
type Defaults struct {
	GitInit     bool
	CreateEnv   bool
	RunCommands bool
}

// Dir returns the directory searched for config.yaml
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppDir)
}

// Load reads settings. When file is empty, config.yaml is looked up in
// Dir(); a missing file is not an error. An explicit file must exist.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}

	// Enable environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	minFree, err := humanize.ParseBytes(v.GetString(KeyMinFreeSpace))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyMinFreeSpace, err)
	}

	cfg := &Config{
		TemplatesDir:   v.GetString(KeyTemplatesDir),
		HistoryDB:      v.GetString(KeyHistoryDB),
		LogFile:        v.GetString(KeyLogFile),
		LogLevel:       v.GetString(KeyLogLevel),
		Author:         v.GetString(KeyAuthor),
		CommandTimeout: v.GetDuration(KeyCommandTimeout),
		MinFreeSpace:   minFree,
		PreviewLength:  v.GetInt(KeyPreviewLength),
		Defaults: Defaults{
			GitInit:     v.GetBool(KeyDefaultGitInit),
			CreateEnv:   v.GetBool(KeyDefaultCreateEnv),
			RunCommands: v.GetBool(KeyDefaultRunCommands),
		},
		File: v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyTemplatesDir, filepath.Join(xdg.DataHome, AppDir, "templates"))
	v.SetDefault(KeyHistoryDB, filepath.Join(xdg.DataHome, AppDir, "history.db"))
	v.SetDefault(KeyLogFile, filepath.Join(xdg.StateHome, AppDir, "devgenesis.log"))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyAuthor, "")
	v.SetDefault(KeyCommandTimeout, "5m")
	v.SetDefault(KeyMinFreeSpace, "50 MiB")
	v.SetDefault(KeyPreviewLength, 400)
	v.SetDefault(KeyDefaultGitInit, true)
	v.SetDefault(KeyDefaultCreateEnv, true)
	v.SetDefault(KeyDefaultRunCommands, true)
}

// Validate rejects values the generator cannot use
func (c *Config) Validate() error {
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyCommandTimeout, c.CommandTimeout)
	}
	if c.PreviewLength <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyPreviewLength, c.PreviewLength)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("unknown %s %q", KeyLogLevel, c.LogLevel)
	}
	return nil
}
