// Package config loads tool settings and --config override files.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// AppName is used for the settings directory and env prefix.
const AppName = "express-ts-gen"

// SettingsFileName is looked up in the project directory.
const SettingsFileName = ".express-ts-gen"

// Settings are the tool's own settings.
type Settings struct {
	Log        LogSettings        `mapstructure:"log"`
	History    HistorySettings    `mapstructure:"history"`
	Templates  TemplateSettings   `mapstructure:"templates"`
	Generation GenerationSettings `mapstructure:"generation"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// HistorySettings configures the generation journal.
type HistorySettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // empty selects the default location
}

// TemplateSettings configures where templates are read from.
type TemplateSettings struct {
	Dir string `mapstructure:"dir"` // empty selects the embedded templates
}

// GenerationSettings hold defaults for generation flags.
type GenerationSettings struct {
	Force     bool `mapstructure:"force"`
	SkipTests bool `mapstructure:"skip_tests"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Log:     LogSettings{Level: "warn"},
		History: HistorySettings{Enabled: true},
	}
}

// LoadOptions controls where settings are read from.
type LoadOptions struct {
	SettingsFile string // explicit --settings path, used exclusively
	ProjectDir   string // directory searched for .express-ts-gen.{yaml,yml,json,toml}
	ConfigDir    string // overrides the user config directory
}

// ConfigDir returns the user settings directory.
func ConfigDir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName), nil
}

var validate = validator.New()

// LoadSettings resolves settings from defaults, a settings file and EXPRESS_TS_GEN_*
// environment variables, in increasing order of precedence.
func LoadSettings(ctx context.Context, opts LoadOptions) (*Settings, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load settings canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("history.enabled", defaults.History.Enabled)
	v.SetDefault("history.path", defaults.History.Path)
	v.SetDefault("templates.dir", defaults.Templates.Dir)
	v.SetDefault("generation.force", defaults.Generation.Force)
	v.SetDefault("generation.skip_tests", defaults.Generation.SkipTests)

	v.SetEnvPrefix(strings.ReplaceAll(AppName, "-", "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.SettingsFile != "" {
		v.SetConfigFile(opts.SettingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read settings %s: %w", opts.SettingsFile, err)
		}
		resolvedPath = opts.SettingsFile
	} else {
		v.SetConfigName(SettingsFileName)
		if opts.ProjectDir != "" {
			v.AddConfigPath(opts.ProjectDir)
		}
		cfgDir := opts.ConfigDir
		if cfgDir == "" {
			if dir, err := ConfigDir(); err == nil {
				cfgDir = dir
			}
		}
		if cfgDir != "" {
			v.AddConfigPath(cfgDir)
		}

		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		switch {
		case err == nil:
			resolvedPath = v.ConfigFileUsed()
		case errors.As(err, &notFound):
			// defaults only
		default:
			return nil, "", fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, "", fmt.Errorf("failed to parse settings: %w", err)
	}
	s.Log.Level = strings.ToLower(s.Log.Level)
	if err := validate.Struct(s); err != nil {
		return nil, "", fmt.Errorf("invalid settings: %w", err)
	}

	return &s, resolvedPath, nil
}
