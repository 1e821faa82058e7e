// Package config loads lvlinfo settings from a YAML file and LVLINFO_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dyuri/lvlinfo/internal/backup"
	"github.com/dyuri/lvlinfo/internal/logging"
	"github.com/dyuri/lvlinfo/internal/text"
	"github.com/spf13/viper"
)

const (
	configName = "lvlinfo"
	envPrefix  = "LVLINFO"
)

// Config holds all settings of the lvlinfo command.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Backup BackupConfig `mapstructure:"backup"`
	Text   TextConfig   `mapstructure:"text"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type BackupConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Format  string `mapstructure:"format"`
	Dir     string `mapstructure:"dir"`
}

type TextConfig struct {
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", logging.FormatText)
	v.SetDefault("backup.enabled", true)
	v.SetDefault("backup.format", string(backup.FormatGzip))
	v.SetDefault("backup.dir", "")
	v.SetDefault("text.format", text.FormatYAML)
}

// Load reads the configuration. With a non-empty path that file must
// exist; otherwise lvlinfo.yaml is looked up in $XDG_CONFIG_HOME/lvlinfo
// (or ~/.config/lvlinfo) and the current directory, and defaults are used
// when none is found.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		if dir := userConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the enumerated settings. Format names are matched
// case-insensitively and stored lowercase.
func (c *Config) Validate() error {
	c.Log.Format = strings.ToLower(c.Log.Format)
	c.Text.Format = strings.ToLower(c.Text.Format)
	c.Backup.Format = strings.ToLower(c.Backup.Format)

	if _, err := backup.ParseFormat(c.Backup.Format); err != nil {
		return fmt.Errorf("backup.format: %w", err)
	}
	if err := text.CheckFormat(c.Text.Format); err != nil {
		return fmt.Errorf("text.format: %w", err)
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log.format: unknown format: %s", c.Log.Format)
	}
	return nil
}

// BackupOptions converts the backup settings for backup.Write.
func (c *Config) BackupOptions() backup.Options {
	format, _ := backup.ParseFormat(c.Backup.Format)
	return backup.Options{Dir: c.Backup.Dir, Format: format}
}

func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, configName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", configName)
}
