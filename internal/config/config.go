package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/resumind/internal/accordion"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Storage  StorageConfig
	UI       UIConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path       string
	Migrations string
}

// StorageConfig holds the file store layout.
type StorageConfig struct {
	Root        string
	Inbox       string
	MaxUploadMB int `mapstructure:"max_upload_mb"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	AccordionMode string `mapstructure:"accordion_mode"`
	DefaultOpen   string `mapstructure:"default_open"`
	Theme         string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
	Path  string
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "resumind")
}

// Path returns the config file location, honoring RESUMIND_CONFIG.
func Path() string {
	if p := os.Getenv("RESUMIND_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "resumind", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix RESUMIND_.
// An explicit path takes precedence over RESUMIND_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(dataDir(), "resumind.db"))
	v.SetDefault("database.migrations", "")
	v.SetDefault("storage.root", filepath.Join(dataDir(), "files"))
	v.SetDefault("storage.inbox", filepath.Join(dataDir(), "inbox"))
	v.SetDefault("storage.max_upload_mb", 20)
	v.SetDefault("ui.accordion_mode", "multiple")
	v.SetDefault("ui.default_open", "")
	v.SetDefault("ui.theme", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(dataDir(), "resumind.log"))

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("RESUMIND_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "resumind"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("RESUMIND")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the dashboard cannot run with.
func (c Config) Validate() error {
	if _, err := accordion.ParseDiscipline(c.UI.AccordionMode); err != nil {
		return fmt.Errorf("ui.accordion_mode: %w", err)
	}
	if c.Storage.MaxUploadMB <= 0 {
		return fmt.Errorf("storage.max_upload_mb must be positive, got %d", c.Storage.MaxUploadMB)
	}
	switch strings.ToLower(c.UI.Theme) {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.theme must be dark, light or empty, got %q", c.UI.Theme)
	}
	return nil
}

// Discipline returns the configured accordion discipline. Call after Validate.
func (c Config) Discipline() accordion.Discipline {
	d, _ := accordion.ParseDiscipline(c.UI.AccordionMode)
	return d
}

// MaxUploadBytes converts the upload limit to bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.Storage.MaxUploadMB) * 1024 * 1024
}

// Save writes the provided config to path (or Path() when empty), creating the
// config directory if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations", cfg.Database.Migrations)
	v.Set("storage.root", cfg.Storage.Root)
	v.Set("storage.inbox", cfg.Storage.Inbox)
	v.Set("storage.max_upload_mb", cfg.Storage.MaxUploadMB)
	v.Set("ui.accordion_mode", cfg.UI.AccordionMode)
	v.Set("ui.default_open", cfg.UI.DefaultOpen)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
