// Package config loads folio settings from folio.yaml, .env and FOLIO_* variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultContentRoot = "data/blog"
	DefaultAuthorsDir  = "data/authors"
	DefaultFileName    = "folio.yaml"
	EnvPrefix          = "FOLIO"
)

// ContentConfig locates and governs the content tree
type ContentConfig struct {
	Root        string `mapstructure:"root" json:"root" yaml:"root"`
	Authors     string `mapstructure:"authors" json:"authors" yaml:"authors"`
	OnMalformed string `mapstructure:"on_malformed" json:"on_malformed" yaml:"on_malformed"`
	Strict      bool   `mapstructure:"strict" json:"strict" yaml:"strict"`
}

func (c ContentConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.OnMalformed, validation.In("fail", "skip")),
	)
}

// SiteConfig describes the published site
type SiteConfig struct {
	Title        string `mapstructure:"title" json:"title" yaml:"title"`
	URL          string `mapstructure:"url" json:"url" yaml:"url"`
	PostsPerPage int    `mapstructure:"posts_per_page" json:"posts_per_page" yaml:"posts_per_page"`
}

func (c SiteConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.URL, validation.Required, is.URL),
		validation.Field(&c.PostsPerPage, validation.Required, validation.Min(1)),
	)
}

// CacheConfig enables the SQLite index cache
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" json:"path" yaml:"path"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `mapstructure:"addr" json:"addr" yaml:"addr"`
}

func (c ServerConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Addr, validation.Required),
	)
}

// LogConfig configures slog output
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level"`
	Format string `mapstructure:"format" json:"format" yaml:"format"`
}

func (c LogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.In("text", "json")),
	)
}

// Config is the complete folio configuration
type Config struct {
	Content ContentConfig `mapstructure:"content" json:"content" yaml:"content"`
	Site    SiteConfig    `mapstructure:"site" json:"site" yaml:"site"`
	Cache   CacheConfig   `mapstructure:"cache" json:"cache" yaml:"cache"`
	Server  ServerConfig  `mapstructure:"server" json:"server" yaml:"server"`
	Log     LogConfig     `mapstructure:"log" json:"log" yaml:"log"`
	Editor  string        `mapstructure:"editor" json:"editor" yaml:"editor,omitempty"`

	// File is the config file that was read, empty when only defaults and env applied
	File string `mapstructure:"-" json:"-" yaml:"-"`
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Content),
		validation.Field(&c.Site),
		validation.Field(&c.Server),
		validation.Field(&c.Log),
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("content.root", DefaultContentRoot)
	v.SetDefault("content.authors", DefaultAuthorsDir)
	v.SetDefault("content.on_malformed", "fail")
	v.SetDefault("content.strict", false)
	v.SetDefault("site.title", "My Blog")
	v.SetDefault("site.url", "http://localhost:8080")
	v.SetDefault("site.posts_per_page", 5)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("editor", "")
}

// Load reads configuration. An explicit path must exist; otherwise folio.yaml
// in the working directory is optional. A .env file in the working directory
// is applied to the environment first without overriding existing variables.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, filepath.Ext(DefaultFileName)))
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if env := os.Getenv(EnvPrefix + "_CONTENT"); env != "" {
		cfg.Content.Root = env
	}
	cfg.Content.Root = ExpandHome(cfg.Content.Root)
	cfg.Content.Authors = ExpandHome(cfg.Content.Authors)
	cfg.Cache.Path = ExpandHome(cfg.Cache.Path)
	cfg.Content.OnMalformed = strings.ToLower(cfg.Content.OnMalformed)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(p string) string {
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}

// WriteFile writes cfg as YAML. An existing file is only replaced when force is set.
func WriteFile(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, out, 0644)
}
