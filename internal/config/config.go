// Package config loads the javadox configuration from .javadox/config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// Dir is the per-project directory holding config, cache and index.
	Dir = ".javadox"
	// FileName is the config file name inside Dir.
	FileName = "config.json"
	// CurrentVersion is the supported config schema version.
	CurrentVersion = 1
	// EnvPrefix prefixes environment overrides, e.g. JAVADOX_LOGGING_LEVEL.
	EnvPrefix = "JAVADOX"
)

// Config represents the complete javadox configuration.
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Sources SourcesConfig `json:"sources" mapstructure:"sources"`
	Render  RenderConfig  `json:"render" mapstructure:"render"`
	Cache   CacheConfig   `json:"cache" mapstructure:"cache"`
	Index   IndexConfig   `json:"index" mapstructure:"index"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// SourcesConfig controls which files the loader reads.
type SourcesConfig struct {
	Roots            []string `json:"roots" mapstructure:"roots"`
	Exclude          []string `json:"exclude" mapstructure:"exclude"`
	MaxFileSizeBytes int64    `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	// Workers bounds parallel parsing; 0 means GOMAXPROCS.
	Workers int `json:"workers" mapstructure:"workers"`
}

// RenderConfig controls regenerated source text.
type RenderConfig struct {
	IndentWidth int  `json:"indentWidth" mapstructure:"indentWidth"`
	UseTabs     bool `json:"useTabs" mapstructure:"useTabs"`
}

// CacheConfig contains parse cache configuration
type CacheConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Dir     string `json:"dir" mapstructure:"dir"`
}

// IndexConfig locates the sqlite declaration index.
type IndexConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Sources: SourcesConfig{
			Roots:            []string{"."},
			Exclude:          []string{"build", "target", "out", "node_modules"},
			MaxFileSizeBytes: 2 * 1024 * 1024,
			Workers:          0,
		},
		Render: RenderConfig{
			IndentWidth: 4,
			UseTabs:     false,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     filepath.Join(Dir, "cache"),
		},
		Index: IndexConfig{
			Path: filepath.Join(Dir, "index.db"),
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Path returns the config file location for a project root.
func Path(root string) string {
	return filepath.Join(root, Dir, FileName)
}

// LoadConfig loads configuration from .javadox/config.json under root.
// Missing keys take their default values and JAVADOX_* environment
// variables override scalar settings. A missing file yields the defaults.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, Dir))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read %s: %w", Path(root), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", Path(root), err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("sources.roots", d.Sources.Roots)
	v.SetDefault("sources.exclude", d.Sources.Exclude)
	v.SetDefault("sources.maxFileSizeBytes", d.Sources.MaxFileSizeBytes)
	v.SetDefault("sources.workers", d.Sources.Workers)
	v.SetDefault("render.indentWidth", d.Render.IndentWidth)
	v.SetDefault("render.useTabs", d.Render.UseTabs)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("index.path", d.Index.Path)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
}

// Save writes the configuration to .javadox/config.json under root.
func (c *Config) Save(root string) error {
	if err := os.MkdirAll(filepath.Join(root, Dir), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(root), append(data, '\n'), 0o644)
}

// Resolve makes a configured path absolute against root.
func Resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &ConfigError{Field: "version", Message: fmt.Sprintf("unsupported config version %d", c.Version)}
	}
	if len(c.Sources.Roots) == 0 {
		return &ConfigError{Field: "sources.roots", Message: "at least one source root is required"}
	}
	if c.Sources.MaxFileSizeBytes <= 0 {
		return &ConfigError{Field: "sources.maxFileSizeBytes", Message: "must be positive"}
	}
	if c.Sources.Workers < 0 {
		return &ConfigError{Field: "sources.workers", Message: "must not be negative"}
	}
	if c.Render.IndentWidth < 1 || c.Render.IndentWidth > 16 {
		return &ConfigError{Field: "render.indentWidth", Message: "must be between 1 and 16"}
	}
	if c.Cache.Enabled && c.Cache.Dir == "" {
		return &ConfigError{Field: "cache.dir", Message: "required when the cache is enabled"}
	}
	if c.Index.Path == "" {
		return &ConfigError{Field: "index.path", Message: "must not be empty"}
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "must be debug, info, warn or error"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
