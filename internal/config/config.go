// Package config loads the site and upload settings used by the trendminer
// command from YAML or TOML files, with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-trendminer/pkg/page"
	"github.com/goliatone/go-trendminer/pkg/upload"
)

// Environment variables consulted by Load. They win over file values.
const (
	EnvBrand       = "TRENDMINER_BRAND"
	EnvCommitURL   = "TRENDMINER_COMMIT_URL"
	EnvMaxUploadMB = "TRENDMINER_MAX_UPLOAD_MB"
)

// Config is the root configuration document.
type Config struct {
	Site   page.Site    `yaml:"site" toml:"site"`
	Upload UploadConfig `yaml:"upload" toml:"upload"`
}

// UploadConfig tunes the upload validation pipeline.
type UploadConfig struct {
	MaxSizeMB int `yaml:"max_size_mb" toml:"max_size_mb"`
	// MaxExpandedMB caps the extracted size of archive uploads. Zero derives
	// the cap from MaxSizeMB.
	MaxExpandedMB int `yaml:"max_expanded_mb" toml:"max_expanded_mb"`
	// SchemaPath points at a YAML schema replacing the embedded one. Relative
	// paths resolve against the config file's directory.
	SchemaPath string `yaml:"schema_path" toml:"schema_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Site:   page.DefaultSite(),
		Upload: UploadConfig{MaxSizeMB: int(upload.DefaultMaxUploadSize >> 20)},
	}
}

// Load reads path and applies environment overrides. An empty path yields
// the defaults plus overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
		if cfg.Upload.SchemaPath != "" && !filepath.IsAbs(cfg.Upload.SchemaPath) {
			cfg.Upload.SchemaPath = filepath.Join(filepath.Dir(path), cfg.Upload.SchemaPath)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Site = cfg.Site.WithDefaults()
	if cfg.Upload.MaxSizeMB <= 0 {
		return Config{}, fmt.Errorf("config: upload max_size_mb must be positive, got %d", cfg.Upload.MaxSizeMB)
	}
	if cfg.Upload.MaxExpandedMB < 0 {
		return Config{}, fmt.Errorf("config: upload max_expanded_mb must not be negative, got %d", cfg.Upload.MaxExpandedMB)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: decode %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("config: decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config: unsupported format %q (want .yaml, .yml or .toml)", ext)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvBrand); ok && strings.TrimSpace(v) != "" {
		cfg.Site.Brand = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvCommitURL); ok && strings.TrimSpace(v) != "" {
		cfg.Site.CommitURL = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvMaxUploadMB); ok && strings.TrimSpace(v) != "" {
		mb, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvMaxUploadMB, err)
		}
		cfg.Upload.MaxSizeMB = mb
	}
	return nil
}

// MaxUploadSize returns the upload limit in bytes.
func (c Config) MaxUploadSize() int64 {
	return int64(c.Upload.MaxSizeMB) << 20
}

// PipelineOptions translates the upload settings into pipeline options,
// loading the custom schema when one is configured.
func (c Config) PipelineOptions() ([]upload.Option, error) {
	options := []upload.Option{upload.WithMaxSize(c.MaxUploadSize())}
	if c.Upload.MaxExpandedMB > 0 {
		options = append(options, upload.WithMaxExpandedSize(int64(c.Upload.MaxExpandedMB)<<20))
	}
	if c.Upload.SchemaPath != "" {
		schema, err := upload.LoadSchema(c.Upload.SchemaPath)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		options = append(options, upload.WithSchema(schema))
	}
	return options, nil
}
