// Package config loads the provgraph configuration.
//
// Values are resolved in order: built-in defaults, the YAML file, then
// PROVGRAPH_* environment variables. A .env file in the working directory
// is loaded first and never overrides variables that are already set.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/geoknoesis/prov-go/rdf"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
	Export ExportConfig `yaml:"export"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"` // memory | sqlite
	Path   string `yaml:"path"`   // database file for sqlite
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // json | text
	File   string `yaml:"file"`   // empty logs to stderr
}

type ExportConfig struct {
	Format   string            `yaml:"format"`
	Prefixes map[string]string `yaml:"prefixes"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Store: StoreConfig{Driver: DriverSQLite, Path: "provgraph.db"},
		Log:   LogConfig{Level: "info", Format: "text"},
		Export: ExportConfig{
			Format: string(rdf.FormatTriG),
			Prefixes: map[string]string{
				"prov": "http://www.w3.org/ns/prov#",
				"xsd":  "http://www.w3.org/2001/XMLSchema#",
			},
		},
	}
}

// Load reads path over the defaults. An empty path skips the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		name   string
		target *string
	}{
		{"PROVGRAPH_STORE_DRIVER", &cfg.Store.Driver},
		{"PROVGRAPH_STORE_PATH", &cfg.Store.Path},
		{"PROVGRAPH_LOG_LEVEL", &cfg.Log.Level},
		{"PROVGRAPH_LOG_FORMAT", &cfg.Log.Format},
		{"PROVGRAPH_LOG_FILE", &cfg.Log.File},
		{"PROVGRAPH_EXPORT_FORMAT", &cfg.Export.Format},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.name); v != "" {
			*o.target = v
		}
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.Path == "" {
			errs = append(errs, errors.New("store.path is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver %q: must be %s or %s", c.Store.Driver, DriverMemory, DriverSQLite))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q: must be debug, info, warn or error", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format %q: must be json or text", c.Log.Format))
	}
	if _, ok := rdf.ParseFormat(c.Export.Format); !ok {
		errs = append(errs, fmt.Errorf("export.format %q is not a supported RDF format", c.Export.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
