// Package config loads the optional lilac.yaml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// Config represents the optional lilac.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Engine EngineConfig `yaml:"engine"`
	Debug  DebugConfig  `yaml:"debug"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
	// Stylesheet is a path to the application stylesheet, resolved
	// relative to the project root.
	Stylesheet string `yaml:"stylesheet,omitempty"`
}

// EngineConfig contains toolkit settings.
type EngineConfig struct {
	Version string `yaml:"version,omitempty"`
}

// DebugConfig contains diagnostic settings.
type DebugConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`
	// LayoutTrace enables per-pass layout cache logging.
	LayoutTrace bool `yaml:"layout_trace,omitempty"`
	// VerboseErrors includes stack traces in reported errors.
	VerboseErrors bool `yaml:"verbose_errors,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root          string
	ModulePath    string
	AppName       string
	Stylesheet    string
	EngineVersion string
	Debug         DebugConfig
}

// LoadOptional reads lilac.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "lilac.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read lilac.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse lilac.yaml: %w", err)
	}

	return &cfg, nil
}

// Parse decodes a lilac.yaml document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse lilac.yaml: %w", err)
	}
	return &cfg, nil
}

// Resolve loads lilac.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		parts := strings.Split(modulePath, "/")
		appName = parts[len(parts)-1]
	}

	engineVersion := strings.TrimSpace(cfg.Engine.Version)
	if engineVersion == "" {
		engineVersion = "latest"
	}

	if cfg.Debug.LogLevel != "" {
		if _, err := log.ParseLevel(cfg.Debug.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid debug.log_level %q", cfg.Debug.LogLevel)
		}
	}

	return &Resolved{
		Root:          dir,
		ModulePath:    modulePath,
		AppName:       appName,
		Stylesheet:    strings.TrimSpace(cfg.App.Stylesheet),
		EngineVersion: engineVersion,
		Debug:         cfg.Debug,
	}, nil
}

// ApplyLogLevel sets the global log level from the resolved configuration.
// An empty level leaves the default in place.
func (r *Resolved) ApplyLogLevel() {
	if r.Debug.LogLevel == "" {
		return
	}
	level, err := log.ParseLevel(r.Debug.LogLevel)
	if err != nil {
		return
	}
	log.SetLevel(level)
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}
