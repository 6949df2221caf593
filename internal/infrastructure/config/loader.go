// Package config loads YAML configuration from ~/.pamash/config.yaml
// (overridable via PAMASH_CONFIG), writing embedded defaults on first use.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/pamash/assets"
	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/pkg/filesystem"
	"github.com/doeshing/pamash/internal/ports"
)

// FileLoader loads YAML configuration from disk.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, 0o600); err != nil {
				return domain.Config{}, err
			}
			data = assets.DefaultConfigYAML
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("PAMASH_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".pamash", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8000"
	}
	if cfg.Server.TimeoutSeconds == 0 {
		cfg.Server.TimeoutSeconds = 10
	}
	if cfg.Poller.IntervalSeconds == 0 {
		cfg.Poller.IntervalSeconds = 3
	}
	if cfg.Notifications.DisplayMillis == 0 {
		cfg.Notifications.DisplayMillis = 5000
	}
	if cfg.Notifications.FadeMillis == 0 {
		cfg.Notifications.FadeMillis = 300
	}
	if cfg.Terminal.Banner == "" {
		cfg.Terminal.Banner = "PAMA Secure Shell v2.1.0"
	}
	if cfg.Terminal.Hostname == "" {
		cfg.Terminal.Hostname = "pama-secure-node-01"
	}
	if cfg.Logging.Backend == "" {
		cfg.Logging.Backend = "std"
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
