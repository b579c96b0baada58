package config

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
)

// EnvPath names the environment variable that points at a config file.
const EnvPath = "SKETCHPAD_CONFIG"

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Explicit path, usually from -config
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first configuration file found, or returns defaults when
// there is none.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.candidates() {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath is where "config save" writes when no path is given.
func (l *Loader) DefaultPath() string {
	if l.OverridePath != "" {
		return l.OverridePath
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sketchpad", "config")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sketchpad", "config")
}

func (l *Loader) candidates() []string {
	paths := []string{l.OverridePath, os.Getenv(EnvPath)}
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		paths = append(paths, filepath.Join(wd, ".sketchpadrc"))
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		paths = append(paths, filepath.Join(dir, "sketchpad", "config"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "sketchpad", "config"))
	}
	return append(paths, "/etc/xdg/sketchpad/config")
}

// LoadStamp decodes the stamp image named in the [sketch] section. It
// returns nil without error when no stamp is configured.
func (s Sketch) LoadStamp() (image.Image, error) {
	if s.Stamp == "" {
		return nil, nil
	}
	f, err := os.Open(s.Stamp)
	if err != nil {
		return nil, fmt.Errorf("open stamp: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode stamp %s: %w", s.Stamp, err)
	}
	return img, nil
}
