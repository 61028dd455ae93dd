package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvPath names the environment variable pointing at a config file.
const EnvPath = "DOODLE_CONFIG"

const (
	appDir     = "doodle"
	fileName   = "config.rc"
	legacyName = "doodle.rc"
	devName    = ".doodlerc"
)

// ErrNoConfigDir is returned when there is nowhere to save a config.
var ErrNoConfigDir = errors.New("no user config directory")

// Loader finds and reads the RC file.
type Loader struct {
	Version      string // "dev" also searches the working directory
	OverridePath string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Candidates lists the files Path tries, in order: the override path,
// $DOODLE_CONFIG, ./.doodlerc for dev builds, then config.rc and doodle.rc
// under the user config directory.
func (l *Loader) Candidates() []string {
	var out []string
	if l.OverridePath != "" {
		out = append(out, l.OverridePath)
	}
	if p := os.Getenv(EnvPath); p != "" {
		out = append(out, p)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			out = append(out, filepath.Join(wd, devName))
		}
	}
	if dir := userDir(); dir != "" {
		out = append(out, filepath.Join(dir, fileName), filepath.Join(dir, legacyName))
	}
	return out
}

// Path returns the first candidate that is a regular file, or "".
func (l *Loader) Path() string {
	for _, p := range l.Candidates() {
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p
		}
	}
	return ""
}

// SavePath returns the file Save should write: the loaded file when there
// is one, else the override path, else config.rc in the user config
// directory.
func (l *Loader) SavePath() (string, error) {
	if p := l.Path(); p != "" {
		return p, nil
	}
	if l.OverridePath != "" {
		return l.OverridePath, nil
	}
	dir := userDir()
	if dir == "" {
		return "", ErrNoConfigDir
	}
	return filepath.Join(dir, fileName), nil
}

// Load parses the file Path finds. With no file it returns defaults.
func (l *Loader) Load() (*Config, error) {
	path := l.Path()
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

func userDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir)
}
