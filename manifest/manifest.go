// Package manifest handles tock.toml host configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by Load and FindAndLoad.
const FileName = "tock.toml"

// Manifest represents a tock.toml configuration.
type Manifest struct {
	Time  TimeConfig  `toml:"time"`
	Log   LogConfig   `toml:"log"`
	Store StoreConfig `toml:"store"`

	// Dir is the directory containing the tock.toml file (set at load time).
	Dir string `toml:"-"`
}

// TimeConfig configures the installed Time class.
type TimeConfig struct {
	// Zone overrides the local zone. Empty means TZ / the system zone.
	Zone     string `toml:"zone"`
	Warnings bool   `toml:"warnings"`
}

// LogConfig configures commonlog.
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// StoreConfig locates the snapshot database.
type StoreConfig struct {
	Path string `toml:"path"`
}

// Default returns the configuration used when no tock.toml exists.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Store.Path == "" {
		m.Store.Path = "tock.db"
	}
}

// Load parses a tock.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse error in %s: unknown key %s", path, undecoded[0])
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	m.applyDefaults()

	if _, err := m.Location(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find a tock.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Location resolves [time] zone. An empty zone yields time.Local.
func (m *Manifest) Location() (*time.Location, error) {
	if m.Time.Zone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(m.Time.Zone)
	if err != nil {
		return nil, fmt.Errorf("invalid [time] zone %q: %w", m.Time.Zone, err)
	}
	return loc, nil
}

// StorePath returns the snapshot database path, relative paths being
// resolved against Dir.
func (m *Manifest) StorePath() string {
	if filepath.IsAbs(m.Store.Path) || m.Dir == "" {
		return m.Store.Path
	}
	return filepath.Join(m.Dir, m.Store.Path)
}

// LogFile returns the log path for commonlog.Configure, or nil for stderr.
func (m *Manifest) LogFile() *string {
	if m.Log.File == "" {
		return nil
	}
	path := m.Log.File
	if !filepath.IsAbs(path) && m.Dir != "" {
		path = filepath.Join(m.Dir, path)
	}
	return &path
}
