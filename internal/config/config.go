// Package config loads the project configuration stored under .dvc/config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	stageerr "github.com/next-trace/scg-pipeline-error/error"
)

// ErrRemoteNotFound is returned when a remote name has no config section.
var ErrRemoteNotFound = errors.New("remote not configured")

// SupportedSchemes lists remote URL schemes with a known handler.
// A URL without a scheme is a local path.
var SupportedSchemes = []string{"local", "s3", "gs", "azure", "ssh", "hdfs", "http", "https"}

type Config struct {
	Core    CoreConfig        `toml:"core"`
	Remotes map[string]Remote `toml:"remote"`
}

type CoreConfig struct {
	Remote  string `toml:"remote"`
	Project string `toml:"project"`
}

type Remote struct {
	Name string `toml:"-"`
	URL  string `toml:"url"`
}

// Scheme returns the URL scheme of r, "local" when it has none.
func (r Remote) Scheme() string {
	u, err := url.Parse(r.URL)
	if err != nil || u.Scheme == "" || isWindowsDrive(u.Scheme) {
		return "local"
	}
	return strings.ToLower(u.Scheme)
}

func isWindowsDrive(scheme string) bool { return len(scheme) == 1 }

func Default() *Config {
	return &Config{Remotes: map[string]Remote{}}
}

// Load reads the TOML config at path. A missing file yields Default.
// Read or decode failures are reported as a parser error caused by the
// underlying failure.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, stageerr.NewParserError(stageerr.WithCause(fmt.Errorf("read config %s: %w", path, err)))
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, stageerr.NewParserError(stageerr.WithCause(fmt.Errorf("decode config %s: %w", path, err)))
	}
	if cfg.Remotes == nil {
		cfg.Remotes = map[string]Remote{}
	}
	for name, r := range cfg.Remotes {
		r.Name = name
		cfg.Remotes[name] = r
	}

	return cfg, nil
}

// Remote resolves a named remote and checks that its scheme is supported.
func (c *Config) Remote(name string) (Remote, error) {
	r, ok := c.Remotes[name]
	if !ok {
		return Remote{}, fmt.Errorf("remote %q: %w", name, ErrRemoteNotFound)
	}
	if !slices.Contains(SupportedSchemes, r.Scheme()) {
		return Remote{}, stageerr.NewUnsupportedRemote(r.URL)
	}
	return r, nil
}

// DefaultRemote resolves core.remote. ok is false when none is set.
func (c *Config) DefaultRemote() (r Remote, ok bool, err error) {
	if c.Core.Remote == "" {
		return Remote{}, false, nil
	}
	r, err = c.Remote(c.Core.Remote)
	return r, err == nil, err
}

// RemoteNames returns the configured remote names, sorted.
func (c *Config) RemoteNames() []string {
	names := make([]string, 0, len(c.Remotes))
	for name := range c.Remotes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
