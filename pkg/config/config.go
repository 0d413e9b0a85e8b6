// Package config loads lolmark.hcl / lolmark.yaml project settings.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// FileNames are tried in order by Discover.
var FileNames = []string{"lolmark.hcl", "lolmark.yaml", "lolmark.yml"}

const (
	FormatConsole = "console"
	FormatJSON    = "json"

	DefaultLevel    = "warn"
	DefaultDebounce = 100 * time.Millisecond
)

type Config struct {
	Output *OutputBlock `json:"output,omitempty" hcl:"output,block" yaml:"output,omitempty"`
	Log    *LogBlock    `json:"log,omitempty" hcl:"log,block" yaml:"log,omitempty"`
	Watch  *WatchBlock  `json:"watch,omitempty" hcl:"watch,block" yaml:"watch,omitempty"`
	Build  *BuildBlock  `json:"build,omitempty" hcl:"build,block" yaml:"build,omitempty"`
}

type OutputBlock struct {
	// Dir receives artifacts; empty means next to each input
	Dir  string `json:"dir,omitempty" hcl:"dir,optional" yaml:"dir,omitempty"`
	Open bool   `json:"open,omitempty" hcl:"open,optional" yaml:"open,omitempty"`
}

type LogBlock struct {
	Level  string `json:"level,omitempty" hcl:"level,optional" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" hcl:"format,optional" yaml:"format,omitempty"`
}

type WatchBlock struct {
	// Debounce is a Go duration string such as "250ms"
	Debounce string `json:"debounce,omitempty" hcl:"debounce,optional" yaml:"debounce,omitempty"`
}

type BuildBlock struct {
	Jobs      int  `json:"jobs,omitempty" hcl:"jobs,optional" yaml:"jobs,omitempty"`
	KeepGoing bool `json:"keep_going,omitempty" hcl:"keep_going,optional" yaml:"keep_going,omitempty"`
}

// Default returns the settings used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Output == nil {
		c.Output = &OutputBlock{}
	}
	if c.Log == nil {
		c.Log = &LogBlock{}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = FormatConsole
	}
	if c.Watch == nil {
		c.Watch = &WatchBlock{}
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = DefaultDebounce.String()
	}
	if c.Build == nil {
		c.Build = &BuildBlock{}
	}
	if c.Build.Jobs == 0 {
		c.Build.Jobs = 1
	}
}

// Validate checks values a decoder cannot.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return errors.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case FormatConsole, FormatJSON:
	default:
		return errors.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return errors.Errorf("watch.debounce: %w", err)
	}
	if d < 0 {
		return errors.Errorf("watch.debounce: must not be negative")
	}
	if c.Build.Jobs < 1 {
		return errors.Errorf("build.jobs: must be at least 1, got %d", c.Build.Jobs)
	}
	return nil
}

// Level returns the parsed log level. Call after Validate.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.WarnLevel
	}
	return lvl
}

// Debounce returns the parsed watch debounce. Call after Validate.
func (c *Config) Debounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return DefaultDebounce
	}
	return d
}

// Load reads path as YAML when it ends in .yaml or .yml and as HCL
// otherwise. HCL files may read environment variables through env.NAME.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
	} else {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCL(data, path)
		if diags.HasErrors() {
			return nil, errors.Errorf("parsing HCL: %s", diags.Error())
		}

		ctx := &hcl.EvalContext{
			Variables: map[string]cty.Value{
				"env": environment(),
			},
		}
		if diags := gohcl.DecodeBody(file.Body, ctx, &cfg); diags.HasErrors() {
			return nil, errors.Errorf("decoding HCL: %s", diags.Error())
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Discover loads the first of FileNames present in dir. It returns the
// defaults and an empty path when there is none.
func Discover(fs afero.Fs, dir string) (*Config, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		ok, err := afero.Exists(fs, path)
		if err != nil {
			return nil, "", errors.Errorf("checking %s: %w", path, err)
		}
		if !ok {
			continue
		}
		cfg, err := Load(fs, path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return Default(), "", nil
}

func environment() cty.Value {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return cty.ObjectVal(vars)
}
