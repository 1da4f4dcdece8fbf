package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/tabwatch/pkg/tabwatch"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is looked up in the working directory when no path is given.
const ConfigFileName = "tabwatch.yaml"

// Environment variable names.
const (
	EnvDataDir             = "TABWATCH_DATA_DIR"
	EnvMaxFileSizeMB       = "TABWATCH_MAX_FILE_SIZE_MB"
	EnvAllowedExtensions   = "TABWATCH_ALLOWED_EXTENSIONS"
	EnvEncodingDetectBytes = "TABWATCH_ENCODING_DETECT_BYTES"
	EnvLogFile             = "TABWATCH_LOG_FILE"
)

// FileConfig mirrors tabwatch.yaml. Pointer fields distinguish "unset" from zero.
type FileConfig struct {
	DataDir             string   `yaml:"data_dir,omitempty"`
	MaxFileSizeMB       *float64 `yaml:"max_file_size_mb,omitempty"`
	AllowedExtensions   []string `yaml:"allowed_extensions,omitempty"`
	EncodingDetectBytes *int     `yaml:"encoding_detect_bytes,omitempty"`
	LogFile             string   `yaml:"log_file,omitempty"`
}

// Settings is the resolved configuration of one process.
type Settings struct {
	Scope   tabwatch.Scope
	LogFile string
}

// Overrides carries values set explicitly on the command line.
// Nil fields were not set.
type Overrides struct {
	DataDir             *string
	MaxFileSizeMB       *float64
	AllowedExtensions   []string
	EncodingDetectBytes *int
	LogFile             *string
}

// Load reads ConfigFileName from dir.
func Load(dir string) (*FileConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a config file from an explicit path.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", tabwatch.ErrInvalidConfig, filepath.Base(path), err)
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *FileConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{Scope: tabwatch.DefaultScope()}
}

// ApplyFile overlays the values present in cfg.
func (s *Settings) ApplyFile(cfg *FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.DataDir != "" {
		s.Scope.DataDir = cfg.DataDir
	}
	if cfg.MaxFileSizeMB != nil {
		s.Scope.MaxFileSizeMB = *cfg.MaxFileSizeMB
	}
	if len(cfg.AllowedExtensions) > 0 {
		s.Scope.AllowedExtensions = append([]string(nil), cfg.AllowedExtensions...)
	}
	if cfg.EncodingDetectBytes != nil {
		s.Scope.EncodingDetectBytes = *cfg.EncodingDetectBytes
	}
	if cfg.LogFile != "" {
		s.LogFile = cfg.LogFile
	}
}

// ApplyEnv overlays TABWATCH_* variables found through lookup.
// Empty variables are ignored.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvDataDir); ok {
		s.Scope.DataDir = v
	}
	if v, ok := get(EnvMaxFileSizeMB); ok {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", tabwatch.ErrInvalidConfig, EnvMaxFileSizeMB, v)
		}
		s.Scope.MaxFileSizeMB = n
	}
	if v, ok := get(EnvAllowedExtensions); ok {
		s.Scope.AllowedExtensions = SplitList(v)
	}
	if v, ok := get(EnvEncodingDetectBytes); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", tabwatch.ErrInvalidConfig, EnvEncodingDetectBytes, v)
		}
		s.Scope.EncodingDetectBytes = n
	}
	if v, ok := get(EnvLogFile); ok {
		s.LogFile = v
	}
	return nil
}

// ApplyOverrides overlays command-line values.
func (s *Settings) ApplyOverrides(o Overrides) {
	if o.DataDir != nil {
		s.Scope.DataDir = *o.DataDir
	}
	if o.MaxFileSizeMB != nil {
		s.Scope.MaxFileSizeMB = *o.MaxFileSizeMB
	}
	if len(o.AllowedExtensions) > 0 {
		var exts []string
		for _, e := range o.AllowedExtensions {
			exts = append(exts, SplitList(e)...)
		}
		s.Scope.AllowedExtensions = exts
	}
	if o.EncodingDetectBytes != nil {
		s.Scope.EncodingDetectBytes = *o.EncodingDetectBytes
	}
	if o.LogFile != nil {
		s.LogFile = *o.LogFile
	}
}

// ResolveOptions describes where configuration comes from.
type ResolveOptions struct {
	ConfigPath string // Explicit config file; must exist when set
	WorkDir    string // Directory searched for ConfigFileName when ConfigPath is empty
	LookupEnv  func(string) (string, bool)
	Overrides  Overrides
}

// Resolve builds Settings with precedence flags > environment > file > defaults,
// then normalizes and validates the scope.
func Resolve(opts ResolveOptions) (Settings, error) {
	settings := Defaults()

	var (
		cfg *FileConfig
		err error
	)
	switch {
	case opts.ConfigPath != "":
		cfg, err = LoadFile(opts.ConfigPath)
		if errors.Is(err, ErrConfigNotFound) {
			return Settings{}, fmt.Errorf("%w: config file %s does not exist", tabwatch.ErrInvalidConfig, opts.ConfigPath)
		}
	case opts.WorkDir != "":
		cfg, err = Load(opts.WorkDir)
		if errors.Is(err, ErrConfigNotFound) {
			cfg, err = nil, nil
		}
	}
	if err != nil {
		return Settings{}, err
	}
	settings.ApplyFile(cfg)

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := settings.ApplyEnv(lookup); err != nil {
		return Settings{}, err
	}

	settings.ApplyOverrides(opts.Overrides)

	settings.Scope = settings.Scope.Normalized()
	if err := settings.Scope.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// SplitList splits a comma-separated list and drops blank items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
