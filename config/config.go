package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/fakefs"
	"github.com/brettbedarf/fakefs/internal/codec"
	"github.com/brettbedarf/fakefs/internal/util"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultEncoding is used by string reads when neither the call nor the file names one
	DefaultEncoding = fakefs.UTF8

	// DefaultLogLvl keeps the engine quiet inside test runs
	DefaultLogLvl = util.WarnLevel
)

// Config contains runtime configuration values for a fake filesystem instance.
type Config struct {
	Cwd             string          // Working directory relative paths resolve against (Default process working dir)
	DefaultEncoding fakefs.Encoding // Fallback text encoding for string reads (Default utf8)
	LogLvl          util.LogLevel   // Minimum level the engine logs at (Default warn)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	Cwd             *string `yaml:"cwd,omitempty" json:"cwd,omitempty"`
	DefaultEncoding *string `yaml:"default_encoding,omitempty" json:"default_encoding,omitempty"`
	// LogLvl is a verbosity between 1 (error) and 5 (trace); out of range values are clamped
	LogLvl *int `yaml:"log_lvl,omitempty" json:"log_lvl,omitempty"`
}

// DefaultCwd returns the process working directory in slash form, or "/"
// when it cannot be determined.
func DefaultCwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "/"
	}
	return normalizeCwd(wd)
}

func normalizeCwd(cwd string) string {
	cwd = filepath.ToSlash(cwd)
	// drop a Windows volume name so "C:/work" resolves as "/work"
	if vol := filepath.VolumeName(cwd); vol != "" {
		cwd = strings.TrimPrefix(cwd, filepath.ToSlash(vol))
	}
	if !path.IsAbs(cwd) {
		cwd = "/" + cwd
	}
	return path.Clean(cwd)
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		Cwd:             DefaultCwd(),
		DefaultEncoding: DefaultEncoding,
		LogLvl:          DefaultLogLvl,
	}
}

// NewConfig creates a Config from defaults with override applied when non-nil.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
// An unknown default encoding is logged and skipped; use [ConfigOverride.Validate]
// to reject it instead.
func (c *Config) Merge(override *ConfigOverride) {
	if override.Cwd != nil {
		c.Cwd = normalizeCwd(*override.Cwd)
	}
	if override.DefaultEncoding != nil {
		enc, err := codec.Canonical(fakefs.Encoding(*override.DefaultEncoding))
		if err != nil {
			logger := util.GetLeveledLogger("Config", c.LogLvl)
			logger.Warn().Err(err).
				Str("keep", string(c.DefaultEncoding)).Msg("Ignoring default encoding override")
		} else {
			c.DefaultEncoding = enc
		}
	}
	if override.LogLvl != nil {
		c.LogLvl = verboseToLogLvl(*override.LogLvl)
	}
}

// InitLogger points the package-wide logger at out (stderr when nil) at the
// configured level. Call it once, e.g. from TestMain, to see engine logs.
func (c *Config) InitLogger(out io.Writer) {
	util.InitializeLogger(c.LogLvl, out)
}

func verboseToLogLvl(verbose int) util.LogLevel {
	verbose = max(ErrorVerbose, min(verbose, TraceVerbose))
	lvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return lvls[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports YAML (.yaml, .yml), JSON (.json) and dotenv (.env) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".env":
		if err := unmarshalDotenv(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	if err := override.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &override, nil
}

// Validate reports override values Merge could not apply.
func (o *ConfigOverride) Validate() error {
	if o.DefaultEncoding != nil {
		if _, err := codec.Canonical(fakefs.Encoding(*o.DefaultEncoding)); err != nil {
			return fmt.Errorf("default_encoding: %w", err)
		}
	}
	return nil
}

func unmarshalDotenv(data []byte, override *ConfigOverride) error {
	vals, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return err
	}
	if v, ok := vals[EnvCwd]; ok {
		override.Cwd = &v
	}
	if v, ok := vals[EnvDefaultEncoding]; ok {
		override.DefaultEncoding = &v
	}
	if v, ok := vals[EnvVerbose]; ok {
		verbose, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvVerbose, v, err)
		}
		override.LogLvl = &verbose
	}
	return nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
