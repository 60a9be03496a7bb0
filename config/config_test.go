package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/fakefs"
	"github.com/brettbedarf/fakefs/internal/codec"
	"github.com/brettbedarf/fakefs/internal/util"
)

// TestNewConfig_WithNilOverride tests that NewConfig creates a config with all default values
// when no override is provided.
func TestNewConfig_WithNilOverride(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(nil)

	require.NotNil(t, cfg)
	assert.Equal(t, createDefaultCfg(), cfg, "must use default values when no config provided")
}

func TestNewConfig_WithAllOverride(t *testing.T) {
	t.Parallel()

	override := createOverride()
	cfg := NewConfig(override)

	expCfg := &Config{
		Cwd:             "/work/project",
		DefaultEncoding: fakefs.Latin1,
		LogLvl:          util.TraceLevel,
	}
	require.NotNil(t, cfg)
	assert.Equal(t, expCfg, cfg, "must override all provided fields")
}

func TestConfig_Merge_LogLvlConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		verboseValue  int
		expectedLevel util.LogLevel
	}{
		{"verbose_1_error", 1, util.ErrorLevel},
		{"verbose_2_warn", 2, util.WarnLevel},
		{"verbose_3_info", 3, util.InfoLevel},
		{"verbose_4_debug", 4, util.DebugLevel},
		{"verbose_5_trace", 5, util.TraceLevel},
		{"verbose_0_clamped_to_1", 0, util.ErrorLevel},
		{"verbose_100_clamped_to_5", 100, util.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override := &ConfigOverride{
				LogLvl: &tt.verboseValue,
			}

			cfg := NewConfig(override)

			assert.Equal(t, tt.expectedLevel, cfg.LogLvl,
				"verbose %d should map to util.LogLevel %v", tt.verboseValue, tt.expectedLevel)
		})
	}
}

func TestConfig_Merge_PartialOverride(t *testing.T) {
	t.Parallel()

	override := &ConfigOverride{
		DefaultEncoding: util.Pointer("hex"),
	}
	cfg := NewConfig(override)

	expCfg := createDefaultCfg()
	expCfg.DefaultEncoding = fakefs.Hex

	assert.Equal(t, expCfg, cfg, "must override all provided fields and leave rest default")
}

func TestConfig_Merge_DefaultEncoding(t *testing.T) {
	t.Parallel()

	t.Run("Canonicalized", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig(&ConfigOverride{DefaultEncoding: util.Pointer("UTF-8")})
		assert.Equal(t, fakefs.UTF8, cfg.DefaultEncoding)

		cfg = NewConfig(&ConfigOverride{DefaultEncoding: util.Pointer("binary")})
		assert.Equal(t, fakefs.Latin1, cfg.DefaultEncoding)
	})

	t.Run("UnknownKeepsPrevious", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Cwd: "/", DefaultEncoding: fakefs.Hex, LogLvl: util.ErrorLevel}
		cfg.Merge(&ConfigOverride{DefaultEncoding: util.Pointer("bogus")})
		assert.Equal(t, fakefs.Hex, cfg.DefaultEncoding)
	})
}

func TestConfigOverride_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&ConfigOverride{}).Validate())
	assert.NoError(t, createOverride().Validate())

	err := (&ConfigOverride{DefaultEncoding: util.Pointer("bogus")}).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrUnknownEncoding)
}

func TestConfig_Merge_CwdNormalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/work/", "/work"},
		{"work/a/../b", "/work/b"},
		{"/", "/"},
		{"//x//y", "/x/y"},
	}
	for _, tt := range tests {
		cfg := NewConfig(&ConfigOverride{Cwd: util.Pointer(tt.in)})
		assert.Equal(t, tt.want, cfg.Cwd, "cwd %q", tt.in)
	}
}

func TestLoadConfigOverrideFile_Valid(t *testing.T) {
	t.Parallel()

	type tc struct {
		ext   string
		build func() (*ConfigOverride, []byte)
	}

	cases := []tc{
		{
			ext: ".yaml",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b, err := yaml.Marshal(o)
				require.NoError(t, err)
				return o, b
			},
		},
		{
			ext: ".yml",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b, err := yaml.Marshal(o)
				require.NoError(t, err)
				return o, b
			},
		},
		{
			ext: ".json",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b, err := json.Marshal(o)
				require.NoError(t, err)
				return o, b
			},
		},
		{
			ext: ".env",
			build: func() (*ConfigOverride, []byte) {
				o := createOverride()
				b := []byte("FAKEFS_CWD=/work/project\n" +
					"FAKEFS_DEFAULT_ENCODING=latin1\n" +
					"# verbosity 1..5\n" +
					"FAKEFS_VERBOSE=5\n")
				return o, b
			},
		},
	}

	for _, c := range cases {
		name := "valid" + c.ext
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			override, data := c.build()
			dir := t.TempDir()
			path := filepath.Join(dir, "override"+c.ext)
			require.NoError(t, os.WriteFile(path, data, 0o600))

			loaded, err := LoadConfigOverrideFile(path)

			require.NoError(t, err)
			require.NotNil(t, loaded)
			assert.Equal(t, *override, *loaded)
		})
	}
}

func TestLoadConfigOverrideFile_InvalidDotenvVerbose(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.env")
	require.NoError(t, os.WriteFile(path, []byte("FAKEFS_VERBOSE=loud\n"), 0o600))

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvVerbose)
}

func TestLoadConfigOverrideFile_UnknownEncoding(t *testing.T) {
	t.Parallel()

	for name, data := range map[string]string{
		"override.env":  EnvDefaultEncoding + "=bogus\n",
		"override.yaml": "default_encoding: bogus\n",
	} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		_, err := LoadConfigOverrideFile(path)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, codec.ErrUnknownEncoding, name)

		_, err = NewConfigFromFile(path)
		assert.ErrorIs(t, err, codec.ErrUnknownEncoding, name)
	}
}

// TestLoadConfigOverrideFile_NonExistentFile tests error handling
// when trying to load a file that doesn't exist.
func TestLoadConfigOverrideFile_NonExistentFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "does_not_exist.yaml")

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err), "expected not exist error, got %v", err)
}

// TestLoadConfigOverrideFile_UnsupportedExtension tests error handling
// for file extensions that aren't supported (.txt, .xml, etc).
func TestLoadConfigOverrideFile_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.txt")
	require.NoError(t, os.WriteFile(path, []byte("cwd: /x"), 0o600))

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config file extension")
}

func TestLoadConfigOverrideFile_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "override.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadConfigOverrideFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config file")
}

func TestNewConfigFromFile(t *testing.T) {
	t.Parallel()

	t.Run("Merges", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		require.NoError(t, os.WriteFile(path, []byte("cwd: /srv\n"), 0o600))

		cfg, err := NewConfigFromFile(path)

		require.NoError(t, err)
		expCfg := createDefaultCfg()
		expCfg.Cwd = "/srv"
		assert.Equal(t, expCfg, cfg)
	})

	t.Run("FileError", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfigFromFile(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
	})
}

func createDefaultCfg() *Config {
	return &Config{
		Cwd:             DefaultCwd(),
		DefaultEncoding: DefaultEncoding,
		LogLvl:          DefaultLogLvl,
	}
}

// createOverride makes a ConfigOverride with all non-default values
func createOverride() *ConfigOverride {
	return &ConfigOverride{
		Cwd:             util.Pointer("/work/project"),
		DefaultEncoding: util.Pointer("latin1"),
		LogLvl:          util.Pointer(TraceVerbose),
	}
}

// Not parallel: replaces the package-wide logger.
func TestConfig_InitLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLvl: util.InfoLevel}
	cfg.InitLogger(&buf)
	t.Cleanup(func() { (&Config{LogLvl: DefaultLogLvl}).InitLogger(nil) })

	logger := util.GetLogger("test")
	logger.Info().Msg("visible")
	logger.Debug().Msg("hidden")

	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), "hidden")
}
