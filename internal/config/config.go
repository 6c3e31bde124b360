package config

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"iconkit/internal/imageio"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. ICONKIT_THRESHOLD.
const EnvPrefix = "ICONKIT"

// Edge cleanup modes.
const (
	EdgeNone      = "none"
	EdgeAntialias = "antialias"
	EdgeSoft      = "soft"
	EdgeStrict    = "strict"
)

// Config holds all configurable paths and processing settings.
type Config struct {
	// Paths
	InputDir  string `mapstructure:"input_dir"`
	OutputDir string `mapstructure:"output_dir"`

	// Background removal
	Threshold int     `mapstructure:"threshold"`  // r,g,b <= threshold is background
	EdgeClean string  `mapstructure:"edge_clean"` // none|antialias|soft|strict
	Despeckle float64 `mapstructure:"despeckle"`  // min island ratio, 0 = off
	TrimAlpha *int    `mapstructure:"trim_alpha"` // alpha > trim_alpha counts as visible
	NoTrim    bool    `mapstructure:"no_trim"`

	// Output
	Formats      []string `mapstructure:"formats"`
	Size         int      `mapstructure:"size"`          // 0 = keep trimmed size
	FlattenColor string   `mapstructure:"flatten_color"` // "#rrggbb" writes an opaque _ios.png variant
	Workers      int      `mapstructure:"workers"`
	Manifest     string   `mapstructure:"manifest"` // manifest file name, .json or .yaml
}

// Load reads a JSON, YAML or TOML config file and returns Config.
// ICONKIT_* environment variables override values from the file.
// Fields not set anywhere keep their zero values.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindKeys(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.InputDir != "" && !filepath.IsAbs(cfg.InputDir) {
		cfg.InputDir = filepath.Join(filepath.Dir(path), cfg.InputDir)
	}
	if cfg.OutputDir != "" && !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(filepath.Dir(path), cfg.OutputDir)
	}
	return cfg, nil
}

// bindKeys registers every key so AutomaticEnv works for keys absent from the file.
func bindKeys(v *viper.Viper) {
	for _, k := range []string{
		"input_dir", "output_dir", "threshold", "edge_clean", "despeckle",
		"trim_alpha", "no_trim", "formats", "size", "flatten_color", "workers", "manifest",
	} {
		v.BindEnv(k)
	}
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Threshold > 0 {
		c.Threshold = flags.Threshold
	}
	if flags.EdgeClean != "" {
		c.EdgeClean = flags.EdgeClean
	}
	if len(flags.Formats) > 0 {
		c.Formats = flags.Formats
	}
	if flags.Size > 0 {
		c.Size = flags.Size
	}
	if flags.FlattenColor != "" {
		c.FlattenColor = flags.FlattenColor
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.TrimAlpha != nil {
		c.TrimAlpha = flags.TrimAlpha
	}
	if flags.NoTrim {
		c.NoTrim = true
	}

	if c.InputDir == "" {
		c.InputDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, "processed")
	}

	if c.Threshold <= 0 {
		c.Threshold = 30
	}
	if c.EdgeClean == "" {
		c.EdgeClean = EdgeNone
	}
	if c.TrimAlpha == nil {
		t := 10
		c.TrimAlpha = &t
	}
	if len(c.Formats) == 0 {
		c.Formats = []string{"png"}
	}
	for i, f := range c.Formats {
		c.Formats[i] = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Manifest == "" {
		c.Manifest = "manifest.json"
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir     string
	OutputDir    string
	Threshold    int
	EdgeClean    string
	Formats      []string
	Size         int
	FlattenColor string
	Workers      int
	TrimAlpha    *int
	NoTrim       bool
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("config: threshold %d out of range 0-255", c.Threshold)
	}
	if c.TrimAlpha != nil && (*c.TrimAlpha < 0 || *c.TrimAlpha > 255) {
		return fmt.Errorf("config: trim_alpha %d out of range 0-255", *c.TrimAlpha)
	}
	if c.Size < 0 || c.Size > 4096 {
		return fmt.Errorf("config: size %d out of range 0-4096", c.Size)
	}
	switch c.EdgeClean {
	case EdgeNone, EdgeAntialias, EdgeSoft, EdgeStrict:
	default:
		return fmt.Errorf("config: unknown edge_clean %q", c.EdgeClean)
	}
	if c.Despeckle < 0 || c.Despeckle >= 1 {
		return fmt.Errorf("config: despeckle %g out of range [0,1)", c.Despeckle)
	}
	for _, f := range c.Formats {
		if !imageio.IsOutputFormat(f) {
			return fmt.Errorf("config: unsupported format %q (want one of %s)", f, strings.Join(imageio.Formats, ", "))
		}
	}
	if c.FlattenColor != "" {
		if _, err := ParseHex(c.FlattenColor); err != nil {
			return err
		}
	}
	return nil
}

// ErrBadColor is returned by ParseHex for malformed input.
var ErrBadColor = errors.New("config: bad color")

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa" (leading # optional).
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
