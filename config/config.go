// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Connection falloff modes.
const (
	FalloffClamp = "clamp" // min((D-d)/D, max_opacity)
	FalloffScale = "scale" // (D-d)/D * max_opacity
)

// Config holds all renderer configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Field       FieldConfig       `yaml:"field"`
	Pointer     PointerConfig     `yaml:"pointer"`
	Connections ConnectionsConfig `yaml:"connections"`
	Cursor      CursorConfig      `yaml:"cursor"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width       int         `yaml:"width"`
	Height      int         `yaml:"height"`
	TargetFPS   int         `yaml:"target_fps"`
	Title       string      `yaml:"title"`
	Transparent bool        `yaml:"transparent"` // Transparent framebuffer
	Passthrough bool        `yaml:"passthrough"` // Let pointer input fall through to windows below
	Resizable   bool        `yaml:"resizable"`
	Undecorated bool        `yaml:"undecorated"`
	MSAA        bool        `yaml:"msaa"`
	Background  ColorConfig `yaml:"background"`
}

// FieldConfig holds particle generation parameters.
type FieldConfig struct {
	MaxCount       int           `yaml:"max_count"`
	DensityDivisor float64       `yaml:"density_divisor"` // Viewport area per particle
	Drift          float64       `yaml:"drift"`           // Each velocity axis is sampled in [-drift, drift)
	RadiusMin      float64       `yaml:"radius_min"`
	RadiusMax      float64       `yaml:"radius_max"`
	OpacityMin     float64       `yaml:"opacity_min"`
	OpacityMax     float64       `yaml:"opacity_max"`
	Palette        []ColorConfig `yaml:"palette"`
	GlowFactor     float64       `yaml:"glow_factor"` // Glow extent as a multiple of radius
	GlowAlpha      float64       `yaml:"glow_alpha"`
}

// PointerConfig holds pointer repulsion parameters.
type PointerConfig struct {
	Radius     float64 `yaml:"radius"`
	ForceScale float64 `yaml:"force_scale"`
	Continuous bool    `yaml:"continuous"` // Apply every frame instead of once per move
	MaxSpeed   float64 `yaml:"max_speed"`  // 0 = unbounded
}

// ConnectionsConfig holds proximity line parameters.
type ConnectionsConfig struct {
	Distance   float64     `yaml:"distance"`
	MaxOpacity float64     `yaml:"max_opacity"`
	LineWidth  float64     `yaml:"line_width"`
	Falloff    string      `yaml:"falloff"`
	Color      ColorConfig `yaml:"color"`
}

// CursorConfig holds the cursor follower parameters.
type CursorConfig struct {
	Enabled      bool        `yaml:"enabled"`
	Radius       float64     `yaml:"radius"`
	Width        float64     `yaml:"width"`
	Follow       float64     `yaml:"follow"` // Fraction of the remaining distance covered per frame
	PressedScale float64     `yaml:"pressed_scale"`
	Color        ColorConfig `yaml:"color"`
	Opacity      float64     `yaml:"opacity"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// ColorConfig is an opaque RGB color.
type ColorConfig struct {
	Name string `yaml:"name,omitempty"`
	R    uint8  `yaml:"r"`
	G    uint8  `yaml:"g"`
	B    uint8  `yaml:"b"`
}

// RGBA returns the color with the given alpha in [0, 1].
func (c ColorConfig) RGBA(alpha float64) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: alphaByte(alpha)}
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Palette           []color.RGBA // Opaque palette colors
	StatsWindowFrames int          // Telemetry.StatsWindow * Screen.TargetFPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse merges data over the embedded defaults, computes derived values and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Unmarshal into same struct - only overwrites fields present in data
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports every field that would make the renderer misbehave.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width >= 0 && c.Screen.Height >= 0, "screen: negative size %dx%d", c.Screen.Width, c.Screen.Height)
	check(c.Screen.TargetFPS > 0, "screen.target_fps must be positive, got %d", c.Screen.TargetFPS)

	f := c.Field
	check(f.MaxCount >= 0, "field.max_count must not be negative, got %d", f.MaxCount)
	check(f.DensityDivisor > 0, "field.density_divisor must be positive, got %g", f.DensityDivisor)
	check(f.Drift >= 0, "field.drift must not be negative, got %g", f.Drift)
	check(f.RadiusMin > 0 && f.RadiusMin <= f.RadiusMax, "field: radius range [%g, %g] is invalid", f.RadiusMin, f.RadiusMax)
	check(f.OpacityMin >= 0 && f.OpacityMin <= f.OpacityMax && f.OpacityMax <= 1,
		"field: opacity range [%g, %g] is invalid", f.OpacityMin, f.OpacityMax)
	check(len(f.Palette) > 0 && len(f.Palette) <= 256, "field.palette needs 1-256 colors, got %d", len(f.Palette))
	check(f.GlowFactor >= 0, "field.glow_factor must not be negative, got %g", f.GlowFactor)
	check(f.GlowAlpha >= 0 && f.GlowAlpha <= 1, "field.glow_alpha must be in [0, 1], got %g", f.GlowAlpha)

	p := c.Pointer
	check(p.Radius >= 0, "pointer.radius must not be negative, got %g", p.Radius)
	check(p.MaxSpeed >= 0, "pointer.max_speed must not be negative, got %g", p.MaxSpeed)

	cn := c.Connections
	check(cn.Distance >= 0, "connections.distance must not be negative, got %g", cn.Distance)
	check(cn.MaxOpacity >= 0 && cn.MaxOpacity <= 1, "connections.max_opacity must be in [0, 1], got %g", cn.MaxOpacity)
	check(cn.LineWidth > 0, "connections.line_width must be positive, got %g", cn.LineWidth)
	check(cn.Falloff == FalloffClamp || cn.Falloff == FalloffScale,
		"connections.falloff must be %q or %q, got %q", FalloffClamp, FalloffScale, cn.Falloff)

	cu := c.Cursor
	check(cu.Follow > 0 && cu.Follow <= 1, "cursor.follow must be in (0, 1], got %g", cu.Follow)
	check(cu.Radius >= 0, "cursor.radius must not be negative, got %g", cu.Radius)

	check(c.Telemetry.StatsWindow > 0, "telemetry.stats_window must be positive, got %g", c.Telemetry.StatsWindow)

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Palette = make([]color.RGBA, len(c.Field.Palette))
	for i, col := range c.Field.Palette {
		c.Derived.Palette[i] = col.RGBA(1)
	}

	frames := int(c.Telemetry.StatsWindow * float64(c.Screen.TargetFPS))
	if frames < 1 {
		frames = 1
	}
	c.Derived.StatsWindowFrames = frames
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Field.Palette = slices.Clone(c.Field.Palette)
	out.Derived.Palette = slices.Clone(c.Derived.Palette)
	return &out
}

// Refresh recomputes derived values after in-place edits.
func (c *Config) Refresh() {
	c.computeDerived()
}

// SameShape reports whether two field configs generate statistically identical particle sets.
// A change in shape requires regenerating the field.
func (f FieldConfig) SameShape(o FieldConfig) bool {
	return f.MaxCount == o.MaxCount &&
		f.DensityDivisor == o.DensityDivisor &&
		f.Drift == o.Drift &&
		f.RadiusMin == o.RadiusMin && f.RadiusMax == o.RadiusMax &&
		f.OpacityMin == o.OpacityMin && f.OpacityMax == o.OpacityMax &&
		slices.Equal(f.Palette, o.Palette)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := c.MarshalYAMLBytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// MarshalYAMLBytes encodes the configuration as YAML.
func (c *Config) MarshalYAMLBytes() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

func alphaByte(a float64) uint8 {
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(a*255 + 0.5)
}
