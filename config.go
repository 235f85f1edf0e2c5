package fractal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scheme selects the palette used to color escape-time iteration counts.
type Scheme string

const (
	SchemeRainbow   Scheme = "rainbow"
	SchemeFire      Scheme = "fire"
	SchemeOcean     Scheme = "ocean"
	SchemeGrayscale Scheme = "grayscale"
)

// ParseScheme maps a user-supplied name to a Scheme.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(s)) {
	case SchemeRainbow, SchemeFire, SchemeOcean, SchemeGrayscale:
		return Scheme(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown color scheme %q", s)
}

// Complex is a JSON/YAML-friendly complex constant.
type Complex struct {
	Real float64 `json:"real" yaml:"real"`
	Imag float64 `json:"imag" yaml:"imag"`
}

// Complex128 returns the constant as a complex128.
func (z Complex) Complex128() complex128 {
	return complex(z.Real, z.Imag)
}

// Config describes a single fractal generation. It is a value type: build
// one, hand it to a generator, discard it. Generators never mutate it.
type Config struct {
	Width         int     `json:"width" yaml:"width"`
	Height        int     `json:"height" yaml:"height"`
	MaxIterations int     `json:"max_iterations" yaml:"max_iterations"`
	Zoom          float64 `json:"zoom" yaml:"zoom"`
	CenterX       float64 `json:"center_x" yaml:"center_x"`
	CenterY       float64 `json:"center_y" yaml:"center_y"`
	Scheme        Scheme  `json:"color_scheme" yaml:"color_scheme"`
	JuliaC        Complex `json:"julia_c" yaml:"julia_c"`
	EscapeRadius  float64 `json:"escape_radius" yaml:"escape_radius"`
}

// DefaultConfig returns the standard full-set view: 800×600, 100 iterations,
// rainbow palette, the classic Julia constant −0.7+0.27015i.
func DefaultConfig() Config {
	return Config{
		Width:         800,
		Height:        600,
		MaxIterations: 100,
		Zoom:          1.0,
		CenterX:       0.0,
		CenterY:       0.0,
		Scheme:        SchemeRainbow,
		JuliaC:        Complex{Real: -0.7, Imag: 0.27015},
		EscapeRadius:  2.0,
	}
}

// ErrInvalidConfig is wrapped by all configuration validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the numeric invariants. Generators call it before any
// pixel work, so an invalid config never yields a partial raster.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max_iterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	case c.Zoom <= 0:
		return fmt.Errorf("%w: zoom must be positive, got %g", ErrInvalidConfig, c.Zoom)
	case c.EscapeRadius <= 0:
		return fmt.Errorf("%w: escape_radius must be positive, got %g", ErrInvalidConfig, c.EscapeRadius)
	}
	return nil
}

// LoadConfig reads a config from a .json, .yaml or .yml file. Fields absent
// from the file keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("unsupported config extension %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SaveConfig writes the config to a .json, .yaml or .yml file.
func SaveConfig(path string, cfg Config) error {
	var (
		data []byte
		err  error
	)
	switch ext := filepath.Ext(path); ext {
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("unsupported config extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
