// Package fractal generates escape-time and recursive-subdivision fractals
// as RGB rasters. Each generator is a pure function of its config: same
// config in, byte-identical raster out, with no state shared between calls.
package fractal

import (
	"context"
	"fmt"
	"image"
	"strings"
)

// Variant names one of the four generators.
type Variant string

const (
	VariantMandelbrot Variant = "mandelbrot"
	VariantJulia      Variant = "julia"
	VariantSierpinski Variant = "sierpinski"
	VariantDragon     Variant = "dragon"
)

// ParseVariant maps a user-supplied name to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(s)) {
	case VariantMandelbrot, VariantJulia, VariantSierpinski, VariantDragon:
		return Variant(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown fractal variant %q", s)
}

// Generator produces a fresh raster from the config it was built with.
// Generate validates the config before any pixel work and honors context
// cancellation at scanline/recursion granularity. The returned raster is
// owned by the caller; the generator keeps no reference.
type Generator interface {
	Generate(ctx context.Context) (*Raster, error)
}

// TileRenderer is implemented by the escape-time generators, whose per-pixel
// independence lets any rectangle of the global image be rendered on its
// own. The recursive generators draw whole shapes and do not implement it.
type TileRenderer interface {
	RenderTile(tile image.Rectangle) (*image.RGBA, error)
}

// New returns the generator for a variant. The recursive variants get their
// default depths; use NewSierpinski or NewDragonCurve to pick a depth.
func New(v Variant, cfg Config) (Generator, error) {
	switch v {
	case VariantMandelbrot:
		return NewMandelbrot(cfg), nil
	case VariantJulia:
		return NewJulia(cfg), nil
	case VariantSierpinski:
		return NewSierpinski(cfg, DefaultSierpinskiDepth), nil
	case VariantDragon:
		return NewDragonCurve(cfg, DefaultDragonDepth), nil
	}
	return nil, fmt.Errorf("unknown fractal variant %q", v)
}
