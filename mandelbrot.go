package fractal

import (
	"context"
	"image"
)

// Mandelbrot renders the Mandelbrot set: for each pixel the iteration
// constant c is the pixel's own plane coordinate and z starts at 0.
type Mandelbrot struct {
	cfg Config
}

// NewMandelbrot returns a Mandelbrot generator for cfg.
func NewMandelbrot(cfg Config) *Mandelbrot {
	return &Mandelbrot{cfg: cfg}
}

func mandelbrotRule(point complex128) (z0, c complex128) {
	return 0, point
}

// Generate renders the full raster.
func (g *Mandelbrot) Generate(ctx context.Context) (*Raster, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	return renderEscape(ctx, g.cfg, mandelbrotRule)
}

// RenderTile renders one rectangle of the global image.
func (g *Mandelbrot) RenderTile(tile image.Rectangle) (*image.RGBA, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	return renderEscapeTile(g.cfg, tile, mandelbrotRule), nil
}

var (
	_ Generator    = (*Mandelbrot)(nil)
	_ TileRenderer = (*Mandelbrot)(nil)
)
