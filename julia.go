package fractal

import (
	"context"
	"image"
)

// Julia renders a Julia set: z starts at the pixel's plane coordinate and
// the iteration constant is cfg.JuliaC, fixed across the whole image.
type Julia struct {
	cfg Config
}

// NewJulia returns a Julia generator for cfg.
func NewJulia(cfg Config) *Julia {
	return &Julia{cfg: cfg}
}

func (g *Julia) rule(point complex128) (z0, c complex128) {
	return point, g.cfg.JuliaC.Complex128()
}

// Generate renders the full raster.
func (g *Julia) Generate(ctx context.Context) (*Raster, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	return renderEscape(ctx, g.cfg, g.rule)
}

// RenderTile renders one rectangle of the global image.
func (g *Julia) RenderTile(tile image.Rectangle) (*image.RGBA, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	return renderEscapeTile(g.cfg, tile, g.rule), nil
}

var (
	_ Generator    = (*Julia)(nil)
	_ TileRenderer = (*Julia)(nil)
)
