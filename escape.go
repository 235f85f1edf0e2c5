package fractal

import (
	"context"
	"image"
	"image/color"
)

// escapeRule derives the iteration start point z0 and the additive constant
// c from a pixel's plane coordinate. Mandelbrot and Julia differ only here.
type escapeRule func(point complex128) (z0, c complex128)

// escapeTime counts applications of z ← z²+c until |z| exceeds the escape
// radius, capped at maxIterations. A return value equal to the cap means
// the point never escaped. The magnitude test compares squares to avoid the
// square root; the loop admits |z| == escapeRadius, so a point sitting
// exactly on the radius still iterates.
func escapeTime(z, c complex128, escapeRadius float64, maxIterations int) int {
	rr := escapeRadius * escapeRadius
	n := 0
	for real(z)*real(z)+imag(z)*imag(z) <= rr && n < maxIterations {
		z = z*z + c
		n++
	}
	return n
}

// renderEscape runs the escape-time loop over the whole raster. The context
// is checked once per scanline; a canceled render returns no raster.
func renderEscape(ctx context.Context, cfg Config, rule escapeRule) (*Raster, error) {
	ras := NewRaster(cfg.Width, cfg.Height)
	vp := NewViewport(cfg)
	lut := paletteLUT(cfg.Scheme, cfg.MaxIterations)

	for py := 0; py < cfg.Height; py++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for px := 0; px < cfg.Width; px++ {
			z0, c := rule(vp.At(px, py))
			n := escapeTime(z0, c, cfg.EscapeRadius, cfg.MaxIterations)
			ras.Set(px, py, lut[n])
		}
	}
	return ras, nil
}

// renderEscapeTile renders one rectangle of the global image. The returned
// image carries the tile's global coordinates in its bounds, so finished
// tiles can be composed with draw.Draw. Because the viewport mapping
// depends only on the global dimensions, tiled output is byte-identical to
// a whole-image render.
func renderEscapeTile(cfg Config, tile image.Rectangle, rule escapeRule) *image.RGBA {
	img := image.NewRGBA(tile)
	vp := NewViewport(cfg)
	lut := paletteLUT(cfg.Scheme, cfg.MaxIterations)

	for py := tile.Min.Y; py < tile.Max.Y; py++ {
		for px := tile.Min.X; px < tile.Max.X; px++ {
			z0, c := rule(vp.At(px, py))
			n := escapeTime(z0, c, cfg.EscapeRadius, cfg.MaxIterations)
			p := lut[n]
			img.SetRGBA(px, py, color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
		}
	}
	return img
}
