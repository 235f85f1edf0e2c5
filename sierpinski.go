package fractal

import (
	"context"
	"fmt"
)

// DefaultSierpinskiDepth is the depth used by New for the Sierpinski
// variant.
const DefaultSierpinskiDepth = 7

// Sierpinski renders the Sierpinski gasket by recursive subdivision: a
// depth-0 call rasterizes a filled black triangle on the white background,
// deeper calls recurse into the three corner sub-triangles and skip the
// central inverted one.
//
// Leaf triangles are rasterized with a per-pixel orientation test over the
// triangle's bounding box, so the total cost is O(pixels × 3^depth) in the
// worst case. Depths above 8 get expensive fast; the generator does not cap
// the depth itself.
type Sierpinski struct {
	cfg   Config
	depth int
}

// NewSierpinski returns a Sierpinski generator subdividing depth times.
func NewSierpinski(cfg Config, depth int) *Sierpinski {
	return &Sierpinski{cfg: cfg, depth: depth}
}

type point struct {
	x, y int
}

func midpoint(a, b point) point {
	return point{x: (a.x + b.x) / 2, y: (a.y + b.y) / 2}
}

// Generate renders the full raster.
func (g *Sierpinski) Generate(ctx context.Context) (*Raster, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	if g.depth < 0 {
		return nil, fmt.Errorf("%w: subdivision depth must be non-negative, got %d", ErrInvalidConfig, g.depth)
	}

	w, h := g.cfg.Width, g.cfg.Height
	ras := NewRaster(w, h)
	ras.Fill(white)

	top := point{x: w / 2, y: 50}
	bottomLeft := point{x: 50, y: h - 50}
	bottomRight := point{x: w - 50, y: h - 50}

	if err := g.subdivide(ctx, ras, top, bottomLeft, bottomRight, g.depth); err != nil {
		return nil, err
	}
	return ras, nil
}

func (g *Sierpinski) subdivide(ctx context.Context, ras *Raster, a, b, c point, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == 0 {
		fillTriangle(ras, a, b, c)
		return nil
	}

	mab := midpoint(a, b)
	mbc := midpoint(b, c)
	mca := midpoint(c, a)

	// Three corner triangles; the central inverted triangle is skipped,
	// which is what produces the gasket.
	if err := g.subdivide(ctx, ras, a, mab, mca, depth-1); err != nil {
		return err
	}
	if err := g.subdivide(ctx, ras, mab, b, mbc, depth-1); err != nil {
		return err
	}
	return g.subdivide(ctx, ras, mca, mbc, c, depth-1)
}

// fillTriangle paints every pixel of the triangle's bounding box that passes
// the orientation test. Out-of-raster pixels are dropped by Set.
func fillTriangle(ras *Raster, a, b, c point) {
	yLo := min(a.y, b.y, c.y)
	yHi := max(a.y, b.y, c.y)
	xLo := min(a.x, b.x, c.x)
	xHi := max(a.x, b.x, c.x)

	for y := yLo; y <= yHi; y++ {
		for x := xLo; x <= xHi; x++ {
			if pointInTriangle(point{x: x, y: y}, a, b, c) {
				ras.Set(x, y, black)
			}
		}
	}
}

// pointInTriangle tests membership with signed areas: p is inside iff the
// three edge orientations do not mix a strictly positive and a strictly
// negative sign. Zeros count as neither, so boundary points are included.
func pointInTriangle(p, a, b, c point) bool {
	d1 := orient(p, a, b)
	d2 := orient(p, b, c)
	d3 := orient(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0

	return !(hasNeg && hasPos)
}

func orient(p, q, r point) int {
	return (p.x-r.x)*(q.y-r.y) - (q.x-r.x)*(p.y-r.y)
}

var _ Generator = (*Sierpinski)(nil)
