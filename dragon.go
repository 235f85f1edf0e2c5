package fractal

import (
	"context"
	"fmt"
	"math"
)

// DefaultDragonDepth is the expansion count used by New for the dragon
// curve variant.
const DefaultDragonDepth = 15

// ctxCheckInterval is how many curve segments are drawn between context
// checks.
const ctxCheckInterval = 4096

// DragonCurve renders the Heighway dragon: an L-system turn sequence walked
// by a cursor from the canvas center, each symbol advancing one step and
// turning ±90°. Consecutive points are joined with red line segments,
// clamped to the canvas.
//
// The sequence doubles per expansion round, so memory and time are linear
// in 2^depth. Depths above 20 are impractical; the generator does not cap
// the depth itself.
type DragonCurve struct {
	cfg   Config
	depth int
}

// NewDragonCurve returns a dragon curve generator with depth expansion
// rounds.
func NewDragonCurve(cfg Config, depth int) *DragonCurve {
	return &DragonCurve{cfg: cfg, depth: depth}
}

// dragonSequence expands the turn alphabet {R, L} for the given number of
// rounds: start with "R"; each round appends "R" and then the reverse of
// the current sequence with every turn flipped. The result has length
// 2^(rounds+1) − 1.
func dragonSequence(rounds int) []byte {
	seq := []byte{'R'}
	for i := 0; i < rounds; i++ {
		next := make([]byte, 0, 2*len(seq)+1)
		next = append(next, seq...)
		next = append(next, 'R')
		for j := len(seq) - 1; j >= 0; j-- {
			if seq[j] == 'R' {
				next = append(next, 'L')
			} else {
				next = append(next, 'R')
			}
		}
		seq = next
	}
	return seq
}

// Generate renders the full raster.
func (g *DragonCurve) Generate(ctx context.Context) (*Raster, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	if g.depth < 0 {
		return nil, fmt.Errorf("%w: expansion depth must be non-negative, got %d", ErrInvalidConfig, g.depth)
	}

	w, h := g.cfg.Width, g.cfg.Height
	ras := NewRaster(w, h)
	ras.Fill(white)

	seq := dragonSequence(g.depth)

	// Step length halves every other round so the curve stays on canvas.
	step := min(w, h) / (1 << (g.depth / 2))
	if step < 2 {
		step = 2
	}

	x, y := w/2, h/2
	angle := 0.0

	points := make([]point, 0, len(seq)+1)
	points = append(points, point{x: x, y: y})
	for _, turn := range seq {
		x += int(float64(step) * math.Cos(angle))
		y += int(float64(step) * math.Sin(angle))

		// Clamp before recording; segments can fold onto the border.
		x = clampInt(x, 0, w-1)
		y = clampInt(y, 0, h-1)
		points = append(points, point{x: x, y: y})

		if turn == 'R' {
			angle -= math.Pi / 2
		} else {
			angle += math.Pi / 2
		}
	}

	for i := 0; i+1 < len(points); i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		ras.line(points[i].x, points[i].y, points[i+1].x, points[i+1].y, red)
	}
	return ras, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ Generator = (*DragonCurve)(nil)
