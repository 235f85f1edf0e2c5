package fractal

import "github.com/lucasb-eyer/go-colorful"

// colorFor maps an iteration count to a palette color. Counts that hit the
// cap are presumed inside the set and always come out black, whatever the
// scheme.
//
// Fixed points per scheme, with t = iterations/maxIterations:
//
//	rainbow:   t=0 → red (hue 0); hue wraps back to red as t→1
//	fire:      t=0 → black, ramping red → yellow → white
//	ocean:     t=0 → black, t→1 → (0, 127, 255)
//	grayscale: t=0 → black, t→1 → near-white
func colorFor(iterations, maxIterations int, scheme Scheme) RGB {
	if iterations >= maxIterations {
		return black
	}

	t := float64(iterations) / float64(maxIterations)

	switch scheme {
	case SchemeRainbow:
		c := colorful.Hsv(t*360, 1.0, 1.0)
		r, g, b := c.RGB255()
		return RGB{R: r, G: g, B: b}

	case SchemeFire:
		switch {
		case t < 0.25:
			return black
		case t < 0.5:
			return RGB{R: channel(4 * (t - 0.25))}
		case t < 0.75:
			return RGB{R: 255, G: channel(4 * (t - 0.5))}
		default:
			return RGB{R: 255, G: 255, B: channel(4 * (t - 0.75))}
		}

	case SchemeOcean:
		return RGB{G: channel(t * 0.5), B: channel(t)}

	default: // grayscale, and the fallback for anything unrecognized
		g := channel(t)
		return RGB{R: g, G: g, B: g}
	}
}

// channel scales a [0,1] intensity to a byte. Truncation, not rounding:
// the ramp palettes are defined that way (ocean's endpoint is (0,127,255)).
func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

// paletteLUT precomputes colorFor for every reachable count, so the pixel
// loops do a slice lookup instead of an HSV conversion.
func paletteLUT(scheme Scheme, maxIterations int) []RGB {
	lut := make([]RGB, maxIterations+1)
	for i := range lut {
		lut[i] = colorFor(i, maxIterations, scheme)
	}
	return lut
}
