package fractal

// Viewport maps integer pixel coordinates onto a rectangle of the complex
// plane. The rectangle is centered on (CenterX, CenterY) with half-extents
// 2.0/zoom horizontally and 1.5/zoom vertically.
//
// The half-extents give a fixed 4:3 logical aspect ratio regardless of the
// raster's pixel aspect ratio, so non-4:3 rasters render a stretched plane.
// This matches the reference outputs and is kept as-is.
type Viewport struct {
	xMin, xMax float64
	yMin, yMax float64
	width      float64
	height     float64
}

// NewViewport builds the viewport for a config.
func NewViewport(cfg Config) Viewport {
	return Viewport{
		xMin:   cfg.CenterX - 2.0/cfg.Zoom,
		xMax:   cfg.CenterX + 2.0/cfg.Zoom,
		yMin:   cfg.CenterY - 1.5/cfg.Zoom,
		yMax:   cfg.CenterY + 1.5/cfg.Zoom,
		width:  float64(cfg.Width),
		height: float64(cfg.Height),
	}
}

// Point maps pixel (px, py) to its plane coordinate.
func (v Viewport) Point(px, py int) (re, im float64) {
	re = v.xMin + (float64(px)/v.width)*(v.xMax-v.xMin)
	im = v.yMin + (float64(py)/v.height)*(v.yMax-v.yMin)
	return re, im
}

// At maps pixel (px, py) to a complex coordinate.
func (v Viewport) At(px, py int) complex128 {
	re, im := v.Point(px, py)
	return complex(re, im)
}
