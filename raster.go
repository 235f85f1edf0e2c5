package fractal

import "image"

// RGB is one raster pixel.
type RGB struct {
	R, G, B uint8
}

var (
	black = RGB{}
	white = RGB{R: 255, G: 255, B: 255}
	red   = RGB{R: 255}
)

// Raster is a Height×Width grid of RGB pixels, row-major, three bytes per
// pixel. Every generation allocates a fresh one; the caller owns it
// exclusively once returned.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRaster returns a w×h raster filled with black.
func NewRaster(w, h int) *Raster {
	return &Raster{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, 3*w*h),
	}
}

// Fill paints every pixel with c.
func (r *Raster) Fill(c RGB) {
	for i := 0; i < len(r.Pix); i += 3 {
		r.Pix[i] = c.R
		r.Pix[i+1] = c.G
		r.Pix[i+2] = c.B
	}
}

// At returns the pixel at (x, y). Out-of-bounds reads return black.
func (r *Raster) At(x, y int) RGB {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return RGB{}
	}
	i := 3 * (y*r.Width + x)
	return RGB{R: r.Pix[i], G: r.Pix[i+1], B: r.Pix[i+2]}
}

// Set paints the pixel at (x, y). Out-of-bounds writes are dropped, so the
// recursive generators can draw near the edges without their own guards.
func (r *Raster) Set(x, y int, c RGB) {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return
	}
	i := 3 * (y*r.Width + x)
	r.Pix[i] = c.R
	r.Pix[i+1] = c.G
	r.Pix[i+2] = c.B
}

// RGBA converts the raster to an opaque image.RGBA for PNG encoding and the
// tile scheduler.
func (r *Raster) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i, j := 0, 0; i < len(r.Pix); i, j = i+3, j+4 {
		img.Pix[j] = r.Pix[i]
		img.Pix[j+1] = r.Pix[i+1]
		img.Pix[j+2] = r.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// rasterFromRGBA copies an opaque image.RGBA into a fresh raster. The image
// must have its origin at (0, 0).
func rasterFromRGBA(img *image.RGBA) *Raster {
	b := img.Bounds()
	r := NewRaster(b.Dx(), b.Dy())
	for i, j := 0, 0; j < len(img.Pix); i, j = i+3, j+4 {
		r.Pix[i] = img.Pix[j]
		r.Pix[i+1] = img.Pix[j+1]
		r.Pix[i+2] = img.Pix[j+2]
	}
	return r
}

// line draws from (x0, y0) to (x1, y1) with an integer error-term walk that
// advances one axis per step. Endpoints outside the raster are clipped by
// Set. The step count is max(dx, dy)+1, so both endpoints are painted.
func (r *Raster) line(x0, y0, x1, y1 int, c RGB) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	x, y := x0, y0

	xInc := 1
	if x0 >= x1 {
		xInc = -1
	}
	yInc := 1
	if y0 >= y1 {
		yInc = -1
	}

	e := dx - dy
	for i := 0; i <= max(dx, dy); i++ {
		r.Set(x, y, c)
		if e > 0 {
			x += xInc
			e -= dy
		} else {
			y += yInc
			e += dx
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
