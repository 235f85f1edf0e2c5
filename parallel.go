package fractal

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"sync"

	"golang.org/x/sync/errgroup"
)

// tileSize is the edge length of scheduler tiles. Edge tiles are smaller
// when the image dimensions are not multiples of it.
const tileSize = 64

// TileScheduler splits an escape-time render into tiles and hands them to a
// pool of workers, composing finished tiles into one image. It backs both
// RenderParallel and the progressive render server.
//
// Because every tile is a pure function of the config, the composed image is
// byte-identical to a single-threaded Generate, whatever the worker count or
// completion order.
type TileScheduler struct {
	renderer TileRenderer
	img      *image.RGBA

	totalPixels    int
	finishedPixels int

	unstarted map[image.Rectangle]struct{}

	onTile func(tile *image.RGBA, done float32)

	m        sync.Mutex
	done     chan struct{}
	doneOnce sync.Once
}

// NewTileScheduler prepares a scheduler for one render of cfg through r.
func NewTileScheduler(cfg Config, r TileRenderer) (*TileScheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	tiles := splitTiles(img.Bounds(), tileSize, tileSize)
	unstarted := make(map[image.Rectangle]struct{}, len(tiles))
	for _, t := range tiles {
		unstarted[t] = struct{}{}
	}

	return &TileScheduler{
		renderer:    r,
		img:         img,
		totalPixels: cfg.Width * cfg.Height,
		unstarted:   unstarted,
		done:        make(chan struct{}),
	}, nil
}

// OnTile registers a callback invoked once per finished tile with the tile
// image (global coordinates) and the overall completion fraction. Must be
// set before Run; the callback runs on worker goroutines.
func (s *TileScheduler) OnTile(fn func(tile *image.RGBA, done float32)) {
	s.onTile = fn
}

// Run renders all tiles on the given number of workers and blocks until the
// image is complete, a tile fails, or the context is canceled. Done is
// closed on every exit path.
func (s *TileScheduler) Run(ctx context.Context, workers int) error {
	if workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", workers)
	}
	defer s.closeDone()

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				tile, ok := s.popTile()
				if !ok {
					return nil
				}
				tileImg, err := s.renderer.RenderTile(tile)
				if err != nil {
					return fmt.Errorf("render tile %s: %w", tile, err)
				}
				s.tileFinished(tileImg)
			}
		})
	}
	return g.Wait()
}

// popTile hands out an unstarted tile, if any remain.
func (s *TileScheduler) popTile() (tile image.Rectangle, found bool) {
	s.m.Lock()
	defer s.m.Unlock()

	for tile = range s.unstarted {
		delete(s.unstarted, tile)
		return tile, true
	}
	return image.Rectangle{}, false
}

// tileFinished composes a rendered tile into the full image and advances
// the progress counter. Closes Done on the last tile.
func (s *TileScheduler) tileFinished(tileImg *image.RGBA) {
	s.m.Lock()

	draw.Draw(s.img, tileImg.Bounds(), tileImg, tileImg.Bounds().Min, draw.Src)
	s.finishedPixels += tileImg.Bounds().Dx() * tileImg.Bounds().Dy()

	complete := s.finishedPixels == s.totalPixels
	done := float32(s.finishedPixels) / float32(s.totalPixels)
	s.m.Unlock()

	if s.onTile != nil {
		s.onTile(tileImg, done)
	}
	if complete {
		s.closeDone()
	}
}

func (s *TileScheduler) closeDone() {
	s.doneOnce.Do(func() { close(s.done) })
}

// Progress reports the finished fraction of the image, in [0, 1].
func (s *TileScheduler) Progress() float32 {
	s.m.Lock()
	defer s.m.Unlock()
	return float32(s.finishedPixels) / float32(s.totalPixels)
}

// Done is closed once Run finishes, whether the image completed or the run
// ended early on cancellation or a tile error. Check Progress to tell the
// two apart.
func (s *TileScheduler) Done() <-chan struct{} {
	return s.done
}

// Image returns a snapshot copy of the (possibly partial) composed image.
func (s *TileScheduler) Image() *image.RGBA {
	s.m.Lock()
	defer s.m.Unlock()

	cp := image.NewRGBA(s.img.Bounds())
	copy(cp.Pix, s.img.Pix)
	return cp
}

// RenderParallel renders a variant across the given number of workers.
// Variants that cannot render tiles (the recursive ones) fall back to a
// single-threaded Generate. The result is byte-identical to Generate.
func RenderParallel(ctx context.Context, cfg Config, v Variant, workers int) (*Raster, error) {
	g, err := New(v, cfg)
	if err != nil {
		return nil, err
	}

	tr, ok := g.(TileRenderer)
	if !ok {
		return g.Generate(ctx)
	}

	sched, err := NewTileScheduler(cfg, tr)
	if err != nil {
		return nil, err
	}
	if err := sched.Run(ctx, workers); err != nil {
		return nil, err
	}
	return rasterFromRGBA(sched.Image()), nil
}

// splitTiles cuts r into tileW × tileH tiles, with smaller tiles at the
// right and bottom edges when r is not divisible.
func splitTiles(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle
	for oy := 0; oy < h; oy += tileH {
		th := min(tileH, h-oy)
		for ox := 0; ox < w; ox += tileW {
			tw := min(tileW, w-ox)
			tiles = append(tiles, image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			))
		}
	}
	return tiles
}
