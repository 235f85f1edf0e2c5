package fractal

import (
	"bytes"
	"context"
	"image"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTilesCoversImageExactly(t *testing.T) {
	r := image.Rect(0, 0, 150, 130)
	tiles := splitTiles(r, 64, 64)

	area := 0
	for _, tile := range tiles {
		require.True(t, tile.In(r), "tile %s leaks outside %s", tile, r)
		area += tile.Dx() * tile.Dy()
	}
	assert.Equal(t, r.Dx()*r.Dy(), area, "tiles must cover every pixel exactly once")

	// 150×130 with 64×64 tiles: 3 columns (64+64+22) × 3 rows (64+64+2).
	assert.Len(t, tiles, 9)
}

func TestRenderParallelMatchesGenerate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 200
	cfg.Height = 150
	cfg.MaxIterations = 40
	cfg.Scheme = SchemeOcean

	for _, v := range []Variant{VariantMandelbrot, VariantJulia} {
		g, err := New(v, cfg)
		require.NoError(t, err)
		serial, err := g.Generate(context.Background())
		require.NoError(t, err)

		for _, workers := range []int{1, 4} {
			parallel, err := RenderParallel(context.Background(), cfg, v, workers)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(serial.Pix, parallel.Pix),
				"%s with %d workers must be byte-identical to a serial render", v, workers)
		}
	}
}

// Recursive variants cannot render tiles; RenderParallel falls back to the
// single-threaded generator.
func TestRenderParallelRecursiveFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 200
	cfg.Height = 150

	serial, err := NewSierpinski(cfg, DefaultSierpinskiDepth).Generate(context.Background())
	require.NoError(t, err)

	parallel, err := RenderParallel(context.Background(), cfg, VariantSierpinski, 8)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(serial.Pix, parallel.Pix))
}

func TestTileSchedulerProgress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 130
	cfg.Height = 70
	cfg.MaxIterations = 20

	sched, err := NewTileScheduler(cfg, NewMandelbrot(cfg))
	require.NoError(t, err)

	var tileCount atomic.Int32
	sched.OnTile(func(tile *image.RGBA, done float32) {
		tileCount.Add(1)
	})

	require.Zero(t, sched.Progress())
	require.NoError(t, sched.Run(context.Background(), 3))

	assert.EqualValues(t, 1.0, sched.Progress())
	assert.EqualValues(t, 6, tileCount.Load(), "130×70 at 64×64 tiles is a 3×2 grid")

	select {
	case <-sched.Done():
	default:
		t.Fatal("Done must be closed after Run completes")
	}
}

// Done must not stay blocked when the run ends early: a waiter would hang
// forever on a canceled render otherwise.
func TestTileSchedulerDoneClosedOnCanceledRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 130
	cfg.Height = 70
	cfg.MaxIterations = 20

	sched, err := NewTileScheduler(cfg, NewMandelbrot(cfg))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, sched.Run(ctx, 2), context.Canceled)

	select {
	case <-sched.Done():
	default:
		t.Fatal("Done must be closed after an early Run exit")
	}
	assert.Less(t, sched.Progress(), float32(1.0), "canceled run must not report completion")
}

func TestTileSchedulerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIterations = 0

	_, err := NewTileScheduler(cfg, NewMandelbrot(cfg))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRenderParallelCanceled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 256
	cfg.Height = 192

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RenderParallel(ctx, cfg, VariantMandelbrot, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderParallelRejectsNonPositiveWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 64
	cfg.Height = 64

	_, err := RenderParallel(context.Background(), cfg, VariantMandelbrot, 0)
	assert.Error(t, err)
}
