// server renders one configured fractal on a pool of workers and streams
// finished tiles to websocket subscribers, so browsers can watch the render
// progress. The composed image is also served as PNG at any time.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"

	fractal "github.com/fractalgen/fractal"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		configPath = flag.String("config", "", "config file (.json, .yaml)")
		variant    = flag.String("variant", "mandelbrot", "mandelbrot or julia")
		view       = flag.String("view", "", "named Mandelbrot view")
		workers    = flag.Int("workers", runtime.NumCPU(), "render worker goroutines")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := fractal.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = fractal.LoadConfig(*configPath)
		if err != nil {
			return err
		}
	}
	if *view != "" {
		v, ok := fractal.Views[*view]
		if !ok {
			return fmt.Errorf("unknown view %q", *view)
		}
		cfg = v.Apply(cfg)
	}

	v, err := fractal.ParseVariant(*variant)
	if err != nil {
		return err
	}
	gen, err := fractal.New(v, cfg)
	if err != nil {
		return err
	}
	renderer, ok := gen.(fractal.TileRenderer)
	if !ok {
		return fmt.Errorf("variant %q cannot render tiles; use the fractal CLI for recursive variants", v)
	}

	sched, err := fractal.NewTileScheduler(cfg, renderer)
	if err != nil {
		return err
	}

	// Every finished tile goes out to all connected websocket clients.
	hub := newHub(ctx)
	sched.OnTile(func(tile *image.RGBA, done float32) {
		hub.broadcast(encodeTileFrame(tile))
		log.Printf("finished: %f", done)
	})

	go func() {
		if err := sched.Run(ctx, *workers); err != nil {
			log.Printf("render: %v", err)
		}
	}()

	srv := webServer(*addr, cfg, sched, hub)
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	log.Printf("rendering %s at %dx%d on %d workers", v, cfg.Width, cfg.Height, *workers)
	log.Printf("listening on http://localhost%s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
