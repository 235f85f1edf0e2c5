package main

import (
	"encoding/json"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"

	fractal "github.com/fractalgen/fractal"
)

// webServer wires up the http mux: websocket tile stream, PNG snapshot,
// config as JSON and static files from ./static.
func webServer(addr string, cfg fractal.Config, sched *fractal.TileScheduler, hub *hub) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(sched, hub))
	mux.HandleFunc("/image.png", imageHandler(sched))
	mux.HandleFunc("/config", configHandler(cfg))
	mux.Handle("/", http.FileServer(http.Dir("./static")))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// websocketHandler upgrades the connection, sends a snapshot of everything
// rendered so far as one full-image frame, then subscribes the client to
// per-tile updates. Clients never send data frames, but the connection must
// still be read so close and ping frames get processed; CloseRead runs that
// read loop and its context ends when the client goes away, which tears the
// registration down.
func websocketHandler(sched *fractal.TileScheduler, hub *hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}

		cl := hub.add(c, func() []byte { return encodeTileFrame(sched.Image()) })

		readCtx := c.CloseRead(r.Context())
		select {
		case <-readCtx.Done():
		case <-cl.done:
		}
		hub.remove(cl, websocket.StatusNormalClosure, "")
	}
}

// imageHandler serves the current (possibly partial) render as PNG.
func imageHandler(sched *fractal.TileScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, sched.Image()); err != nil {
			log.Printf("encode png: %v", err)
		}
	}
}

// configHandler serves the active render config as JSON.
func configHandler(cfg fractal.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(cfg); err != nil {
			log.Printf("encode config: %v", err)
		}
	}
}
