package main

import (
	"context"
	"encoding/binary"
	"image"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// writeTimeout bounds a single frame write; slow clients are dropped rather
// than stalling their send queue forever.
const writeTimeout = 10 * time.Second

// sendQueueSize is the per-client frame buffer. A render has bounded tile
// count, so a healthy reader never falls this far behind.
const sendQueueSize = 64

// client is one websocket subscriber with its own frame queue and writer
// goroutine, so a slow connection never blocks the broadcast path.
type client struct {
	conn   *websocket.Conn
	frames chan []byte
	done   chan struct{}
	once   sync.Once
}

// hub fans tile frames out to all connected websocket clients.
type hub struct {
	ctx     context.Context
	m       sync.Mutex
	clients map[*client]struct{}
}

func newHub(ctx context.Context) *hub {
	return &hub{
		ctx:     ctx,
		clients: make(map[*client]struct{}),
	}
}

// add registers a connection and queues a snapshot as its first frame, so a
// late joiner sees the tiles finished before it connected. The snapshot is
// taken and queued under the lock: every tile composed before it is in the
// snapshot, every one composed after is queued behind it, so no update is
// lost or reordered. The network writes happen on the client's own writer
// goroutine.
func (h *hub) add(conn *websocket.Conn, snapshot func() []byte) *client {
	cl := &client{
		conn:   conn,
		frames: make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
	}

	h.m.Lock()
	cl.frames <- snapshot() // fresh buffered channel, cannot block
	h.clients[cl] = struct{}{}
	n := len(h.clients)
	h.m.Unlock()

	go h.writeLoop(cl)
	log.Printf("websocket clients: %d", n)
	return cl
}

// remove unregisters a client and closes its connection. Safe to call more
// than once; later calls are no-ops.
func (h *hub) remove(cl *client, code websocket.StatusCode, reason string) {
	h.m.Lock()
	_, registered := h.clients[cl]
	delete(h.clients, cl)
	n := len(h.clients)
	h.m.Unlock()

	cl.once.Do(func() {
		close(cl.done)
		cl.conn.Close(code, reason)
	})

	if registered {
		log.Printf("websocket clients: %d", n)
	}
}

// count reports the number of registered clients.
func (h *hub) count() int {
	h.m.Lock()
	defer h.m.Unlock()
	return len(h.clients)
}

// broadcast queues a frame for every client. Clients whose queue is full
// are not keeping up and get dropped.
func (h *hub) broadcast(frame []byte) {
	h.m.Lock()
	var stalled []*client
	for cl := range h.clients {
		select {
		case cl.frames <- frame:
		default:
			stalled = append(stalled, cl)
		}
	}
	h.m.Unlock()

	for _, cl := range stalled {
		log.Printf("dropping websocket client: send queue full")
		h.remove(cl, websocket.StatusPolicyViolation, "too slow")
	}
}

// writeLoop drains one client's queue onto its connection. A failed write
// drops the client.
func (h *hub) writeLoop(cl *client) {
	for {
		select {
		case frame := <-cl.frames:
			if err := h.write(cl.conn, frame); err != nil {
				log.Printf("dropping websocket client: %v", err)
				h.remove(cl, websocket.StatusInternalError, "write failed")
				return
			}
		case <-cl.done:
			return
		case <-h.ctx.Done():
			h.remove(cl, websocket.StatusGoingAway, "server shutting down")
			return
		}
	}
}

func (h *hub) write(c *websocket.Conn, frame []byte) error {
	ctx, cancel := context.WithTimeout(h.ctx, writeTimeout)
	defer cancel()
	return c.Write(ctx, websocket.MessageBinary, frame)
}

// encodeTileFrame packs a tile into one binary websocket frame: a 16-byte
// big-endian header (x0, y0, width, height as int32) followed by the tile's
// raw RGBA rows.
func encodeTileFrame(tile *image.RGBA) []byte {
	b := tile.Bounds()
	frame := make([]byte, 16+len(tile.Pix))
	binary.BigEndian.PutUint32(frame[0:], uint32(b.Min.X))
	binary.BigEndian.PutUint32(frame[4:], uint32(b.Min.Y))
	binary.BigEndian.PutUint32(frame[8:], uint32(b.Dx()))
	binary.BigEndian.PutUint32(frame[12:], uint32(b.Dy()))
	copy(frame[16:], tile.Pix)
	return frame
}
