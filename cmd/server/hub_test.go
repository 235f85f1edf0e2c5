package main

import (
	"context"
	"encoding/binary"
	"image"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fractal "github.com/fractalgen/fractal"
)

func testScheduler(t *testing.T) *fractal.TileScheduler {
	t.Helper()

	cfg := fractal.DefaultConfig()
	cfg.Width = 64
	cfg.Height = 64
	cfg.MaxIterations = 10

	sched, err := fractal.NewTileScheduler(cfg, fractal.NewMandelbrot(cfg))
	require.NoError(t, err)
	return sched
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.Dial(context.Background(), url, nil)
	require.NoError(t, err)
	return c
}

func waitForClients(t *testing.T, h *hub, want int) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for h.count() != want && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, want, h.count())
}

// The first frame on a new connection is the full-image snapshot.
func TestWebsocketSnapshotFrame(t *testing.T) {
	sched := testScheduler(t)
	h := newHub(context.Background())
	srv := httptest.NewServer(websocketHandler(sched, h))
	defer srv.Close()

	c := dialWS(t, srv)
	defer c.Close(websocket.StatusNormalClosure, "")

	typ, frame, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageBinary, typ)

	require.Len(t, frame, 16+64*64*4)
	assert.Zero(t, binary.BigEndian.Uint32(frame[0:]), "snapshot starts at x0=0")
	assert.Zero(t, binary.BigEndian.Uint32(frame[4:]), "snapshot starts at y0=0")
	assert.EqualValues(t, 64, binary.BigEndian.Uint32(frame[8:]))
	assert.EqualValues(t, 64, binary.BigEndian.Uint32(frame[12:]))
}

// A client's close frame must be noticed even when no broadcasts are
// flowing, and the hub must forget the connection.
func TestWebsocketClientRemovedOnClose(t *testing.T) {
	sched := testScheduler(t)
	h := newHub(context.Background())
	srv := httptest.NewServer(websocketHandler(sched, h))
	defer srv.Close()

	c := dialWS(t, srv)

	// Reading the snapshot guarantees registration happened.
	_, _, err := c.Read(context.Background())
	require.NoError(t, err)
	waitForClients(t, h, 1)

	require.NoError(t, c.Close(websocket.StatusNormalClosure, ""))

	// No broadcast is in flight; the read side alone must notice.
	waitForClients(t, h, 0)
}

// Broadcast frames arrive after the snapshot, in order.
func TestWebsocketBroadcastOrdering(t *testing.T) {
	sched := testScheduler(t)
	h := newHub(context.Background())
	srv := httptest.NewServer(websocketHandler(sched, h))
	defer srv.Close()

	c := dialWS(t, srv)
	defer c.Close(websocket.StatusNormalClosure, "")

	_, snapshot, err := c.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot, 16+64*64*4)

	tile, err := fractal.NewMandelbrot(fractal.DefaultConfig()).RenderTile(image.Rect(0, 0, 8, 8))
	require.NoError(t, err)
	h.broadcast(encodeTileFrame(tile))

	_, frame, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, frame, 16+8*8*4)
	assert.EqualValues(t, 8, binary.BigEndian.Uint32(frame[8:]))
}
