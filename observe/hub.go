// Package observe streams read-only game snapshots to websocket spectators
package observe

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lixenwraith/gem-drift/engine"
	"github.com/lixenwraith/gem-drift/export"
)

// DefaultWriteTimeout bounds a single frame write to a spectator
const DefaultWriteTimeout = 2 * time.Second

// Config configures a Hub
type Config struct {
	WriteTimeout time.Duration // Zero uses DefaultWriteTimeout
	Logger       *zap.Logger   // Nil disables logging
}

type subscriber struct {
	id     uint64
	conn   *websocket.Conn
	format export.Format
	mu     sync.Mutex
}

// Hub fans the latest snapshot out to connected spectators
// Publish never blocks the game loop; Run performs the writes
type Hub struct {
	mu          sync.Mutex
	subscribers map[uint64]*subscriber
	latest      engine.Snapshot
	hasLatest   bool

	nextID    atomic.Uint64
	published atomic.Uint64
	notify    chan struct{}

	writeWait time.Duration
	upgrader  websocket.Upgrader
	log       *zap.Logger
}

// NewHub creates an idle hub
func NewHub(cfg Config) *Hub {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Hub{
		subscribers: make(map[uint64]*subscriber),
		notify:      make(chan struct{}, 1),
		writeWait:   cfg.WriteTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: cfg.Logger,
	}
}

// Publish replaces the latest snapshot and wakes the broadcaster
// Snapshots published faster than Run drains them coalesce to the newest
func (h *Hub) Publish(snap engine.Snapshot) {
	h.mu.Lock()
	h.latest = snap
	h.hasLatest = true
	h.mu.Unlock()

	select {
	case h.notify <- struct{}{}:
	default:
	}
}

// Latest returns the most recent published snapshot
func (h *Hub) Latest() (engine.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest, h.hasLatest
}

// Subscribers returns the number of connected spectators
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Broadcasts returns the number of snapshots written to spectators so far
func (h *Hub) Broadcasts() uint64 {
	return h.published.Load()
}

// Run broadcasts published snapshots until ctx is done, then closes every connection
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-h.notify:
			h.broadcast()
		}
	}
}

// Handle upgrades a spectator connection
// The optional format query selects json (text frames) or msgpack (binary frames)
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil || format == export.FormatYAML {
		http.Error(w, "unsupported format", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("spectator upgrade failed", zap.Error(err))
		return
	}

	sub := &subscriber{id: h.nextID.Add(1), conn: conn, format: format}

	h.mu.Lock()
	h.subscribers[sub.id] = sub
	snap, ok := h.latest, h.hasLatest
	sub.mu.Lock()
	h.mu.Unlock()

	h.log.Info("spectator connected",
		zap.Uint64("id", sub.id),
		zap.String("remote", r.RemoteAddr),
		zap.Stringer("format", format))

	var werr error
	if ok {
		werr = h.write(sub, snap)
	}
	sub.mu.Unlock()
	if werr != nil {
		h.disconnect(sub, werr)
		return
	}

	// Spectators are read-only; reads only detect the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.disconnect(sub, err)
			return
		}
	}
}

// HandleSnapshot serves the latest snapshot as a single HTTP response
func (h *Hub) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	snap, ok := h.Latest()
	if !ok {
		http.Error(w, "no snapshot published", http.StatusServiceUnavailable)
		return
	}
	data, err := export.Encode(snap, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.Write(data)
}

// Handler returns the routes: /ws for streaming, /snapshot for one-shot reads
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.Handle)
	mux.HandleFunc("/snapshot", h.HandleSnapshot)
	return mux
}

// ListenAndServe runs the hub and its HTTP routes until ctx is done
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: h.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	h.log.Info("observer listening", zap.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// broadcast writes the latest snapshot to every subscriber
// Each format is encoded at most once per broadcast
func (h *Hub) broadcast() {
	h.mu.Lock()
	snap, ok := h.latest, h.hasLatest
	subs := make([]*subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	if !ok || len(subs) == 0 {
		return
	}

	encoded := make(map[export.Format][]byte, 2)
	for _, sub := range subs {
		data, done := encoded[sub.format]
		if !done {
			var err error
			data, err = export.Encode(snap, sub.format)
			if err != nil {
				h.log.Error("snapshot encode failed", zap.Error(err))
				return
			}
			encoded[sub.format] = data
		}

		sub.mu.Lock()
		err := h.writeRaw(sub, data)
		sub.mu.Unlock()
		if err != nil {
			h.disconnect(sub, err)
		}
	}
}

// write encodes and sends one snapshot, caller holds sub.mu
func (h *Hub) write(sub *subscriber, snap engine.Snapshot) error {
	data, err := export.Encode(snap, sub.format)
	if err != nil {
		return err
	}
	return h.writeRaw(sub, data)
}

// writeRaw sends an encoded frame, caller holds sub.mu
func (h *Hub) writeRaw(sub *subscriber, data []byte) error {
	msgType := websocket.TextMessage
	if sub.format == export.FormatMsgpack {
		msgType = websocket.BinaryMessage
	}
	sub.conn.SetWriteDeadline(time.Now().Add(h.writeWait))
	if err := sub.conn.WriteMessage(msgType, data); err != nil {
		return err
	}
	h.published.Add(1)
	return nil
}

// disconnect removes and closes a subscriber once
func (h *Hub) disconnect(sub *subscriber, cause error) {
	h.mu.Lock()
	_, present := h.subscribers[sub.id]
	delete(h.subscribers, sub.id)
	h.mu.Unlock()
	if !present {
		return
	}
	sub.conn.Close()
	h.log.Info("spectator disconnected", zap.Uint64("id", sub.id), zap.Error(cause))
}

// closeAll sends a normal close to every subscriber
func (h *Hub) closeAll() {
	h.mu.Lock()
	subs := h.subscribers
	h.subscribers = make(map[uint64]*subscriber)
	h.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "observer shutting down")
	for _, sub := range subs {
		sub.mu.Lock()
		sub.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(h.writeWait))
		sub.mu.Unlock()
		sub.conn.Close()
	}
}

func contentType(f export.Format) string {
	switch f {
	case export.FormatYAML:
		return "application/yaml"
	case export.FormatMsgpack:
		return "application/msgpack"
	}
	return "application/json"
}
