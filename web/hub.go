package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"points/firmware/snapshot"
	"points/kernel"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// HubConfig holds websocket settings.
type HubConfig struct {
	PushInterval    time.Duration
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultHubConfig returns the settings used by the host runner.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		PushInterval:    100 * time.Millisecond,
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// Hub pushes the published device state to every connected browser and forwards actions
// they send back into the device mailbox.
type Hub struct {
	shared   *kernel.SharedBuffer
	submit   func([]byte) error
	clock    clockwork.Clock
	config   HubConfig
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[*wsConn]struct{}
}

type wsConn struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
	hub  *Hub
}

// NewHub returns a hub reading state from shared. submit handles action messages from
// clients.
func NewHub(shared *kernel.SharedBuffer, submit func([]byte) error, clock clockwork.Clock, config HubConfig) *Hub {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	defaults := DefaultHubConfig()
	if config.PushInterval <= 0 {
		config.PushInterval = defaults.PushInterval
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = defaults.ReadTimeout
	}
	if config.PingInterval <= 0 {
		config.PingInterval = defaults.PingInterval
	}
	if config.MaxMessageSize <= 0 {
		config.MaxMessageSize = defaults.MaxMessageSize
	}
	return &Hub{
		shared: shared,
		submit: submit,
		clock:  clock,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		conns: make(map[*wsConn]struct{}),
	}
}

// Run pushes state whenever the snapshot sequence moves, until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	t := h.clock.NewTicker(h.config.PushInterval)
	defer t.Stop()

	log.Info().Dur("interval", h.config.PushInterval).Msg("state hub started")
	var last uint32
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			log.Info().Msg("state hub stopped")
			return
		case <-t.Chan():
			if h.shared.Seq() == last {
				continue
			}
			s, seq, ok := snapshot.Read(h.shared)
			if !ok {
				continue
			}
			last = seq
			h.broadcast(encodeState(s, seq))
		}
	}
}

// ServeHTTP upgrades the request and sends the current state right away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}
	c := &wsConn{
		id:   uuid.New().String(),
		ws:   ws,
		send: make(chan []byte, 16),
		hub:  h,
	}
	h.register(c)
	if s, seq, ok := snapshot.Read(h.shared); ok {
		c.send <- encodeState(s, seq)
	}

	go c.writePump()
	go c.readPump()

	log.Info().Str("connection_id", c.id).Str("remote", r.RemoteAddr).Msg("websocket connected")
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) register(c *wsConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

func (h *Hub) unregister(c *wsConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; ok {
		delete(h.conns, c)
		close(c.send)
		log.Info().Str("connection_id", c.id).Msg("websocket disconnected")
	}
}

func (h *Hub) broadcast(msg []byte) {
	var slow []*wsConn
	h.mu.RLock()
	for c := range h.conns {
		select {
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Warn().Str("connection_id", c.id).Msg("send buffer full, closing connection")
		h.unregister(c)
		_ = c.ws.Close()
	}
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	targets := make([]*wsConn, 0, len(h.conns))
	for c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()
	for _, c := range targets {
		h.unregister(c)
	}
}

func (c *wsConn) writePump() {
	ping := time.NewTicker(c.hub.config.PingInterval)
	defer func() {
		ping.Stop()
		_ = c.ws.Close()
		c.hub.unregister(c)
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Error().Err(err).Str("connection_id", c.id).Msg("websocket write failed")
				return
			}
		case <-ping.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *wsConn) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.ws.Close()
	}()

	c.ws.SetReadLimit(c.hub.config.MaxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	})

	for {
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("connection_id", c.id).Msg("unexpected websocket close")
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
		c.handleMessage(msg)
	}
}

// handleMessage treats every client frame as an action document.
func (c *wsConn) handleMessage(msg []byte) {
	if c.hub.submit == nil {
		return
	}
	if err := c.hub.submit(msg); err != nil {
		log.Debug().Err(err).Str("connection_id", c.id).Msg("websocket action rejected")
		c.reply(errorJSON(err.Error()))
	}
}

func (c *wsConn) reply(msg []byte) {
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.conns[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}
