package stream

import (
	"net/http"
	"sync"
	"time"

	"MarketPulse/internal/domain/repository"
	applogger "MarketPulse/pkg/logger"

	"github.com/gorilla/websocket"
)

const sendBuffer = 8

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

// Hub fans push messages out to connected websocket subscribers.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}

	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	pingInterval time.Duration
	greeting     func() ([]byte, bool)
	logger       *applogger.Logger
	metrics      repository.Metrics
}

type Option func(*Hub)

func WithWriteTimeout(d time.Duration) Option {
	return func(h *Hub) { h.writeTimeout = d }
}

func WithPingInterval(d time.Duration) Option {
	return func(h *Hub) { h.pingInterval = d }
}

// WithAllowedOrigins restricts upgrades to the listed origins. "*" allows any.
// Requests without an Origin header are always accepted.
func WithAllowedOrigins(origins ...string) Option {
	return func(h *Hub) {
		allowed := make(map[string]bool, len(origins))
		for _, o := range origins {
			allowed[o] = true
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed["*"] || allowed[origin]
		}
	}
}

// WithGreeting sends the returned message to each new subscriber when ok.
func WithGreeting(fn func() ([]byte, bool)) Option {
	return func(h *Hub) { h.greeting = fn }
}

func WithLogger(l *applogger.Logger) Option {
	return func(h *Hub) { h.logger = l }
}

func WithMetrics(m repository.Metrics) Option {
	return func(h *Hub) { h.metrics = m }
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		clients:      make(map[*client]struct{}),
		writeTimeout: 5 * time.Second,
		pingInterval: 30 * time.Second,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger: applogger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the request and registers the subscriber.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		h.logger.Debug("websocket upgrade failed", applogger.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer), done: make(chan struct{})}
	if h.greeting != nil {
		if msg, ok := h.greeting(); ok {
			c.send <- msg
		}
	}
	h.add(c)

	go h.writePump(c)
	go h.readPump(c)
}

// Broadcast queues msg for every subscriber and returns how many accepted it.
// A subscriber whose queue is full is dropped.
func (h *Hub) Broadcast(msg []byte) int {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range targets {
		select {
		case c.send <- msg:
			sent++
		default:
			h.logger.Warn("dropping slow subscriber", applogger.String("remote", c.conn.RemoteAddr().String()))
			h.remove(c)
		}
	}
	return sent
}

// Count is the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()
	for _, c := range targets {
		h.remove(c)
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.SetSubscribers(n)
	}
	h.logger.Debug("subscriber connected", applogger.Int("subscribers", n))
}

func (h *Hub) remove(c *client) {
	c.once.Do(func() {
		h.mu.Lock()
		delete(h.clients, c)
		n := len(h.clients)
		h.mu.Unlock()

		close(c.done)
		_ = c.conn.Close()
		if h.metrics != nil {
			h.metrics.SetSubscribers(n)
		}
		h.logger.Debug("subscriber removed", applogger.Int("subscribers", n))
	})
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.pingInterval)
	defer func() {
		ticker.Stop()
		h.remove(c)
	}()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.writeTimeout)); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so control messages are processed and
// detects disconnects. The deadline is reset on every pong.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)

	wait := 2 * h.pingInterval
	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(wait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(wait))
	}
}
