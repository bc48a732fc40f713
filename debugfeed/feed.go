// Package debugfeed streams JSON snapshots of a running LOD scene to websocket clients.
package debugfeed

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const defaultWriteTimeout = time.Second

// Logger is the subset of the engine logger the feed writes to.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type Config struct {
	// WriteTimeout bounds every write to a client. Defaults to one second.
	WriteTimeout time.Duration
	Logger       Logger
}

// Frame is one published snapshot.
type Frame struct {
	Seq     uint64          `json:"seq"`
	Time    time.Time       `json:"time"`
	Payload json.RawMessage `json:"payload"`
}

type client struct {
	conn *websocket.Conn
}

// Feed fans out published frames to every connected client. New clients
// receive the latest frame right away.
type Feed struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte
	seq     uint64

	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	logger       Logger
}

func New(cfg Config) *Feed {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	return &Feed{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		writeTimeout: timeout,
		logger:       logger,
	}
}

func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warnf("debug feed upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}

	c := &client{conn: conn}
	f.mu.Lock()
	if f.last != nil && f.write(c, f.last) != nil {
		f.mu.Unlock()
		conn.Close()
		return
	}
	f.clients[c] = struct{}{}
	f.mu.Unlock()
	f.logger.Debugf("debug feed client %s connected", r.RemoteAddr)

	// Clients only listen; reading keeps control frames flowing and notices the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	f.remove(c)
	f.logger.Debugf("debug feed client %s disconnected", r.RemoteAddr)
}

// Publish marshals payload into a new frame and sends it to every client.
// Clients that fail to receive it are dropped.
func (f *Feed) Publish(payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	frame, err := json.Marshal(Frame{Seq: f.seq, Time: time.Now(), Payload: data})
	if err != nil {
		return err
	}
	f.last = frame

	for c := range f.clients {
		if err := f.write(c, frame); err != nil {
			f.logger.Warnf("debug feed dropped client: %v", err)
			delete(f.clients, c)
			c.conn.Close()
		}
	}
	return nil
}

// Clients returns the number of connected clients.
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Close disconnects every client.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(f.writeTimeout))
		c.conn.Close()
		delete(f.clients, c)
	}
}

// write must be called with f.mu held.
func (f *Feed) write(c *client, data []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(f.writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (f *Feed) remove(c *client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[c]; ok {
		delete(f.clients, c)
		c.conn.Close()
	}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}
