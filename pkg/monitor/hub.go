// Package monitor streams register states to websocket clients.
package monitor

import (
	"context"
	"encoding/binary"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/sm83/pkg/log"
	"golang.org/x/sys/unix"
)

// ErrClosed is returned by Publish once the hub has stopped.
var ErrClosed = errors.New("monitor: hub closed")

// Hub fans published states out to every connected client. Repeated
// states are sent as their index in a ring cache shared by all
// clients.
type Hub struct {
	clients map[*Client]bool

	broadcast            chan []byte
	register, unregister chan *Client
	keepAlive            chan *Client
	done                 chan struct{}

	cache        *cache
	compression  bool
	quality      int
	infoInterval time.Duration
	log          log.Logger

	currentID uint8
	mu        sync.Mutex
}

// Opt is a function that modifies a Hub instance.
type Opt func(h *Hub)

// WithLogger sets the logger connection events are reported to.
func WithLogger(l log.Logger) Opt {
	return func(h *Hub) {
		h.log = l
	}
}

// WithCompression enables or disables brotli compression of states.
func WithCompression(enabled bool) Opt {
	return func(h *Hub) {
		h.compression = enabled
	}
}

// WithCacheSize sets the number of states kept in the ring cache.
func WithCacheSize(n int) Opt {
	return func(h *Hub) {
		if n > 0 {
			h.cache = newCache(n)
		}
	}
}

// WithInfoInterval sets how often ServerInfo is broadcast.
func WithInfoInterval(d time.Duration) Opt {
	return func(h *Hub) {
		h.infoInterval = d
	}
}

// NewHub returns a hub; it does nothing until Run is called.
func NewHub(opts ...Opt) *Hub {
	h := &Hub{
		clients:      make(map[*Client]bool),
		broadcast:    make(chan []byte, 256),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		keepAlive:    make(chan *Client),
		done:         make(chan struct{}),
		cache:        newCache(256),
		compression:  true,
		quality:      7,
		infoInterval: time.Second,
		log:          log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run handles registration and broadcasting until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	t := time.NewTicker(h.infoInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.log.Infof("client %d connected from %s", c.ID, c.Metadata.RemoteAddr)
		case c := <-h.unregister:
			// is this client still registered
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
				h.log.Infof("client %d disconnected", c.ID)

				// notify connected clients that this client has disconnected
				for other := range h.clients {
					select {
					case other.Send <- []byte{ClientClosing, c.ID}:
					default:
					}
				}
			}
		case c := <-h.keepAlive:
			// answer with the current server info
			if h.clients[c] {
				select {
				case c.Send <- h.info():
				default:
				}
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					close(c.Send)
					delete(h.clients, c)
				}
			}
		case <-t.C:
			h.sendInfo()
		}
	}
}

func (h *Hub) info() []byte {
	data := []byte{ServerInfo, uint8(len(h.clients))}
	for c := range h.clients {
		data = append(data, c.ID, 0, 0)
		binary.LittleEndian.PutUint16(data[len(data)-2:], c.latency())
	}
	return data
}

func (h *Hub) sendInfo() {
	data := h.info()
	for c := range h.clients {
		select {
		case c.Send <- data:
		default:
		}
	}
}

// Publish compresses state and broadcasts it to every client. A state
// already in the cache is sent as its index. Publish never blocks on
// slow clients; if the broadcast queue is full the state is dropped.
func (h *Hub) Publish(state []byte) error {
	select {
	case <-h.done:
		return ErrClosed
	default:
	}

	output := state
	if h.compression {
		var err error
		output, err = cbrotli.Encode(state, cbrotli.WriterOptions{
			Quality: h.quality,
		})
		if err != nil {
			return err
		}
	}

	// calculate the hash of the data
	hash := xxhash.Sum64(output)

	var msg []byte
	h.cache.Lock()
	// does this state exist in the cache?
	if idx := h.cache.index(hash); idx != -1 {
		msg = []byte{StateCache, byte(idx), byte(idx >> 8)}
	} else {
		idx = h.cache.add(hash, output)
		msg = append([]byte{State, byte(idx), byte(idx >> 8)}, output...)
	}
	h.cache.Unlock()

	select {
	case h.broadcast <- msg:
	case <-h.done:
		return ErrClosed
	default:
		h.log.Debugf("broadcast queue full, dropped state")
	}
	return nil
}

// ServeHTTP upgrades the request to a websocket and registers the
// client. The client first receives the current cache.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("upgrading %s: %v", r.RemoteAddr, err)
		return
	}

	c := h.newClient(conn, r)

	h.cache.RLock()
	c.Send <- append([]byte{StateCacheSync}, h.cache.sync()...)
	h.cache.RUnlock()

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	// spawn read/write pumps
	go c.ReadPump()
	go c.WritePump()
}

// ListenAndServe serves the hub on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	h.log.Infof("monitor listening on %s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newClient creates a new client for the connection.
func (h *Hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentID++

	c := &Client{
		hub:  h,
		conn: conn,
		Send: make(chan []byte, 256),
		ID:   h.currentID,
	}
	c.Metadata.RemoteAddr = r.RemoteAddr
	c.Metadata.UserAgent = r.Header.Get("User-Agent")
	return c
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func tcpInfo(conn *net.TCPConn) (*unix.TCPInfo, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return nil, err
	}

	var info *unix.TCPInfo
	ctrlErr := raw.Control(func(fd uintptr) {
		info, err = unix.GetsockoptTCPInfo(int(fd), unix.IPPROTO_TCP, unix.TCP_INFO)
	})
	switch {
	case ctrlErr != nil:
		return nil, ctrlErr
	case err != nil:
		return nil, err
	}

	return info, nil
}
