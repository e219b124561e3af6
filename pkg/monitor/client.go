package monitor

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Client is a websocket connection registered with a Hub.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	Send     chan []byte
	ID       uint8
	Metadata struct {
		RemoteAddr string
		UserAgent  string
	}
	avgLatency atomic.Uint32
}

func (c *Client) latency() uint16 {
	return uint16(c.avgLatency.Load())
}

// ReadPump reads from the connection until it closes or the client
// sends Closing, then unregisters the client. A KeepAlive is answered
// with a ServerInfo message.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}
		switch message[0] {
		case KeepAlive:
			select {
			case c.hub.keepAlive <- c:
			case <-c.hub.done:
				return
			}
		case Closing:
			return
		}
	}
}

// WritePump writes queued messages to the connection until Send is
// closed by the hub.
func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for message := range c.Send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}

		// update average latency
		if tcp, ok := c.conn.UnderlyingConn().(*net.TCPConn); ok {
			if info, err := tcpInfo(tcp); err == nil {
				avg := (c.avgLatency.Load()*9 + info.Rtt/1000) / 10
				c.avgLatency.Store(avg)
			}
		}
	}

	// the hub closed the channel
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
