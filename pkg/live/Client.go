package live

import (
	"log/slog"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

/*
Client is one websocket connection and the session it drives.
*/
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	session *Session

	send      chan []byte
	reload    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	result := &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		reload: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	sessionConfig := hub.sessionConfig
	sessionConfig.Send = result.enqueue
	result.session = NewSession(sessionConfig)

	return result
}

// ReadPump pumps messages from the connection into the session
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
		}

		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Error("websocket error", "error", err)
			}

			break
		}

		if err = c.session.Handle(message); err != nil {
			slog.Error("error handling live message", "error", err)
		}
	}
}

// WritePump writes queued messages, one per frame, and keeps the connection alive
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-c.reload:
			if err := c.session.ReloadPhotos(); err != nil {
				slog.Error("error reloading live session photos", "error", err)
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		}
	}
}

func (c *Client) enqueue(msg Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal live message", "error", err, "type", msg.Type)
		return
	}

	select {
	case <-c.done:
	case c.send <- b:
	default:
		slog.Warn("live client send buffer full, dropping message", "type", msg.Type)
	}
}

func (c *Client) requestReload() {
	select {
	case c.reload <- struct{}{}:
	default:
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.session.Close()
		close(c.done)
	})
}
