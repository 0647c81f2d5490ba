package live

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adampresley/clickygallery/pkg/carousel"
	"github.com/gorilla/websocket"
)

var (
	ErrHubClosed = fmt.Errorf("live hub is closed")
)

type HubConfig struct {
	Photos    FeaturedLister
	Interval  time.Duration
	HeroCount int

	// Optional. Defaults to real timers.
	Scheduler carousel.Scheduler
}

/*
Hub tracks every live homepage connection. Admin changes are announced
with PhotosChanged, and every connection reloads its featured carousel.
*/
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
	mutex      sync.RWMutex

	quit     chan struct{}
	quitOnce sync.Once
	stopped  chan struct{}
	running  atomic.Bool

	upgrader      websocket.Upgrader
	sessionConfig SessionConfig
}

func NewHub(config HubConfig) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, 16),
		quit:       make(chan struct{}),
		stopped:    make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessionConfig: SessionConfig{
			Photos:    config.Photos,
			Interval:  config.Interval,
			HeroCount: config.HeroCount,
			Scheduler: config.Scheduler,
		},
	}
}

/*
Run processes registrations and broadcasts until Shutdown is called.
*/
func (h *Hub) Run() {
	h.running.Store(true)
	defer close(h.stopped)

	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			if message.Type != MSG_PHOTOS_CHANGED {
				continue
			}

			h.mutex.RLock()
			for client := range h.clients {
				client.requestReload()
			}
			h.mutex.RUnlock()

		case <-h.quit:
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				client.close()
			}
			h.mutex.Unlock()

			return
		}
	}
}

/*
PhotosChanged tells every connection to reload its featured photos.
It never blocks.
*/
func (h *Hub) PhotosChanged() {
	select {
	case h.broadcast <- Message{Type: MSG_PHOTOS_CHANGED}:
	default:
		slog.Warn("live broadcast queue full, dropping photos.changed")
	}
}

/*
Shutdown closes every connection and stops Run.
*/
func (h *Hub) Shutdown() {
	h.quitOnce.Do(func() {
		close(h.quit)
	})

	if h.running.Load() {
		<-h.stopped
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

/*
Serve upgrades the request to a websocket and starts the visitor's
session.
*/
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) error {
	var (
		err  error
		conn *websocket.Conn
	)

	if conn, err = h.upgrader.Upgrade(w, r, nil); err != nil {
		return fmt.Errorf("error upgrading connection: %w", err)
	}

	client := newClient(h, conn)

	select {
	case h.register <- client:
	case <-h.quit:
		client.close()
		_ = conn.Close()
		return ErrHubClosed
	}

	if err = client.session.Start(); err != nil {
		slog.Error("error starting live session", "error", err)
	}

	go client.WritePump()
	go client.ReadPump()

	return nil
}
