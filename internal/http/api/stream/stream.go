// Package stream pushes live updates to connected clients over a websocket:
// the caller's subscription and location changes, every published
// announcement, the prayer countdown and the Ramadan iftar status. When a
// repository is configured, writes to the caller's stored subscriptions and
// locations are pushed as well, re-read from storage.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/countdown"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/events"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/kv"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/locations"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/ramadan"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/subscription"
)

const (
	FrameEvent     = "event"
	FrameCountdown = "countdown"
	FrameRamadan   = "ramadan"
	FrameStorage   = "storage"

	writeWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Frame struct {
	Type  string          `json:"type"`
	Topic string          `json:"topic,omitempty"`
	Data  json.RawMessage `json:"data"`
}

// watchedKeys are the per-client storage keys pushed as storage frames.
var watchedKeys = []string{subscription.Key, locations.Key}

type Config struct {
	Bus               *events.Bus
	Repo              kv.Repository
	Clock             func() time.Time
	Schedule          func() countdown.Schedule
	CountdownInterval time.Duration
	RamadanInterval   time.Duration
}

// Hub owns every open stream so they can be closed on shutdown.
type Hub struct {
	cfg  Config
	base context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
}

func NewHub(cfg Config) *Hub {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Schedule == nil {
		cfg.Schedule = countdown.DefaultSchedule
	}
	if cfg.CountdownInterval <= 0 {
		cfg.CountdownInterval = time.Second
	}
	if cfg.RamadanInterval <= 0 {
		cfg.RamadanInterval = time.Minute
	}
	base, stop := context.WithCancel(context.Background())
	return &Hub{cfg: cfg, base: base, stop: stop}
}

// Close ends every open stream and waits for them to finish.
func (h *Hub) Close() {
	h.stop()
	h.wg.Wait()
}

func Module(h *Hub) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.Handle(http.MethodGet, "/stream", h.serve)
	})
}

// clientID prefers the header; browsers cannot set headers on a websocket
// handshake, so ?clientId= is accepted as well.
func clientID(c *gin.Context) string {
	id := middleware.GetClientID(c)
	if id == kv.DefaultClientID {
		if q := c.Query("clientId"); q != "" && len(q) <= 64 {
			return q
		}
	}
	return id
}

func (h *Hub) serve(c *gin.Context) {
	client := clientID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("client_id", client).Msg("[stream] websocket upgrade failed")
		return
	}

	h.wg.Add(1)
	defer h.wg.Done()

	log.Debug().Str("client_id", client).Msg("[stream] connected")
	defer func() {
		conn.Close()
		log.Debug().Str("client_id", client).Msg("[stream] disconnected")
	}()

	ctx, cancel := context.WithCancel(h.base)
	defer cancel()

	h.pump(ctx, cancel, conn, client)
}

func (h *Hub) pump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, client string) {
	listener := h.cfg.Bus.Subscribe(client,
		events.TopicSubscriptionChanged,
		events.TopicLocationsChanged,
		events.TopicAnnouncementPublished,
	)
	defer h.cfg.Bus.Unsubscribe(listener)

	var repo kv.Repository
	changed := make(chan string, 8)
	if h.cfg.Repo != nil {
		repo = kv.Scope(h.cfg.Repo, client)
		for _, key := range watchedKeys {
			stop := repo.Watch(key, func(k string) {
				select {
				case changed <- k:
				default:
				}
			})
			defer stop()
		}
	}

	ticks := make(chan Frame, 8)
	var loops sync.WaitGroup
	defer loops.Wait()
	defer cancel()

	send := func(kind string, v any) {
		raw, err := json.Marshal(v)
		if err != nil {
			log.Error().Err(err).Str("type", kind).Msg("[stream] could not encode frame")
			return
		}
		select {
		case ticks <- Frame{Type: kind, Data: raw}:
		case <-ctx.Done():
		}
	}

	loops.Add(3)
	go func() {
		defer loops.Done()
		countdown.New(h.cfg.Schedule(), h.cfg.Clock()).Run(ctx, h.cfg.CountdownInterval, h.cfg.Clock, func(s countdown.Snapshot) {
			send(FrameCountdown, s)
		})
	}()
	go func() {
		defer loops.Done()
		ramadan.Run(ctx, h.cfg.RamadanInterval, h.cfg.Clock, func(s ramadan.Status) {
			send(FrameRamadan, s)
		})
	}()
	go func() {
		defer loops.Done()
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	updates := listener.C
	for {
		var frame Frame
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = conn.Close()
			return
		case e, ok := <-updates:
			if !ok {
				updates = nil
				cancel()
				continue
			}
			frame = Frame{Type: FrameEvent, Topic: e.Topic, Data: e.Payload}
		case frame = <-ticks:
		case key := <-changed:
			raw, err := repo.Get(ctx, key)
			switch {
			case errors.Is(err, kv.ErrNotFound):
				raw = []byte("null")
			case err != nil:
				log.Warn().Err(err).Str("key", key).Msg("[stream] could not re-read changed key")
				continue
			case !json.Valid(raw):
				log.Warn().Str("key", key).Msg("[stream] malformed stored value, not pushed")
				continue
			}
			frame = Frame{Type: FrameStorage, Topic: key, Data: raw}
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(frame); err != nil {
			log.Debug().Err(err).Str("client_id", client).Msg("[stream] write failed")
			cancel()
		}
	}
}
