package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mokkun/habitfolio/internal/bus"
	"github.com/mokkun/habitfolio/pkg/httputil"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const writeWait = 10 * time.Second

// ServeEvents upgrades the connection and relays ledger events in both
// directions: bus events stream out as JSON, and events a client publishes
// (its own optimistic updates) are fanned out to everyone through the bus.
func (s *Server) ServeEvents(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	if s.bus == nil {
		logger.Error("ws error: event bus is not configured")
		httputil.WriteErrorResponse(w, http.StatusServiceUnavailable, "events are not available", nil)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws upgrade error", slog.String("error", err.Error()))
		return
	}
	events, cancel := s.bus.Subscribe()
	defer cancel()
	logger.Info("ws client connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				logger.Error("ws write error", slog.String("error", err.Error()))
				return
			}
		}
	}()

	for {
		var ev bus.Event
		if err := conn.ReadJSON(&ev); err != nil {
			break
		}
		switch ev.Kind {
		case bus.EventInsert, bus.EventUpdate, bus.EventDelete:
			s.bus.Publish(ev)
		default:
			logger.Warn("ws dropped event with unknown kind", slog.String("kind", ev.Kind))
		}
	}
	cancel()
	conn.Close()
	<-done
	logger.Info("ws client disconnected")
}
