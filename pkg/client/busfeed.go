package client

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/mokkun/habitfolio/internal/bus"
)

const feedBuffer = 16

// BusFeed is a websocket subscription to the server's ledger event relay.
// Incoming events arrive on Events; Publish pushes this client's own events
// to everyone else (and back to itself, the relay echoes).
type BusFeed struct {
	conn   *websocket.Conn
	events chan bus.Event

	mu     sync.Mutex
	closed bool
}

// DialFeed connects to the relay of the API at baseURL using the bearer token.
func DialFeed(baseURL, token string) (*BusFeed, error) {
	wsURL := strings.Replace(baseURL, "http", "ws", 1) + "/api/v1/ws"
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		return nil, errors.New("dialing event feed error: " + err.Error())
	}
	feed := &BusFeed{
		conn:   conn,
		events: make(chan bus.Event, feedBuffer),
	}
	go feed.readLoop()
	return feed, nil
}

// Events streams relayed ledger events. The channel closes when the
// connection drops or Close is called.
func (f *BusFeed) Events() <-chan bus.Event {
	return f.events
}

// Publish sends an event through the relay. Fire and forget, a failed write
// is only logged.
func (f *BusFeed) Publish(ev bus.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	if err := f.conn.WriteJSON(ev); err != nil {
		slog.Error("publishing event error", slog.String("error", err.Error()))
	}
}

func (f *BusFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	return f.conn.Close()
}

func (f *BusFeed) readLoop() {
	defer close(f.events)
	for {
		var ev bus.Event
		if err := f.conn.ReadJSON(&ev); err != nil {
			f.mu.Lock()
			closed := f.closed
			f.mu.Unlock()
			if !closed {
				slog.Error("event feed read error", slog.String("error", err.Error()))
			}
			return
		}
		select {
		case f.events <- ev:
		default:
			// Slow consumer, drop rather than stall the socket
		}
	}
}
