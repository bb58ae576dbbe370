package client_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mokkun/habitfolio/internal/bus"
	errorvalues "github.com/mokkun/habitfolio/internal/error_values"
	"github.com/mokkun/habitfolio/pkg/client"
	"github.com/mokkun/habitfolio/pkg/entity"
	"github.com/mokkun/habitfolio/pkg/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
			"uid":   uuid.New().String(),
			"token": "issued-token",
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	require.NoError(t, c.Login(t.Context(), "test_name", "test_password"))
	assert.Equal(t, "issued-token", c.Token())
}

func TestRecordCompletion(t *testing.T) {
	habitID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/habits/"+habitID.String()+"/complete", r.URL.Path)
		require.Equal(t, "Bearer issued-token", r.Header.Get("Authorization"))
		httputil.WriteJSONResponse(w, http.StatusOK, entity.CompletionResult{
			TotalInvestment: 12,
			TotalDays:       6,
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	c.SetToken("issued-token")
	result, err := c.RecordCompletion(t.Context(), habitID, "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, 12, result.TotalInvestment)
	assert.Equal(t, 6, result.TotalDays)
}

func TestRecordCompletionDuplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteErrorResponse(w, http.StatusConflict, "habit already completed on this day", nil)
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.RecordCompletion(t.Context(), uuid.New(), "2026-08-31")
	assert.ErrorIs(t, err, errorvalues.ErrCompletionExists)
}

func TestRecordCompletionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.RecordCompletion(t.Context(), uuid.New(), "2026-08-31")
	assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
}

func TestActiveHabits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
			"habits": []*entity.Habit{
				{ID: uuid.New(), Title: "morning run", UnitAmount: 2, TargetDays: 30},
				{ID: uuid.New(), Title: "reading", UnitAmount: 1, TargetDays: 7},
			},
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	habits, err := c.ActiveHabits(t.Context())
	require.NoError(t, err)
	require.Len(t, habits, 2)
	assert.Equal(t, "morning run", habits[0].Title)
}

func TestCompletedHabitIDs(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "2026-08-31", r.URL.Query().Get("date"))
		httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
			"date":      "2026-08-31",
			"habit_ids": ids,
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	got, err := c.CompletedHabitIDs(t.Context(), "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, ids, got)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func TestBusFeedEcho(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/ws", r.URL.Path)
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		for {
			var ev bus.Event
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	feed, err := client.DialFeed(srv.URL, "issued-token")
	require.NoError(t, err)
	defer feed.Close()

	sent := bus.Event{
		Kind:       bus.EventInsert,
		Date:       "2026-08-31",
		Amount:     2,
		HabitID:    uuid.New(),
		HabitTitle: "morning run",
	}
	feed.Publish(sent)

	select {
	case got := <-feed.Events():
		assert.Equal(t, sent, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no event relayed back")
	}
}
