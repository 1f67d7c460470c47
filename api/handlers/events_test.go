package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/police-records-api/api/handlers"
	"github.com/linesmerrill/police-records-api/models"
	"github.com/linesmerrill/police-records-api/registration"
)

func dialEvents(t *testing.T, hub *handlers.EventHub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.EventsHandler))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestEventHub_BroadcastsArrestRegistered(t *testing.T) {
	hub := handlers.NewEventHub()
	conn := dialEvents(t, hub)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.ArrestRegistered(registration.Result{
		Arrest: models.Arrest{ArrestID: "ARR-001", PersonID: "PER-001"},
		Charge: models.Charge{ChargeID: "CHG-001", ArrestID: "ARR-001"},
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got struct {
		Event string              `json:"event"`
		Data  registration.Result `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, handlers.EventArrestRegistered, got.Event)
	assert.Equal(t, "ARR-001", got.Data.Arrest.ArrestID)
	assert.Equal(t, "CHG-001", got.Data.Charge.ChargeID)
}

func TestEventHub_DropsClosedClients(t *testing.T) {
	hub := handlers.NewEventHub()
	conn := dialEvents(t, hub)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.NotPanics(t, func() { hub.Broadcast("noop", nil) })
}

func TestEventHub_CloseDisconnectsClients(t *testing.T) {
	hub := handlers.NewEventHub()
	conn := dialEvents(t, hub)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.Clients())
}
