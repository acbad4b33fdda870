package roster

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rcsc-server/internal/events"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventStream is a minimal stand-in for the server's websocket endpoint:
// it records the subscribe message and pushes whatever events the test
// hands it.
type eventStream struct {
	server    *httptest.Server
	subscribe chan map[string]string
	send      chan events.Event
}

func newEventStream(t *testing.T) *eventStream {
	t.Helper()

	stream := &eventStream{
		subscribe: make(chan map[string]string, 1),
		send:      make(chan events.Event),
	}

	upgrader := websocket.Upgrader{}
	stream.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var subscribe map[string]string
		require.NoError(t, conn.ReadJSON(&subscribe))
		stream.subscribe <- subscribe

		for event := range stream.send {
			raw, err := json.Marshal(event)
			require.NoError(t, err)
			if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		}
	}))
	t.Cleanup(func() {
		close(stream.send)
		stream.server.Close()
	})

	return stream
}

func (s *eventStream) url() string {
	return "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
}

func TestFeed_SubscribesAndAppliesEvents(t *testing.T) {
	stream := newEventStream(t)

	r := New()
	feed, err := Connect(context.Background(), stream.url(), nil, r)
	require.NoError(t, err)
	defer feed.Close()

	select {
	case subscribe := <-stream.subscribe:
		assert.Equal(t, map[string]string{
			"type":    "subscribe",
			"channel": events.ChannelRegistrations,
		}, subscribe)
	case <-time.After(2 * time.Second):
		t.Fatal("no subscribe message received")
	}

	stream.send <- events.Event{
		ID:   "evt-1",
		Type: events.TypeInsert,
		Data: map[string]any{"new": sampleRow(1, "rahim")},
	}

	assert.Eventually(t, func() bool {
		return r.Len() == 1
	}, 2*time.Second, 10*time.Millisecond)

	stream.send <- events.Event{
		ID:   "evt-2",
		Type: events.TypeDelete,
		Data: map[string]any{"old": map[string]any{"id": 1}},
	}

	assert.Eventually(t, func() bool {
		return r.Len() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFeed_UnknownEventTypeSkipped(t *testing.T) {
	stream := newEventStream(t)

	r := New()
	feed, err := Connect(context.Background(), stream.url(), nil, r)
	require.NoError(t, err)
	defer feed.Close()

	<-stream.subscribe

	// unknown event types are skipped; the loop keeps reading
	stream.send <- events.Event{ID: "evt-bad", Type: "NONSENSE"}
	stream.send <- events.Event{
		ID:   "evt-good",
		Type: events.TypeInsert,
		Data: map[string]any{"new": sampleRow(2, "karim")},
	}

	assert.Eventually(t, func() bool {
		return r.Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFeed_CloseIsIdempotent(t *testing.T) {
	stream := newEventStream(t)

	feed, err := Connect(context.Background(), stream.url(), nil, New())
	require.NoError(t, err)

	<-stream.subscribe

	assert.NoError(t, feed.Close())
	assert.NoError(t, feed.Close())
}
