package roster

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"rcsc-server/internal/events"
	"rcsc-server/internal/logger"

	"github.com/gorilla/websocket"
)

// Feed holds one session's change-event subscription. Connect acquires
// it; Close always releases the connection, so the subscription is
// scoped to the dashboard's lifetime.
type Feed struct {
	conn   *websocket.Conn
	roster *Roster
	log    logger.Logger

	done      chan struct{}
	closeOnce sync.Once
}

// Connect dials the server's event stream, subscribes to the
// registrations channel and applies every received event to the roster.
func Connect(ctx context.Context, wsURL string, header http.Header, roster *Roster) (*Feed, error) {
	log := logger.New("roster").Function("Connect")

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, log.Err("failed to dial event stream", err, "url", wsURL)
	}

	subscribe := map[string]string{"type": "subscribe", "channel": events.ChannelRegistrations}
	if err := conn.WriteJSON(subscribe); err != nil {
		conn.Close()
		return nil, log.Err("failed to subscribe", err)
	}

	feed := &Feed{
		conn:   conn,
		roster: roster,
		log:    logger.New("roster").File("feed"),
		done:   make(chan struct{}),
	}

	go feed.readLoop()

	return feed, nil
}

func (f *Feed) readLoop() {
	log := f.log.Function("readLoop")
	defer close(f.done)

	for {
		_, raw, err := f.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Er("event stream closed unexpectedly", err)
			}
			return
		}

		var event events.Event
		if err := json.Unmarshal(raw, &event); err != nil {
			log.Er("failed to decode event", err)
			continue
		}

		f.roster.Apply(event)
	}
}

// Close releases the stream connection and waits for the read loop to
// drain.
func (f *Feed) Close() error {
	var err error
	f.closeOnce.Do(func() {
		deadline := time.Now().Add(5 * time.Second)
		_ = f.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			deadline,
		)
		err = f.conn.Close()

		select {
		case <-f.done:
		case <-time.After(5 * time.Second):
		}
	})
	return err
}
