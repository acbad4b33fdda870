package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"rcsc-server/config"
	"rcsc-server/internal/database"
	"rcsc-server/internal/logger"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

const (
	TypeInsert = "INSERT"
	TypeUpdate = "UPDATE"
	TypeDelete = "DELETE"

	ChannelRegistrations = "registrations"
)

// Event is one change notification. Insert and update events carry the
// full row under Data["new"]; delete events carry the removed row's id
// under Data["old"].
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Source    string         `json:"source,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Handler func(Event)

// EventBus delivers events to in-process subscribers synchronously, in
// publish order, and relays them through valkey pub/sub so every server
// instance sees every change. Events relayed back from valkey that this
// instance published are skipped — local dispatch already handled them.
type EventBus struct {
	cache    database.CacheClient
	config   config.Config
	log      logger.Logger
	instance string

	mu       sync.RWMutex
	handlers map[string]map[string]Handler

	cancel context.CancelFunc
	done   chan struct{}
}

func New(cache database.CacheClient, config config.Config) *EventBus {
	bus := &EventBus{
		cache:    cache,
		config:   config,
		log:      logger.New("events"),
		instance: uuid.New().String(),
		handlers: map[string]map[string]Handler{},
		done:     make(chan struct{}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	bus.cancel = cancel

	if cache != nil {
		go bus.receive(ctx)
	} else {
		close(bus.done)
	}

	return bus
}

// Publish dispatches locally first, then relays through valkey.
func (b *EventBus) Publish(channel string, event Event) error {
	log := b.log.Function("Publish")

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Channel = channel
	event.Source = b.instance

	b.dispatch(channel, event)

	if b.cache == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "event", event)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := b.cache.B().Publish().Channel(channelKey(channel)).Message(string(payload)).Build()
	if err := b.cache.Do(ctx, cmd).Error(); err != nil {
		return log.Err("failed to publish event", err, "channel", channel)
	}

	return nil
}

// Subscribe registers a handler for one channel and returns an
// unsubscribe func.
func (b *EventBus) Subscribe(channel string, handler Handler) func() {
	id := uuid.New().String()

	b.mu.Lock()
	if b.handlers[channel] == nil {
		b.handlers[channel] = map[string]Handler{}
	}
	b.handlers[channel][id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers[channel], id)
		b.mu.Unlock()
	}
}

func (b *EventBus) dispatch(channel string, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[channel]))
	for _, handler := range b.handlers[channel] {
		handlers = append(handlers, handler)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

func (b *EventBus) receive(ctx context.Context) {
	log := b.log.Function("receive")
	defer close(b.done)

	cmd := b.cache.B().Psubscribe().Pattern(channelKey("*")).Build()
	err := b.cache.Receive(ctx, cmd, func(msg valkey.PubSubMessage) {
		var event Event
		if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
			log.Er("failed to unmarshal event", err, "channel", msg.Channel)
			return
		}

		if event.Source == b.instance {
			return
		}

		b.dispatch(event.Channel, event)
	})
	if err != nil && ctx.Err() == nil {
		log.Er("event subscription terminated", err)
	}
}

func (b *EventBus) Close() error {
	b.cancel()
	<-b.done
	return nil
}

func channelKey(channel string) string {
	return "events:" + channel
}
