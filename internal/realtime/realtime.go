// Package realtime delivers server-pushed chat events. An Adapter scopes a
// transport's change feed to one room and forwards only insert events to a
// caller-supplied handler until torn down.
//
// Delivery is best-effort: there is no buffering or replay, events arriving
// before subscription establishment completes are lost, and a dropped
// transport goes silently dark without notifying handlers. Callers needing
// history fetch it over the request/response API before subscribing and
// de-duplicate by message id.
package realtime

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/prbarprep/barprep-go/internal/models"
	"github.com/prbarprep/barprep-go/internal/observability"
)

// Change feed operation types emitted on the chat_messages table.
const (
	EventInsert = "insert"
	EventUpdate = "update"
	EventDelete = "delete"
)

// MessageTable is the only table whose change feed reaches chat handlers.
const MessageTable = "chat_messages"

// Event is one change-feed notification.
type Event struct {
	Type   string             `json:"type"`
	Table  string             `json:"table"`
	RoomID int64              `json:"room_id"`
	Record models.ChatMessage `json:"record"`
}

// Handler receives inserted chat messages for a subscribed room.
type Handler func(models.ChatMessage)

// UnsubscribeFunc tears down a subscription. Calling it more than once, or
// after the underlying connection has dropped, is a no-op.
type UnsubscribeFunc func()

// Transport carries raw events for named channels.
type Transport interface {
	// Subscribe registers fn for a channel and returns a teardown function.
	Subscribe(channel string, fn func(Event)) (func(), error)
	// Close releases the underlying connection.
	Close() error
}

// ChannelName derives the channel for a room. The mapping is deterministic so
// that re-subscribing to the same room after teardown lands on the same
// channel with no stale handler left behind.
func ChannelName(roomID int64) string {
	return fmt.Sprintf("chat_room_%d", roomID)
}

// Adapter filters a transport's event stream down to one room's inserts.
type Adapter struct {
	transport Transport
	logger    zerolog.Logger
}

// NewAdapter wraps a transport.
func NewAdapter(transport Transport, logger zerolog.Logger) *Adapter {
	return &Adapter{
		transport: transport,
		logger:    logger.With().Str("component", "realtime_adapter").Logger(),
	}
}

// Subscribe opens one logical channel for roomID and invokes onMessage for
// every chat_messages insert whose room matches. Updates, deletes, and events
// on other tables are received by the transport but never reach onMessage.
func (a *Adapter) Subscribe(roomID int64, onMessage Handler) (UnsubscribeFunc, error) {
	channel := ChannelName(roomID)

	cancel, err := a.transport.Subscribe(channel, func(event Event) {
		if event.Type != EventInsert || event.Table != MessageTable || event.RoomID != roomID {
			observability.RealtimeEvents().WithLabelValues("filtered").Inc()
			return
		}
		observability.RealtimeEvents().WithLabelValues("delivered").Inc()
		onMessage(event.Record)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", channel, err)
	}

	a.logger.Debug().Int64("room_id", roomID).Str("channel", channel).Msg("realtime subscription established")

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			a.logger.Debug().Int64("room_id", roomID).Msg("realtime subscription released")
		})
	}, nil
}
