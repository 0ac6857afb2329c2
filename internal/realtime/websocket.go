package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/prbarprep/barprep-go/internal/observability"
)

// Frame kinds exchanged with the websocket realtime gateway.
const (
	frameSubscribe   = "subscribe"
	frameUnsubscribe = "unsubscribe"
	frameEvent       = "event"
)

type wsFrame struct {
	Kind    string `json:"kind"`
	Channel string `json:"channel"`
	Event   *Event `json:"event,omitempty"`
}

// WebsocketTransport multiplexes channel subscriptions over one websocket
// connection. When the connection drops the transport goes dark: handlers stop
// receiving events and no error is surfaced, matching the adapter contract.
type WebsocketTransport struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu       sync.Mutex
	handlers map[string]map[uint64]func(Event)
	nextID   uint64
	dead     bool

	closeOnce sync.Once
	logger    zerolog.Logger
}

// DialWebsocket connects to the realtime gateway. An empty token is sent as-is
// and will be rejected by gateways that require credentials.
func DialWebsocket(ctx context.Context, url, token string, logger zerolog.Logger) (*WebsocketTransport, error) {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	t := &WebsocketTransport{
		conn:     conn,
		handlers: make(map[string]map[uint64]func(Event)),
		logger:   logger.With().Str("component", "websocket_transport").Logger(),
	}

	go t.readPump()

	return t, nil
}

// Subscribe registers fn for a channel, joining the channel on first use.
func (t *WebsocketTransport) Subscribe(channel string, fn func(Event)) (func(), error) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++

	first := false
	if _, ok := t.handlers[channel]; !ok {
		t.handlers[channel] = make(map[uint64]func(Event))
		first = true
	}
	t.handlers[channel][id] = fn
	t.mu.Unlock()

	if first {
		if err := t.writeFrame(wsFrame{Kind: frameSubscribe, Channel: channel}); err != nil {
			t.dropHandler(channel, id)
			return nil, err
		}
	}

	return func() {
		if t.dropHandler(channel, id) {
			// Last handler gone; leaving the channel is best-effort since the
			// connection may already be down.
			_ = t.writeFrame(wsFrame{Kind: frameUnsubscribe, Channel: channel})
		}
	}, nil
}

// dropHandler removes one handler and reports whether the channel emptied.
func (t *WebsocketTransport) dropHandler(channel string, id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	handlers, ok := t.handlers[channel]
	if !ok {
		return false
	}
	if _, ok := handlers[id]; !ok {
		return false
	}
	delete(handlers, id)
	if len(handlers) == 0 {
		delete(t.handlers, channel)
		return !t.dead
	}
	return false
}

func (t *WebsocketTransport) writeFrame(frame wsFrame) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	return t.conn.WriteJSON(frame)
}

func (t *WebsocketTransport) readPump() {
	defer t.markDead()

	for {
		_, payload, err := t.conn.ReadMessage()
		if err != nil {
			t.logger.Debug().Err(err).Msg("realtime websocket read loop ended")
			return
		}

		var frame wsFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			observability.RealtimeUndecodable().WithLabelValues("websocket").Inc()
			t.logger.Warn().Err(err).Msg("dropping undecodable realtime frame")
			continue
		}

		if frame.Kind != frameEvent || frame.Event == nil {
			continue
		}

		t.mu.Lock()
		targets := make([]func(Event), 0, len(t.handlers[frame.Channel]))
		for _, fn := range t.handlers[frame.Channel] {
			targets = append(targets, fn)
		}
		t.mu.Unlock()

		for _, fn := range targets {
			fn(*frame.Event)
		}
	}
}

func (t *WebsocketTransport) markDead() {
	t.mu.Lock()
	t.dead = true
	t.mu.Unlock()
}

// Close shuts the connection down. Safe to call more than once.
func (t *WebsocketTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		t.markDead()
		err = t.conn.Close()
	})
	return err
}
