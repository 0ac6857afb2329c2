package realtime

import (
	"encoding/json"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/prbarprep/barprep-go/internal/observability"
)

const natsSubjectPrefix = "barprep"

// NATSTransport carries realtime events over a NATS connection. Reconnection
// on drop follows the nats.go client defaults, which resubscribe existing
// subscriptions after a successful reconnect.
type NATSTransport struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// DialNATS connects to a NATS server. An empty token is passed through and
// will fail authentication on servers that require one.
func DialNATS(url, token string, logger zerolog.Logger) (*NATSTransport, error) {
	opts := []nats.Option{nats.Name("barprep-client")}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	return &NATSTransport{
		conn:   conn,
		logger: logger.With().Str("component", "nats_transport").Logger(),
	}, nil
}

// subjectFor maps a channel name onto the NATS subject hierarchy, e.g.
// "chat_room_7" becomes "barprep.chat.room.7".
func subjectFor(channel string) string {
	return natsSubjectPrefix + "." + strings.ReplaceAll(channel, "_", ".")
}

// Subscribe registers fn for all events published on the channel's subject.
func (t *NATSTransport) Subscribe(channel string, fn func(Event)) (func(), error) {
	subject := subjectFor(channel)

	sub, err := t.conn.Subscribe(subject, func(msg *nats.Msg) {
		var event Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			observability.RealtimeUndecodable().WithLabelValues("nats").Inc()
			t.logger.Warn().Err(err).Str("subject", subject).Msg("dropping undecodable realtime payload")
			return
		}
		fn(event)
	})
	if err != nil {
		return nil, err
	}

	return func() {
		// Unsubscribe on a closed connection errors; teardown stays silent.
		_ = sub.Unsubscribe()
	}, nil
}

// Close drains the connection, letting in-flight callbacks finish.
func (t *NATSTransport) Close() error {
	return t.conn.Drain()
}
