package viewmodel

import (
	"context"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/prbarprep/barprep-go/internal/models"
	"github.com/prbarprep/barprep-go/internal/realtime"
	"github.com/prbarprep/barprep-go/internal/session"
)

const chatHistoryLimit = 50

// ChatBackend is the slice of the API client the chat page uses.
type ChatBackend interface {
	Rooms(ctx context.Context) ([]models.ChatRoom, error)
	Messages(ctx context.Context, roomID int64, limit int) ([]models.ChatMessage, error)
	SendMessage(ctx context.Context, userID int64, payload models.MessageSend) (models.ChatMessage, error)
	RoomBySubject(ctx context.Context, subject string) (models.ChatRoom, error)
}

// Subscriber opens room-scoped realtime subscriptions.
type Subscriber interface {
	Subscribe(roomID int64, onMessage realtime.Handler) (realtime.UnsubscribeFunc, error)
}

// ChatView holds one open room: a fetched history merged with push-delivered
// messages. A message can arrive through both paths; the id-keyed seen set
// guarantees it renders once. Pushes are best-effort: a silently dead
// subscription stops merging and nothing signals it.
type ChatView struct {
	backend    ChatBackend
	subscriber Subscriber
	sess       session.Session
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger

	mu          sync.Mutex
	room        *models.ChatRoom
	messages    []models.ChatMessage
	seen        map[int64]struct{}
	unsubscribe realtime.UnsubscribeFunc
	sending     bool
	closed      bool
}

// NewChatView builds the view-model for one session.
func NewChatView(backend ChatBackend, subscriber Subscriber, sess session.Session, logger zerolog.Logger) *ChatView {
	sanitizer := bluemonday.UGCPolicy()
	sanitizer.AllowElements("br")

	return &ChatView{
		backend:    backend,
		subscriber: subscriber,
		sess:       sess,
		sanitizer:  sanitizer,
		logger:     logger.With().Str("component", "chat_view").Logger(),
	}
}

// Rooms lists the available rooms.
func (v *ChatView) Rooms(ctx context.Context) ([]models.ChatRoom, error) {
	return v.backend.Rooms(ctx)
}

// OpenSubject opens the room dedicated to a subject.
func (v *ChatView) OpenSubject(ctx context.Context, subject string) error {
	room, err := v.backend.RoomBySubject(ctx, subject)
	if err != nil {
		return err
	}
	return v.OpenRoom(ctx, room)
}

// OpenRoom switches to a room: tears down any previous subscription, fetches
// recent history, then subscribes for pushes. History is fetched first so the
// only gap is the short establishment window, which is unrecoverable by
// contract.
func (v *ChatView) OpenRoom(ctx context.Context, room models.ChatRoom) error {
	v.mu.Lock()
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
	v.room = &room
	v.messages = nil
	v.seen = make(map[int64]struct{})
	v.closed = false
	roomID := room.ID
	v.mu.Unlock()

	history, err := v.backend.Messages(ctx, roomID, chatHistoryLimit)
	if err != nil {
		return err
	}
	for _, msg := range history {
		v.absorb(roomID, msg)
	}

	unsubscribe, err := v.subscriber.Subscribe(roomID, func(msg models.ChatMessage) {
		v.absorb(roomID, msg)
	})
	if err != nil {
		return err
	}

	v.mu.Lock()
	if v.closed || v.room == nil || v.room.ID != roomID {
		// The view moved on while we were subscribing.
		v.mu.Unlock()
		unsubscribe()
		return nil
	}
	v.unsubscribe = unsubscribe
	v.mu.Unlock()
	return nil
}

// absorb merges one message into the list unless it was already seen or the
// view has moved on.
func (v *ChatView) absorb(roomID int64, msg models.ChatMessage) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || v.room == nil || v.room.ID != roomID {
		return
	}
	if _, dup := v.seen[msg.ID]; dup {
		return
	}
	v.seen[msg.ID] = struct{}{}
	v.messages = append(v.messages, msg)
}

// Send posts a message into the open room. The text is sanitized before
// leaving the client, mirroring what the backend enforces. The control locks
// synchronously against a second send while one is pending. The created
// message merges through the same de-duplication as pushes, so its copy from
// the realtime feed cannot render twice.
func (v *ChatView) Send(ctx context.Context, text string) (models.ChatMessage, error) {
	clean := strings.TrimSpace(v.sanitizer.Sanitize(text))
	if clean == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	v.mu.Lock()
	if v.room == nil || v.closed {
		v.mu.Unlock()
		return models.ChatMessage{}, ErrNoRoom
	}
	if v.sending {
		v.mu.Unlock()
		return models.ChatMessage{}, ErrSubmissionInFlight
	}
	v.sending = true
	roomID := v.room.ID
	v.mu.Unlock()

	message, err := v.backend.SendMessage(ctx, v.sess.UserID, models.MessageSend{
		RoomID:  roomID,
		Message: clean,
	})

	v.mu.Lock()
	v.sending = false
	v.mu.Unlock()

	if err != nil {
		return models.ChatMessage{}, err
	}

	v.absorb(roomID, message)
	return message, nil
}

// Close releases the realtime subscription and freezes the view: late pushes
// and late call resolutions no longer mutate state. Safe to call repeatedly.
func (v *ChatView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}

// Room reports the open room, if any.
func (v *ChatView) Room() (models.ChatRoom, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.room == nil {
		return models.ChatRoom{}, false
	}
	return *v.room, true
}

// Messages returns the merged message list in arrival order.
func (v *ChatView) Messages() []models.ChatMessage {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.ChatMessage, len(v.messages))
	copy(out, v.messages)
	return out
}
