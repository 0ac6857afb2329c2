package viewmodel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prbarprep/barprep-go/internal/models"
	"github.com/prbarprep/barprep-go/internal/realtime"
	"github.com/prbarprep/barprep-go/internal/session"
)

type stubChatBackend struct {
	mu        sync.Mutex
	rooms     []models.ChatRoom
	history   map[int64][]models.ChatMessage
	sendCalls int
	nextID    int64
}

func (s *stubChatBackend) Rooms(ctx context.Context) ([]models.ChatRoom, error) {
	return s.rooms, nil
}

func (s *stubChatBackend) Messages(ctx context.Context, roomID int64, limit int) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history[roomID], nil
}

func (s *stubChatBackend) SendMessage(ctx context.Context, userID int64, payload models.MessageSend) (models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendCalls++
	s.nextID++
	return models.ChatMessage{
		ID:        s.nextID,
		RoomID:    payload.RoomID,
		UserID:    userID,
		Message:   payload.Message,
		CreatedAt: time.Now(),
	}, nil
}

func (s *stubChatBackend) RoomBySubject(ctx context.Context, subject string) (models.ChatRoom, error) {
	for _, room := range s.rooms {
		if room.Subject == subject {
			return room, nil
		}
	}
	return models.ChatRoom{}, context.Canceled
}

type stubSubscriber struct {
	mu          sync.Mutex
	handlers    map[int64]realtime.Handler
	cancelCalls int
}

func (s *stubSubscriber) Subscribe(roomID int64, onMessage realtime.Handler) (realtime.UnsubscribeFunc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handlers == nil {
		s.handlers = make(map[int64]realtime.Handler)
	}
	s.handlers[roomID] = onMessage
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.cancelCalls++
		delete(s.handlers, roomID)
	}, nil
}

func (s *stubSubscriber) push(roomID int64, msg models.ChatMessage) {
	s.mu.Lock()
	handler := s.handlers[roomID]
	s.mu.Unlock()
	if handler != nil {
		handler(msg)
	}
}

func chatMsg(id, roomID int64, text string) models.ChatMessage {
	return models.ChatMessage{ID: id, RoomID: roomID, UserID: 2, Message: text, CreatedAt: time.Now()}
}

func newChat(backend ChatBackend, subscriber Subscriber) *ChatView {
	return NewChatView(backend, subscriber, session.Static(1), zerolog.Nop())
}

func TestOpenRoomMergesHistoryWithPushes(t *testing.T) {
	backend := &stubChatBackend{
		history: map[int64][]models.ChatMessage{7: {chatMsg(5, 7, "hola")}},
		nextID:  100,
	}
	subscriber := &stubSubscriber{}
	vm := newChat(backend, subscriber)

	require.NoError(t, vm.OpenRoom(context.Background(), models.ChatRoom{ID: 7, Subject: "familia"}))

	// A push duplicating a history row renders once; a new one appends.
	subscriber.push(7, chatMsg(5, 7, "hola"))
	subscriber.push(7, chatMsg(6, 7, "¿alguien repasó sucesiones?"))

	messages := vm.Messages()
	require.Len(t, messages, 2)
	require.Equal(t, int64(5), messages[0].ID)
	require.Equal(t, int64(6), messages[1].ID)
}

func TestSendMergesThroughSameDeduplication(t *testing.T) {
	backend := &stubChatBackend{nextID: 40}
	subscriber := &stubSubscriber{}
	vm := newChat(backend, subscriber)
	require.NoError(t, vm.OpenRoom(context.Background(), models.ChatRoom{ID: 3}))

	sent, err := vm.Send(context.Background(), "buenos días")
	require.NoError(t, err)
	require.Equal(t, int64(41), sent.ID)

	// The realtime feed echoes our own message back.
	subscriber.push(3, sent)

	require.Len(t, vm.Messages(), 1)
}

func TestSendRejectsMessagesThatSanitizeToNothing(t *testing.T) {
	backend := &stubChatBackend{}
	subscriber := &stubSubscriber{}
	vm := newChat(backend, subscriber)
	require.NoError(t, vm.OpenRoom(context.Background(), models.ChatRoom{ID: 3}))

	_, err := vm.Send(context.Background(), "  <script>alert(1)</script>  ")
	require.ErrorIs(t, err, ErrEmptyMessage)
	require.Zero(t, backend.sendCalls)
}

func TestSendStripsMarkupButKeepsText(t *testing.T) {
	backend := &stubChatBackend{}
	subscriber := &stubSubscriber{}
	vm := newChat(backend, subscriber)
	require.NoError(t, vm.OpenRoom(context.Background(), models.ChatRoom{ID: 3}))

	sent, err := vm.Send(context.Background(), `<img src=x onerror=alert(1)>repaso mañana`)
	require.NoError(t, err)
	require.Equal(t, "repaso mañana", sent.Message)
}

func TestSendWithoutOpenRoom(t *testing.T) {
	vm := newChat(&stubChatBackend{}, &stubSubscriber{})

	_, err := vm.Send(context.Background(), "hola")
	require.ErrorIs(t, err, ErrNoRoom)
}

func TestRoomSwitchDropsOldSubscriptionAndMessages(t *testing.T) {
	backend := &stubChatBackend{
		history: map[int64][]models.ChatMessage{
			1: {chatMsg(10, 1, "sala uno")},
			2: {chatMsg(20, 2, "sala dos")},
		},
	}
	subscriber := &stubSubscriber{}
	vm := newChat(backend, subscriber)

	require.NoError(t, vm.OpenRoom(context.Background(), models.ChatRoom{ID: 1}))
	require.NoError(t, vm.OpenRoom(context.Background(), models.ChatRoom{ID: 2}))

	require.Equal(t, 1, subscriber.cancelCalls)

	// A straggler for the old room must not leak into the new view.
	subscriber.push(1, chatMsg(11, 1, "tarde"))

	messages := vm.Messages()
	require.Len(t, messages, 1)
	require.Equal(t, int64(20), messages[0].ID)
}

func TestChatCloseIsIdempotentAndFreezesView(t *testing.T) {
	backend := &stubChatBackend{history: map[int64][]models.ChatMessage{4: {chatMsg(1, 4, "hola")}}}
	subscriber := &stubSubscriber{}
	vm := newChat(backend, subscriber)
	require.NoError(t, vm.OpenRoom(context.Background(), models.ChatRoom{ID: 4}))

	vm.Close()
	vm.Close()
	require.Equal(t, 1, subscriber.cancelCalls)

	subscriber.push(4, chatMsg(2, 4, "tarde"))
	require.Len(t, vm.Messages(), 1)

	_, err := vm.Send(context.Background(), "hola")
	require.ErrorIs(t, err, ErrNoRoom)
}

func TestOpenSubjectResolvesRoom(t *testing.T) {
	backend := &stubChatBackend{
		rooms:   []models.ChatRoom{{ID: 8, Subject: "penal", Name: "Derecho Penal"}},
		history: map[int64][]models.ChatMessage{},
	}
	subscriber := &stubSubscriber{}
	vm := newChat(backend, subscriber)

	require.NoError(t, vm.OpenSubject(context.Background(), "penal"))

	room, ok := vm.Room()
	require.True(t, ok)
	require.Equal(t, int64(8), room.ID)
}
