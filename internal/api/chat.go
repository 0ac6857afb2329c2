package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prbarprep/barprep-go/internal/models"
)

// Rooms lists all chat rooms.
func (c *Client) Rooms(ctx context.Context) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	if err := c.do(ctx, http.MethodGet, "/chat/rooms", nil, nil, &rooms, "chat", "rooms"); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Messages fetches the most recent limit messages for a room, oldest first.
func (c *Client) Messages(ctx context.Context, roomID int64, limit int) ([]models.ChatMessage, error) {
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}

	var messages []models.ChatMessage
	path := fmt.Sprintf("/chat/room/%d/messages", roomID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &messages, "chat", "messages"); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage posts a message into a room and returns the created record. The
// same message may also arrive over the realtime feed; callers de-duplicate by
// message id.
func (c *Client) SendMessage(ctx context.Context, userID int64, payload models.MessageSend) (models.ChatMessage, error) {
	if err := c.validatePayload(payload); err != nil {
		return models.ChatMessage{}, err
	}

	var message models.ChatMessage
	path := fmt.Sprintf("/chat/message/%d", userID)
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &message, "chat", "send"); err != nil {
		return models.ChatMessage{}, err
	}
	return message, nil
}

// RoomBySubject fetches the room dedicated to a subject.
func (c *Client) RoomBySubject(ctx context.Context, subject string) (models.ChatRoom, error) {
	var room models.ChatRoom
	path := "/chat/room/subject/" + url.PathEscape(subject)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &room, "chat", "room_by_subject"); err != nil {
		return models.ChatRoom{}, err
	}
	return room, nil
}

// Subjects lists the subject codes the backend serves.
func (c *Client) Subjects(ctx context.Context) ([]string, error) {
	var codes []string
	if err := c.do(ctx, http.MethodGet, "/subjects", nil, nil, &codes, "subjects", "list"); err != nil {
		return nil, err
	}
	return codes, nil
}
