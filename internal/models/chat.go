package models

import "time"

// ChatRoom is a chat channel scoped to one subject.
type ChatRoom struct {
	ID          int64   `json:"id"`
	Subject     string  `json:"subject"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ChatMessage is one message in a room. Messages arrive both from history
// fetches and from realtime push events; ID is the de-duplication key.
type ChatMessage struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageSend is the payload for posting a message into a room.
type MessageSend struct {
	RoomID  int64  `json:"room_id" validate:"required,gt=0"`
	Message string `json:"message" validate:"required,min=1,max=4000"`
}
