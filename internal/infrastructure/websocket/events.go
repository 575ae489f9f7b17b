package websocket

import (
	"encoding/json"
	"time"
)

// Event names exchanged over the socket.
const (
	EventJoinChat       = "joinChat"
	EventLeaveChat      = "leaveChat"
	EventSendMessage    = "sendMessage"
	EventReceiveMessage = "receiveMessage"
	EventTyping         = "typing"
	EventMarkRead       = "markRead"
	EventMessageStatus  = "messageStatusUpdated"
	EventError          = "error"
)

// Event is the envelope for every WebSocket frame.
type Event struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

type JoinChatData struct {
	ChatID string `json:"chat_id"`
}

type SendMessageData struct {
	ChatID      string   `json:"chat_id"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments,omitempty"`
}

// TypingData is an ephemeral indicator; it is relayed, never persisted.
type TypingData struct {
	ChatID string `json:"chat_id"`
	UserID string `json:"user_id"`
	Typing bool   `json:"typing"`
}

type MarkReadData struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
}

type MessageStatusData struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	UserID    string `json:"user_id"`
}

// Encode wraps a payload into an Event frame ready for the wire.
func Encode(eventType string, data interface{}) []byte {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}

	frame, err := json.Marshal(Event{
		Type:      eventType,
		Data:      raw,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil
	}
	return frame
}
