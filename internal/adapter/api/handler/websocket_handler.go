package handler

import (
	"context"
	"encoding/json"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "agricsmart/internal/infrastructure/websocket"
	"agricsmart/internal/usecase"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/logger"
)

type WebSocketHandler struct {
	wsManager   *ws.Manager
	chatUseCase *usecase.ChatUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict to the frontend origin before launch
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, chatUseCase *usecase.ChatUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:   wsManager,
		chatUseCase: chatUseCase,
	}
}

// HandleWebSocket upgrades the connection and runs the read/write pumps
// until the client disconnects.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok || userID == "" {
		return errors.Unauthorized("Authentication required", nil)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go h.readPump(client)
	go h.writePump(client)

	return nil
}

func (h *WebSocketHandler) readPump(client *ws.Client) {
	defer func() {
		h.wsManager.Unregister <- client
		client.Conn.Close()
	}()

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			if gorillaws.IsUnexpectedCloseError(err, gorillaws.CloseGoingAway, gorillaws.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", client.UserID, err)
			}
			return
		}

		var event ws.Event
		if err := json.Unmarshal(raw, &event); err != nil {
			h.sendError(client, "Malformed event")
			continue
		}

		h.dispatch(client, event)
	}
}

func (h *WebSocketHandler) writePump(client *ws.Client) {
	defer client.Conn.Close()

	for {
		message, ok := <-client.Send
		if !ok {
			client.Conn.WriteMessage(gorillaws.CloseMessage, []byte{})
			return
		}

		if err := client.Conn.WriteMessage(gorillaws.TextMessage, message); err != nil {
			logger.Warn("WebSocket write error for %s: %v", client.UserID, err)
			return
		}
	}
}

func (h *WebSocketHandler) dispatch(client *ws.Client, event ws.Event) {
	ctx := context.Background()

	switch event.Type {
	case ws.EventJoinChat:
		var data ws.JoinChatData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			h.sendError(client, "Malformed joinChat payload")
			return
		}
		if err := h.chatUseCase.JoinChat(ctx, data.ChatID, client.UserID); err != nil {
			h.sendError(client, "Cannot join chat")
		}

	case ws.EventLeaveChat:
		var data ws.JoinChatData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return
		}
		h.chatUseCase.LeaveChat(data.ChatID, client.UserID)

	case ws.EventSendMessage:
		var data ws.SendMessageData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			h.sendError(client, "Malformed sendMessage payload")
			return
		}
		message, err := h.chatUseCase.SendMessage(ctx, client.UserID, usecase.SendMessageInput{
			ChatID:      data.ChatID,
			Content:     data.Content,
			Attachments: data.Attachments,
		})
		if err != nil {
			h.sendError(client, err.Error())
			return
		}
		// Echo the persisted message back so the sender gets the id.
		h.wsManager.SendToUser(client.UserID, ws.Encode(ws.EventReceiveMessage, message))

	case ws.EventTyping:
		var data ws.TypingData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return
		}
		h.chatUseCase.RelayTyping(ctx, data.ChatID, client.UserID, data.Typing)

	case ws.EventMarkRead:
		var data ws.MarkReadData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return
		}
		if err := h.chatUseCase.MarkMessageRead(ctx, data.ChatID, data.MessageID, client.UserID); err != nil {
			logger.Debug("markRead from %s failed: %v", client.UserID, err)
		}

	default:
		h.sendError(client, "Unknown event type: "+event.Type)
	}
}

func (h *WebSocketHandler) sendError(client *ws.Client, message string) {
	h.wsManager.SendToUser(client.UserID, ws.Encode(ws.EventError, map[string]string{
		"message": message,
	}))
}
