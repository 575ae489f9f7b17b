package usecase

import (
	"context"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/domain/repository"
	"agricsmart/internal/infrastructure/ratelimit"
	"agricsmart/internal/infrastructure/websocket"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/logger"
)

type ChatUseCase struct {
	chatRepo         repository.ChatRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	wsManager        *websocket.Manager
	rateLimiter      *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	wsManager *websocket.Manager,
	rateLimiter *ratelimit.RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:         chatRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		wsManager:        wsManager,
		rateLimiter:      rateLimiter,
	}
}

// CreateChat opens a direct chat with another user, reusing the existing one
// if the pair already has a conversation.
func (uc *ChatUseCase) CreateChat(ctx context.Context, userID, recipientID string) (*entity.Chat, error) {
	if userID == recipientID {
		return nil, errors.BadRequest("Cannot open a chat with yourself", nil)
	}

	allowed, _ := uc.rateLimiter.Allow(userID, "create_chat")
	if !allowed {
		return nil, errors.TooManyRequests("You are creating chats too quickly. Please slow down")
	}

	if _, err := uc.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, errors.NotFound("Recipient", err)
	}

	existing, err := uc.chatRepo.FindDirectChat(ctx, userID, recipientID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	chat := &entity.Chat{
		Participants: []string{userID, recipientID},
		UnreadCount:  map[string]int{},
	}
	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

func (uc *ChatUseCase) GetChat(ctx context.Context, chatID, userID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	return chat, nil
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	return uc.chatRepo.ListByUserID(ctx, userID, limit, offset)
}

type SendMessageInput struct {
	ChatID      string
	Content     string
	Attachments []string
}

// SendMessage persists a message, bumps the chat's last-message fields and
// per-participant unread counters, then relays the message to the chat room
// and notifies offline participants.
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID string, input SendMessageInput) (*entity.Message, error) {
	allowed, wait := uc.rateLimiter.Allow(userID, "send_message")
	if !allowed {
		logger.Debug("Rate limited send_message from %s (retry in %s)", userID, wait)
		return nil, errors.TooManyRequests("You are sending messages too quickly. Please slow down")
	}

	if input.Content == "" && len(input.Attachments) == 0 {
		return nil, errors.BadRequest("Message must have content or an attachment", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this chat", nil)
	}

	message := &entity.Message{
		ChatID:      input.ChatID,
		SenderID:    userID,
		Content:     input.Content,
		Attachments: input.Attachments,
		Status:      entity.MessageStatusSent,
		ReadBy:      []string{userID},
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	chat.LastMessage = input.Content
	chat.LastMessageAt = message.CreatedAt
	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
	}
	for _, participantID := range chat.Participants {
		if participantID != userID {
			chat.UnreadCount[participantID]++
		}
	}
	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		return nil, err
	}

	frame := websocket.Encode(websocket.EventReceiveMessage, message)
	uc.wsManager.SendToRoom(input.ChatID, userID, frame)

	for _, participantID := range chat.Participants {
		if participantID == userID {
			continue
		}
		if uc.wsManager.IsOnline(participantID) {
			continue
		}
		notification := &entity.Notification{
			UserID:  participantID,
			Type:    entity.NotificationTypeMessage,
			Content: "New message in your chat",
			Data: map[string]interface{}{
				"chat_id":    chat.ID,
				"message_id": message.ID,
			},
		}
		if err := uc.notificationRepo.Save(ctx, notification); err != nil {
			logger.Warn("Failed to save offline-message notification for %s: %v", participantID, err)
		}
	}

	return message, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, chatID, userID string, limit, offset int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}
	if !chat.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("You are not a participant in this chat", nil)
	}

	return uc.chatRepo.ListMessages(ctx, chatID, limit, offset)
}

// MarkMessageRead records that a user has read a message and broadcasts the
// status change to the room.
func (uc *ChatUseCase) MarkMessageRead(ctx context.Context, chatID, messageID, userID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant in this chat", nil)
	}

	message, err := uc.chatRepo.GetMessageByID(ctx, chatID, messageID)
	if err != nil {
		return err
	}

	for _, reader := range message.ReadBy {
		if reader == userID {
			return nil
		}
	}

	message.ReadBy = append(message.ReadBy, userID)
	if len(message.ReadBy) >= len(chat.Participants) {
		message.Status = entity.MessageStatusRead
	} else {
		message.Status = entity.MessageStatusDelivered
	}

	if err := uc.chatRepo.UpdateMessage(ctx, message); err != nil {
		return err
	}

	if chat.UnreadCount[userID] > 0 {
		chat.UnreadCount[userID]--
		if err := uc.chatRepo.Update(ctx, chat); err != nil {
			logger.Warn("Failed to update unread count for chat %s: %v", chatID, err)
		}
	}

	frame := websocket.Encode(websocket.EventMessageStatus, websocket.MessageStatusData{
		ChatID:    chatID,
		MessageID: messageID,
		Status:    message.Status,
		UserID:    userID,
	})
	uc.wsManager.SendToRoom(chatID, userID, frame)

	return nil
}

// MarkChatRead zeroes the caller's unread counter for a chat.
func (uc *ChatUseCase) MarkChatRead(ctx context.Context, chatID, userID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant in this chat", nil)
	}

	if chat.UnreadCount == nil || chat.UnreadCount[userID] == 0 {
		return nil
	}

	chat.UnreadCount[userID] = 0
	return uc.chatRepo.Update(ctx, chat)
}

// RelayTyping forwards an ephemeral typing indicator to the room. Nothing is
// persisted and unknown chats are ignored.
func (uc *ChatUseCase) RelayTyping(ctx context.Context, chatID, userID string, typing bool) {
	allowed, _ := uc.rateLimiter.Allow(userID, "typing")
	if !allowed {
		return
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil || !chat.HasParticipant(userID) {
		return
	}

	frame := websocket.Encode(websocket.EventTyping, websocket.TypingData{
		ChatID: chatID,
		UserID: userID,
		Typing: typing,
	})
	uc.wsManager.SendToRoom(chatID, userID, frame)
}

// JoinChat subscribes a connected user to the chat's realtime room.
func (uc *ChatUseCase) JoinChat(ctx context.Context, chatID, userID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant in this chat", nil)
	}

	uc.wsManager.JoinRoom(chatID, userID)

	return nil
}

// LeaveChat removes the user from the chat's realtime room.
func (uc *ChatUseCase) LeaveChat(chatID, userID string) {
	uc.wsManager.LeaveRoom(chatID, userID)
}
