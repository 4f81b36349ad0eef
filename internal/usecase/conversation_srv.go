package usecase

import (
	"context"
	"fmt"
	"time"

	"pet-rental/internal/data/entity"
	"pet-rental/internal/data/repository"
	"pet-rental/internal/dto/request"
	"pet-rental/internal/dto/response"
	"pet-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ConversationService interface {
	// StartConversation opens a thread with the recipient, or appends to
	// the existing one; there is at most one thread per user pair.
	StartConversation(ctx context.Context, senderID uuid.UUID, req *request.StartConversationRequest) (*response.ConversationResponse, error)
	ListConversations(ctx context.Context, userID uuid.UUID, page, perPage int) (*response.PaginatedResponse[response.ConversationSummary], error)
	// GetConversation returns the full thread and marks the counterpart's
	// messages as read.
	GetConversation(ctx context.Context, userID uuid.UUID, conversationID string) (*response.ConversationResponse, error)
	SendMessage(ctx context.Context, senderID uuid.UUID, conversationID string, req *request.SendMessageRequest) (*response.MessageResponse, error)
}

type conversationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewConversationService(repo *repository.Repository, log *zap.Logger) ConversationService {
	return &conversationService{
		repo: repo,
		log:  log.With(zap.String("service", "conversation")),
	}
}

func (s *conversationService) StartConversation(ctx context.Context, senderID uuid.UUID, req *request.StartConversationRequest) (*response.ConversationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newErr(CodeValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid recipient ID format %s", req.RecipientID)
	}
	if recipientID == senderID {
		return nil, newErr(CodeValidation, "cannot start a conversation with yourself")
	}

	recipient, err := s.repo.User.FindByID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("start conversation: %w", err)
	}
	if recipient == nil {
		return nil, newErr(CodeNotFound, "recipient %s not found", req.RecipientID)
	}

	conversation, err := s.repo.Conversation.FindBetween(ctx, senderID, recipientID)
	if err != nil {
		return nil, fmt.Errorf("start conversation: %w", err)
	}

	now := time.Now().UTC()
	if conversation == nil {
		conversation = &entity.Conversation{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			ParticipantA: senderID,
			ParticipantB: recipientID,
		}
		if req.RelatedPetID != nil {
			petID, err := uuid.Parse(*req.RelatedPetID)
			if err != nil {
				return nil, newErr(CodeValidation, "invalid pet ID format %s", *req.RelatedPetID)
			}
			conversation.RelatedPetID = &petID
		}
		if req.RelatedBookingID != nil {
			bookingID, err := uuid.Parse(*req.RelatedBookingID)
			if err != nil {
				return nil, newErr(CodeValidation, "invalid booking ID format %s", *req.RelatedBookingID)
			}
			conversation.RelatedBookingID = &bookingID
		}

		if err := s.repo.Conversation.Create(ctx, conversation); err != nil {
			return nil, fmt.Errorf("start conversation: %w", err)
		}

		s.log.Info("Conversation started",
			zap.String("conversation_id", conversation.ID.String()),
			zap.String("sender_id", senderID.String()),
			zap.String("recipient_id", recipientID.String()),
		)
	}

	if _, err := s.appendMessage(ctx, conversation, senderID, req.Message); err != nil {
		return nil, err
	}

	return s.threadResponse(ctx, conversation, senderID)
}

func (s *conversationService) ListConversations(ctx context.Context, userID uuid.UUID, page, perPage int) (*response.PaginatedResponse[response.ConversationSummary], error) {
	pager := request.PaginatedRequest{Page: page, PerPage: perPage}

	conversations, err := s.repo.Conversation.FindByUser(ctx, userID, pager.Limit(), pager.Offset())
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	total, err := s.repo.Conversation.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	items := make([]response.ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		summary, err := s.summarize(ctx, conversation, userID)
		if err != nil {
			return nil, err
		}
		items = append(items, summary)
	}

	return response.NewPaginatedResponse(items, page, pager.Limit(), total), nil
}

func (s *conversationService) summarize(ctx context.Context, conversation *entity.Conversation, userID uuid.UUID) (response.ConversationSummary, error) {
	otherID := conversation.OtherParticipant(userID)

	summary := response.ConversationSummary{
		ID:                 conversation.ID.String(),
		OtherParticipantID: otherID.String(),
	}
	if conversation.RelatedPetID != nil {
		petID := conversation.RelatedPetID.String()
		summary.RelatedPetID = &petID
	}

	other, err := s.repo.User.FindByID(ctx, otherID)
	if err != nil {
		return summary, fmt.Errorf("list conversations: %w", err)
	}
	if other != nil {
		summary.OtherParticipantName = other.Name
		summary.OtherParticipantAvatar = other.AvatarURL
	}

	last, err := s.repo.Conversation.LastMessage(ctx, conversation.ID)
	if err != nil {
		return summary, fmt.Errorf("list conversations: %w", err)
	}
	if last != nil {
		summary.LastMessageText = last.Content
		at := last.CreatedAt
		summary.LastMessageTime = &at
	}

	unread, err := s.repo.Conversation.CountUnread(ctx, conversation.ID, userID)
	if err != nil {
		return summary, fmt.Errorf("list conversations: %w", err)
	}
	summary.UnreadCount = unread

	return summary, nil
}

func (s *conversationService) GetConversation(ctx context.Context, userID uuid.UUID, conversationID string) (*response.ConversationResponse, error) {
	conversation, err := s.findParticipantConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	resp, err := s.threadResponse(ctx, conversation, userID)
	if err != nil {
		return nil, err
	}

	// Opening the thread counts as reading it.
	if resp.UnreadCount > 0 {
		if err := s.repo.Conversation.MarkMessagesRead(ctx, conversation.ID, userID); err != nil {
			return nil, fmt.Errorf("get conversation: %w", err)
		}
	}

	return resp, nil
}

func (s *conversationService) SendMessage(ctx context.Context, senderID uuid.UUID, conversationID string, req *request.SendMessageRequest) (*response.MessageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newErr(CodeValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	conversation, err := s.findParticipantConversation(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	message, err := s.appendMessage(ctx, conversation, senderID, req.Content)
	if err != nil {
		return nil, err
	}

	resp := response.MessageToResponse(message)
	return &resp, nil
}

// findParticipantConversation loads a conversation and verifies the caller
// belongs to it.
func (s *conversationService) findParticipantConversation(ctx context.Context, userID uuid.UUID, conversationID string) (*entity.Conversation, error) {
	id, err := uuid.Parse(conversationID)
	if err != nil {
		return nil, newErr(CodeValidation, "invalid conversation ID format %s", conversationID)
	}

	conversation, err := s.repo.Conversation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	if conversation == nil {
		return nil, newErr(CodeNotFound, "conversation %s not found", conversationID)
	}

	if !conversation.HasParticipant(userID) {
		return nil, newErr(CodeForbidden, "you are not a participant of this conversation")
	}

	return conversation, nil
}

func (s *conversationService) appendMessage(ctx context.Context, conversation *entity.Conversation, senderID uuid.UUID, content string) (*entity.Message, error) {
	message := &entity.Message{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Content:        content,
	}

	if err := s.repo.Conversation.AddMessage(ctx, message); err != nil {
		if err == repository.ErrConversationRowMissing {
			return nil, newErr(CodeNotFound, "conversation %s not found", conversation.ID.String())
		}
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.notifyRecipient(ctx, conversation, senderID)

	return message, nil
}

// notifyRecipient pings the counterpart about the new message. Best effort.
func (s *conversationService) notifyRecipient(ctx context.Context, conversation *entity.Conversation, senderID uuid.UUID) {
	recipientID := conversation.OtherParticipant(senderID)
	conversationID := conversation.ID

	n := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		RecipientID:     recipientID,
		Type:            entity.NotificationNewMessage,
		Title:           "New message",
		Message:         "You have a new message",
		RelatedEntityID: &conversationID,
	}

	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.log.Warn("Failed to deliver notification",
			zap.Error(err),
			zap.String("recipient_id", recipientID.String()),
			zap.String("type", string(entity.NotificationNewMessage)),
		)
	}
}

func (s *conversationService) threadResponse(ctx context.Context, conversation *entity.Conversation, userID uuid.UUID) (*response.ConversationResponse, error) {
	messages, err := s.repo.Conversation.Messages(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("load conversation messages: %w", err)
	}

	resp := response.ConversationToResponse(conversation)
	resp.Messages = make([]response.MessageResponse, len(messages))
	for i, message := range messages {
		resp.Messages[i] = response.MessageToResponse(message)
		if message.SenderID != userID && !message.IsRead {
			resp.UnreadCount++
		}
	}

	return &resp, nil
}
