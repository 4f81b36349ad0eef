package repository

import (
	"context"
	"fmt"

	"pet-rental/internal/data/entity"
	"pet-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrConversationRowMissing is returned when a message targets a
// conversation that no longer exists.
var ErrConversationRowMissing = fmt.Errorf("conversation row not found")

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)
	// FindBetween looks up the thread for a user pair regardless of who
	// started it.
	FindBetween(ctx context.Context, a, b uuid.UUID) (*entity.Conversation, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Conversation, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// AddMessage appends the message and bumps the conversation's
	// updated_at in one transaction so listings sort by latest activity.
	AddMessage(ctx context.Context, message *entity.Message) error
	Messages(ctx context.Context, conversationID uuid.UUID) ([]*entity.Message, error)
	LastMessage(ctx context.Context, conversationID uuid.UUID) (*entity.Message, error)
	CountUnread(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error)
	MarkMessagesRead(ctx context.Context, conversationID, readerID uuid.UUID) error
}

type conversationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewConversationRepository(db database.PgxIface, log *zap.Logger) ConversationRepository {
	return &conversationRepository{
		db:  db,
		log: log.With(zap.String("repository", "conversation")),
	}
}

const conversationColumns = `id, participant_a, participant_b, related_pet_id,
	       related_booking_id, created_at, updated_at`

func scanConversation(row pgx.Row) (*entity.Conversation, error) {
	var c entity.Conversation
	err := row.Scan(
		&c.ID,
		&c.ParticipantA,
		&c.ParticipantB,
		&c.RelatedPetID,
		&c.RelatedBookingID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const messageColumns = `id, conversation_id, sender_id, content, is_read, created_at`

func scanMessage(row pgx.Row) (*entity.Message, error) {
	var m entity.Message
	err := row.Scan(
		&m.ID,
		&m.ConversationID,
		&m.SenderID,
		&m.Content,
		&m.IsRead,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *conversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	query := `
		INSERT INTO conversations (id, participant_a, participant_b, related_pet_id,
		                           related_booking_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		conversation.ID,
		conversation.ParticipantA,
		conversation.ParticipantB,
		conversation.RelatedPetID,
		conversation.RelatedBookingID,
		conversation.CreatedAt,
		conversation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create conversation",
			zap.Error(err),
			zap.String("participant_a", conversation.ParticipantA.String()),
			zap.String("participant_b", conversation.ParticipantB.String()),
		)
		return fmt.Errorf("create conversation: %w", err)
	}

	return nil
}

func (r *conversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

	conversation, err := scanConversation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find conversation by ID",
			zap.Error(err),
			zap.String("conversation_id", id.String()),
		)
		return nil, fmt.Errorf("find conversation by ID %s: %w", id.String(), err)
	}

	return conversation, nil
}

func (r *conversationRepository) FindBetween(ctx context.Context, a, b uuid.UUID) (*entity.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `
		FROM conversations
		WHERE (participant_a = $1 AND participant_b = $2)
		   OR (participant_a = $2 AND participant_b = $1)
	`

	conversation, err := scanConversation(r.db.QueryRow(ctx, query, a, b))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find conversation between users", zap.Error(err))
		return nil, fmt.Errorf("find conversation between users: %w", err)
	}

	return conversation, nil
}

func (r *conversationRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `
		FROM conversations
		WHERE participant_a = $1 OR participant_b = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find conversations by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find conversations for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var conversations []*entity.Conversation
	for rows.Next() {
		conversation, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversation row: %w", err)
		}
		conversations = append(conversations, conversation)
	}

	return conversations, rows.Err()
}

func (r *conversationRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM conversations WHERE participant_a = $1 OR participant_b = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count conversations",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count conversations for user %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *conversationRepository) AddMessage(ctx context.Context, message *entity.Message) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin add message tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE conversations SET updated_at = NOW() WHERE id = $1`, message.ConversationID)
	if err != nil {
		return fmt.Errorf("touch conversation %s: %w", message.ConversationID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return ErrConversationRowMissing
	}

	query := `
		INSERT INTO messages (id, conversation_id, sender_id, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.Exec(ctx, query,
		message.ID,
		message.ConversationID,
		message.SenderID,
		message.Content,
		message.IsRead,
		message.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to add message",
			zap.Error(err),
			zap.String("conversation_id", message.ConversationID.String()),
			zap.String("sender_id", message.SenderID.String()),
		)
		return fmt.Errorf("add message to conversation %s: %w", message.ConversationID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit add message: %w", err)
	}

	return nil
}

func (r *conversationRepository) Messages(ctx context.Context, conversationID uuid.UUID) ([]*entity.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, conversationID)
	if err != nil {
		r.log.Error("Failed to find messages",
			zap.Error(err),
			zap.String("conversation_id", conversationID.String()),
		)
		return nil, fmt.Errorf("find messages for conversation %s: %w", conversationID.String(), err)
	}
	defer rows.Close()

	var messages []*entity.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

func (r *conversationRepository) LastMessage(ctx context.Context, conversationID uuid.UUID) (*entity.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	message, err := scanMessage(r.db.QueryRow(ctx, query, conversationID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find last message",
			zap.Error(err),
			zap.String("conversation_id", conversationID.String()),
		)
		return nil, fmt.Errorf("find last message for conversation %s: %w", conversationID.String(), err)
	}

	return message, nil
}

func (r *conversationRepository) CountUnread(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*) FROM messages
		WHERE conversation_id = $1 AND sender_id != $2 AND is_read = FALSE
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, conversationID, readerID).Scan(&count); err != nil {
		r.log.Error("Failed to count unread messages",
			zap.Error(err),
			zap.String("conversation_id", conversationID.String()),
		)
		return 0, fmt.Errorf("count unread messages in conversation %s: %w", conversationID.String(), err)
	}

	return count, nil
}

func (r *conversationRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID uuid.UUID) error {
	query := `
		UPDATE messages SET is_read = TRUE
		WHERE conversation_id = $1 AND sender_id != $2 AND is_read = FALSE
	`

	if _, err := r.db.Exec(ctx, query, conversationID, readerID); err != nil {
		r.log.Error("Failed to mark messages read",
			zap.Error(err),
			zap.String("conversation_id", conversationID.String()),
		)
		return fmt.Errorf("mark messages read in conversation %s: %w", conversationID.String(), err)
	}

	return nil
}
