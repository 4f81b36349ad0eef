package repository

import (
	"context"
	"fmt"

	"pet-rental/internal/data/entity"
	"pet-rental/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotificationMissing is returned when an id does not exist or belongs to
// another recipient; the two cases are indistinguishable on purpose.
var ErrNotificationMissing = fmt.Errorf("notification not found")

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	CountByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (int64, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, type, title, message,
		                           related_entity_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		notification.ID,
		notification.RecipientID,
		notification.Type,
		notification.Title,
		notification.Message,
		notification.RelatedEntityID,
		notification.IsRead,
		notification.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create notification",
			zap.Error(err),
			zap.String("recipient_id", notification.RecipientID.String()),
			zap.String("type", string(notification.Type)),
		)
		return fmt.Errorf("create notification for %s: %w", notification.RecipientID.String(), err)
	}

	return nil
}

func (r *notificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, recipient_id, type, title, message, related_entity_id, is_read, read_at, created_at
		FROM notifications
		WHERE recipient_id = $1
	`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, recipientID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find notifications",
			zap.Error(err),
			zap.String("recipient_id", recipientID.String()),
		)
		return nil, fmt.Errorf("find notifications for %s: %w", recipientID.String(), err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.Type,
			&n.Title,
			&n.Message,
			&n.RelatedEntityID,
			&n.IsRead,
			&n.ReadAt,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

func (r *notificationRepository) CountByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, recipientID).Scan(&count); err != nil {
		r.log.Error("Failed to count notifications",
			zap.Error(err),
			zap.String("recipient_id", recipientID.String()),
		)
		return 0, fmt.Errorf("count notifications for %s: %w", recipientID.String(), err)
	}

	return count, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`

	var count int64
	if err := r.db.QueryRow(ctx, query, recipientID).Scan(&count); err != nil {
		r.log.Error("Failed to count unread notifications",
			zap.Error(err),
			zap.String("recipient_id", recipientID.String()),
		)
		return 0, fmt.Errorf("count unread notifications for %s: %w", recipientID.String(), err)
	}

	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	// Idempotent: re-reading keeps the original read_at.
	query := `
		UPDATE notifications SET is_read = TRUE, read_at = COALESCE(read_at, NOW())
		WHERE id = $1 AND recipient_id = $2
	`

	result, err := r.db.Exec(ctx, query, id, recipientID)
	if err != nil {
		r.log.Error("Failed to mark notification read",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return fmt.Errorf("mark notification %s read: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotificationMissing
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	query := `
		UPDATE notifications SET is_read = TRUE, read_at = NOW()
		WHERE recipient_id = $1 AND is_read = FALSE
	`

	if _, err := r.db.Exec(ctx, query, recipientID); err != nil {
		r.log.Error("Failed to mark all notifications read",
			zap.Error(err),
			zap.String("recipient_id", recipientID.String()),
		)
		return fmt.Errorf("mark all notifications read for %s: %w", recipientID.String(), err)
	}

	return nil
}
