package usecase

import (
	"context"
	"fmt"

	"pet-rental/internal/data/repository"
	"pet-rental/internal/dto/request"
	"pet-rental/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, perPage int) (*response.PaginatedResponse[response.NotificationResponse], error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID uuid.UUID, notificationID string) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, perPage int) (*response.PaginatedResponse[response.NotificationResponse], error) {
	pager := request.PaginatedRequest{Page: page, PerPage: perPage}

	notifications, err := s.repo.Notification.FindByRecipient(ctx, userID, unreadOnly, pager.Limit(), pager.Offset())
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	total, err := s.repo.Notification.CountByRecipient(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	items := make([]response.NotificationResponse, len(notifications))
	for i, n := range notifications {
		items[i] = response.NotificationToResponse(n)
	}

	return response.NewPaginatedResponse(items, page, pager.Limit(), total), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repo.Notification.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("unread count: %w", err)
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID uuid.UUID, notificationID string) error {
	id, err := uuid.Parse(notificationID)
	if err != nil {
		return newErr(CodeValidation, "invalid notification ID format %s", notificationID)
	}

	if err := s.repo.Notification.MarkRead(ctx, id, userID); err != nil {
		if err == repository.ErrNotificationMissing {
			return newErr(CodeNotFound, "notification %s not found", notificationID)
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Notification.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
