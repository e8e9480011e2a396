package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/common/errorz"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/pkg/logger/types"
)

const (
	defaultNotificationsLimit = 50
	maxNotificationsLimit     = 200
)

type NotificationStorage interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByUserID(ctx context.Context, userID string, limit int) ([]entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string, at time.Time) (int64, error)
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error)
}

type NotificationService struct {
	logger  *types.Logger
	storage NotificationStorage
	now     func() time.Time
}

func NewNotificationService(logger *types.Logger, storage NotificationStorage) *NotificationService {
	return &NotificationService{
		logger:  logger,
		storage: storage,
		now:     time.Now,
	}
}

// NotifyPromotion records that userID got a seat at event.
func (s *NotificationService) NotifyPromotion(ctx context.Context, userID string, event entity.Event) (*entity.Notification, error) {
	notification := &entity.Notification{
		UserID:     userID,
		Type:       entity.NotificationTypeEventPromoted,
		EventID:    event.ID,
		EventTitle: event.Title,
		CreatedAt:  s.now(),
	}
	if err := s.storage.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// List returns the newest notifications of the user. limit <= 0 selects the default page size.
func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]entity.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationsLimit
	}
	limit = min(limit, maxNotificationsLimit)
	return s.storage.GetByUserID(ctx, userID, limit)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.storage.CountUnread(ctx, userID)
}

// MarkRead acknowledges one notification of the user. A notification that does not
// exist or belongs to someone else yields errorz.ErrNotFound.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	if notificationID == "" || userID == "" {
		return errorz.ErrValidation
	}
	affected, err := s.storage.MarkRead(ctx, notificationID, userID, s.now())
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if affected == 0 {
		return errorz.ErrNotFound
	}
	return nil
}

// MarkAllRead acknowledges every unread notification of the user.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	affected, err := s.storage.MarkAllRead(ctx, userID, s.now())
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	s.logger.Debugf("(user: %s) marked %d notifications read", userID, affected)
	return nil
}
