package notification

import (
	"context"
	"errors"

	"FoodWise-Backend/domain"
	"FoodWise-Backend/entities"

	"gorm.io/gorm"
)

type (
	NotificationService interface {
		GetNotifications(ctx context.Context, userID string) ([]domain.NotificationResponse, error)
		MarkRead(ctx context.Context, userID string, notificationID string) error
		MarkAllRead(ctx context.Context, userID string) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
	}
)

func NewNotificationService(notificationRepository NotificationRepository) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string) ([]domain.NotificationResponse, error) {
	notifications, err := s.notificationRepository.GetNotificationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, notificationResponse(n))
	}
	return responses, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID string, notificationID string) error {
	notification, err := s.notificationRepository.GetNotificationByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotificationNotFound
		}
		return err
	}

	// Another user's notification is indistinguishable from a missing one.
	if notification.UserID.String() != userID {
		return domain.ErrNotificationNotFound
	}

	return s.notificationRepository.MarkRead(ctx, notificationID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notificationRepository.MarkAllRead(ctx, userID)
}

func notificationResponse(n *entities.Notification) domain.NotificationResponse {
	return domain.NotificationResponse{
		ID:        n.ID.String(),
		ItemID:    n.ItemID.String(),
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
