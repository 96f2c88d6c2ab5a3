package services

import (
	"fmt"

	"listly/internal/models"
	"listly/internal/repositories"
	"listly/pkg/apperr"
	"listly/pkg/rabbitmq"
)

// NotificationService handles the append-only per-user notification feed.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// List retrieves a page of the owner's notifications, optionally
// filtered by type.
func (s *NotificationService) List(ownerID string, notificationType *int, limit, page int) ([]models.Notification, error) {
	limit, offset := pageBounds(limit, page)
	return s.notificationRepo.ListByOwner(ownerID, notificationType, limit, offset)
}

// Get retrieves a single notification for its owner. Existence is
// checked before ownership.
func (s *NotificationService) Get(id, requesterID string) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if notification.OwnerID != requesterID {
		return nil, apperr.New(apperr.KindForbidden, "not the notification owner")
	}
	return notification, nil
}

// Append adds a notification to the owner's feed.
func (s *NotificationService) Append(ownerID string, notificationType int, description string) (*models.Notification, error) {
	if notificationType < models.NotificationTypeLike || notificationType > models.NotificationTypeSystem {
		return nil, apperr.New(apperr.KindValidation, "unknown notification type")
	}
	if description == "" {
		return nil, apperr.New(apperr.KindValidation, "description is required")
	}
	notification := &models.Notification{
		OwnerID:     ownerID,
		Type:        notificationType,
		Description: description,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// RecordEngagement turns an engagement event into a notification on the
// list owner's feed.
func (s *NotificationService) RecordEngagement(event rabbitmq.EngagementEvent) error {
	var notificationType int
	var description string
	switch event.Kind {
	case rabbitmq.EventLike:
		notificationType = models.NotificationTypeLike
		description = fmt.Sprintf("%s liked your list %q", event.ActorName, event.ListName)
	case rabbitmq.EventComment:
		notificationType = models.NotificationTypeComment
		description = fmt.Sprintf("%s commented on your list %q", event.ActorName, event.ListName)
	case rabbitmq.EventFollow:
		notificationType = models.NotificationTypeFollow
		description = fmt.Sprintf("%s followed your list %q", event.ActorName, event.ListName)
	default:
		return fmt.Errorf("unknown engagement event kind %q", event.Kind)
	}
	_, err := s.Append(event.OwnerID, notificationType, description)
	return err
}
