package repositories

import "listly/internal/models"

// NotificationRepository defines the interface for notification data
// access. Notifications are append-only; there is no update or delete.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByID(id string) (*models.Notification, error)
	ListByOwner(ownerID string, notificationType *int, limit, offset int) ([]models.Notification, error)
}
