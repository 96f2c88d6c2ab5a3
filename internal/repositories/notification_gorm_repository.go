package repositories

import (
	"errors"
	"fmt"

	"listly/internal/models"
	"listly/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMNotificationRepository is a GORM implementation of NotificationRepository.
type GORMNotificationRepository struct {
	db *gorm.DB
}

// NewGORMNotificationRepository creates a new instance of GORMNotificationRepository.
func NewGORMNotificationRepository(db *gorm.DB) *GORMNotificationRepository {
	return &GORMNotificationRepository{
		db: db,
	}
}

// Create appends a notification to its owner's feed.
func (r *GORMNotificationRepository) Create(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if err := r.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// GetByID retrieves a single notification.
func (r *GORMNotificationRepository) GetByID(id string) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "notification not found")
		}
		return nil, fmt.Errorf("failed to get notification %s: %w", id, err)
	}
	return &n, nil
}

// ListByOwner retrieves a page of the owner's notifications, optionally
// filtered by type, in the store's order.
func (r *GORMNotificationRepository) ListByOwner(ownerID string, notificationType *int, limit, offset int) ([]models.Notification, error) {
	q := r.db.Where("owner_id = ?", ownerID)
	if notificationType != nil {
		q = q.Where("type = ?", *notificationType)
	}
	var notifications []models.Notification
	if err := q.Limit(limit).Offset(offset).Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to get notifications for owner %s: %w", ownerID, err)
	}
	return notifications, nil
}
