package models

import "time"

// Notification types form a closed set; anything else is rejected.
const (
	NotificationTypeLike = iota
	NotificationTypeComment
	NotificationTypeFollow
	NotificationTypeSystem
)

// Notification is an append-only event on a user's feed. There is no
// update or delete surface.
type Notification struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID     string    `json:"-" gorm:"type:varchar(36);not null;index" validate:"required"`
	Type        int       `json:"type" gorm:"not null" validate:"gte=0,lte=3"`
	Description string    `json:"description" gorm:"type:varchar(500);not null" validate:"required"`
	Read        bool      `json:"read" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
}
