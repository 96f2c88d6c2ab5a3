package models

import "time"

// Like marks that a user liked a public list. The composite unique index
// makes a duplicate like fail at the store even under concurrent requests.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ListID    string    `json:"list_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_like_list_user" validate:"required"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_like_list_user" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

// Bookmark marks that a user follows a public list. Same uniqueness rule
// as Like, but a bookmark moves no counter on the list.
type Bookmark struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ListID    string    `json:"list_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_bookmark_list_user" validate:"required"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_bookmark_list_user" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a user's comment on a public list.
type Comment struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ListID string `json:"-" gorm:"type:varchar(36);not null;index" validate:"required"`
	UserID string `json:"-" gorm:"type:varchar(36);not null" validate:"required"`
	Body   string `json:"body" gorm:"type:varchar(2000);not null" validate:"required"`

	Author User `json:"-" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"created_at"`
}
