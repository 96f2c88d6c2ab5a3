package models

import "time"

// User represents a registered account.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(20)" validate:"required,min=4,max=20,lowercase"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"-" gorm:"type:varchar(255)" validate:"required,min=4,max=72"`
	IsVerified bool   `json:"-" gorm:"default:false"`
	Name       string `json:"name,omitempty" gorm:"type:varchar(20)" validate:"omitempty,min=4,max=20"`
	Bio        string `json:"bio,omitempty" gorm:"type:varchar(200)"`
	Location   string `json:"location,omitempty" gorm:"type:varchar(100)"`
	Website    string `json:"website,omitempty" gorm:"type:varchar(255)" validate:"omitempty,url"`
	Avatar     []byte `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AvatarURL returns the canonical path for the user's avatar image.
func (u *User) AvatarURL() string {
	return "/api/users/" + u.Username + "/avatar"
}
