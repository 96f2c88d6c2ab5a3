package models

import "time"

// List visibility variants. Public lists are world readable and carry
// engagement counters; private lists are owner-only.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// List is a named, owned collection of link items.
type List struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=1,max=100"`
	Description string `json:"description,omitempty" gorm:"type:varchar(200)" validate:"omitempty,max=200"`
	AuthorID    string `json:"-" gorm:"type:varchar(36);not null;index" validate:"required"`
	Visibility  string `json:"-" gorm:"type:varchar(10);not null;index" validate:"required,oneof=public private"`

	// Counters are only meaningful for public lists. They are mutated
	// exclusively through atomic column updates, never by saving the struct.
	Likes        int64 `json:"likes"`
	Reads        int64 `json:"reads"`
	CommentCount int64 `json:"comment_count"`

	Items []ListItem `json:"items,omitempty" gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
	Tags  []Hashtag  `json:"tags,omitempty" gorm:"many2many:list_hashtags"`

	Author User `json:"-" gorm:"foreignKey:AuthorID"`

	// Populated by summary queries, not a column.
	ItemCount int64 `json:"-" gorm:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// URL returns the canonical API path of the list.
func (l *List) URL() string {
	if l.Visibility == VisibilityPrivate {
		return "/api/private-lists/" + l.ID
	}
	return "/api/public-lists/" + l.ID
}

// ListItem is a single link inside a list. An item never exists outside
// its parent list and is mutated only by the list's owner.
type ListItem struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ListID   string `json:"-" gorm:"type:varchar(36);not null;index" validate:"required"`
	Name     string `json:"name" gorm:"type:varchar(255)"`
	URL      string `json:"url" gorm:"type:varchar(2048);not null" validate:"required,url"`
	IconURL  string `json:"icon_url,omitempty" gorm:"type:varchar(2048)" validate:"omitempty,url"`
	Position int    `json:"-" gorm:"not null;index"`
}
