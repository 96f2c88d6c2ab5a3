package models

// Hashtag is a global, case-folded tag shared across lists.
type Hashtag struct {
	ID  string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Tag string `json:"tag" gorm:"uniqueIndex;type:varchar(50);not null" validate:"required,min=1,max=50"`
}
