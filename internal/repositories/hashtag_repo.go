package repositories

import "listly/internal/models"

// HashtagRepository defines the interface for hashtag data access.
type HashtagRepository interface {
	Create(tag *models.Hashtag) error
	GetByTag(tag string) (*models.Hashtag, error)
	GetByIDs(ids []string) ([]models.Hashtag, error)
	Search(term string) ([]models.Hashtag, error)
}
