package repositories

import "listly/internal/models"

// ListRepository defines the interface for list and list-item data access.
type ListRepository interface {
	Create(list *models.List) error
	GetByID(id string) (*models.List, error)
	Save(list *models.List) error
	GetSummaries(visibility, authorID string, limit, offset int) ([]models.List, error)
	ReplaceTags(list *models.List, tags []models.Hashtag) error
	ReplaceItems(list *models.List, items []models.ListItem) error
	IncrementReads(id string) error

	AddItem(item *models.ListItem) error
	GetItem(listID, itemID string) (*models.ListItem, error)
	SaveItem(item *models.ListItem) error
	DeleteItem(listID, itemID string) error
}
