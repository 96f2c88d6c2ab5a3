package repositories

import (
	"errors"
	"fmt"

	"listly/internal/models"
	"listly/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMListRepository is a GORM implementation of ListRepository.
type GORMListRepository struct {
	db *gorm.DB
}

// NewGORMListRepository creates a new instance of GORMListRepository.
func NewGORMListRepository(db *gorm.DB) *GORMListRepository {
	return &GORMListRepository{
		db: db,
	}
}

// Create inserts a new list together with its initial items.
func (r *GORMListRepository) Create(list *models.List) error {
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	for i := range list.Items {
		if list.Items[i].ID == "" {
			list.Items[i].ID = uuid.New().String()
		}
		list.Items[i].ListID = list.ID
		list.Items[i].Position = i + 1
	}
	if err := r.db.Create(list).Error; err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}
	return nil
}

// GetByID retrieves a list with its items (in order), tags and author.
func (r *GORMListRepository) GetByID(id string) (*models.List, error) {
	var list models.List
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Tags").
		Preload("Author").
		First(&list, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "list not found")
		}
		return nil, fmt.Errorf("failed to get list by ID %s: %w", id, err)
	}
	list.ItemCount = int64(len(list.Items))
	return &list, nil
}

// Save persists changes to an existing list's own columns. Counters are
// omitted so a stale struct can never clobber a concurrent increment.
func (r *GORMListRepository) Save(list *models.List) error {
	res := r.db.Model(list).
		Select("name", "description", "updated_at").
		Updates(list)
	if res.Error != nil {
		return fmt.Errorf("failed to update list: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "list not found")
	}
	return nil
}

// GetSummaries retrieves lists of the given visibility (optionally scoped
// to one author) with authors and item counts, in the store's order.
func (r *GORMListRepository) GetSummaries(visibility, authorID string, limit, offset int) ([]models.List, error) {
	q := r.db.Preload("Author").Where("visibility = ?", visibility)
	if authorID != "" {
		q = q.Where("author_id = ?", authorID)
	}
	var lists []models.List
	if err := q.Limit(limit).Offset(offset).Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to get list summaries: %w", err)
	}
	if err := r.attachItemCounts(lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *GORMListRepository) attachItemCounts(lists []models.List) error {
	if len(lists) == 0 {
		return nil
	}
	ids := make([]string, 0, len(lists))
	for _, l := range lists {
		ids = append(ids, l.ID)
	}
	var counts []struct {
		ListID string
		N      int64
	}
	err := r.db.Model(&models.ListItem{}).
		Select("list_id, count(*) as n").
		Where("list_id IN ?", ids).
		Group("list_id").
		Scan(&counts).Error
	if err != nil {
		return fmt.Errorf("failed to count list items: %w", err)
	}
	byID := make(map[string]int64, len(counts))
	for _, c := range counts {
		byID[c.ListID] = c.N
	}
	for i := range lists {
		lists[i].ItemCount = byID[lists[i].ID]
	}
	return nil
}

// ReplaceTags swaps the list's tag set for the given one.
func (r *GORMListRepository) ReplaceTags(list *models.List, tags []models.Hashtag) error {
	if err := r.db.Model(list).Association("Tags").Replace(tags); err != nil {
		return fmt.Errorf("failed to replace list tags: %w", err)
	}
	list.Tags = tags
	return nil
}

// ReplaceItems swaps the list's item sequence for the given one.
func (r *GORMListRepository) ReplaceItems(list *models.List, items []models.ListItem) error {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
		items[i].ListID = list.ID
		items[i].Position = i + 1
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", list.ID).Delete(&models.ListItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace list items: %w", err)
	}
	list.Items = items
	list.ItemCount = int64(len(items))
	return nil
}

// IncrementReads bumps the read counter with a single atomic update.
func (r *GORMListRepository) IncrementReads(id string) error {
	err := r.db.Model(&models.List{}).Where("id = ?", id).
		UpdateColumn("reads", gorm.Expr("reads + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to increment reads for list %s: %w", id, err)
	}
	return nil
}

// AddItem appends an item at the end of its list's sequence.
func (r *GORMListRepository) AddItem(item *models.ListItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var maxPos int
		err := tx.Model(&models.ListItem{}).
			Where("list_id = ?", item.ListID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error
		if err != nil {
			return err
		}
		item.Position = maxPos + 1
		return tx.Create(item).Error
	})
	if err != nil {
		return fmt.Errorf("failed to add item to list %s: %w", item.ListID, err)
	}
	return nil
}

// GetItem retrieves one item of a list.
func (r *GORMListRepository) GetItem(listID, itemID string) (*models.ListItem, error) {
	var item models.ListItem
	if err := r.db.First(&item, "list_id = ? AND id = ?", listID, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "item not found")
		}
		return nil, fmt.Errorf("failed to get item %s of list %s: %w", itemID, listID, err)
	}
	return &item, nil
}

// SaveItem persists changes to an existing item.
func (r *GORMListRepository) SaveItem(item *models.ListItem) error {
	res := r.db.Save(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "item not found")
	}
	return nil
}

// DeleteItem removes one item of a list.
func (r *GORMListRepository) DeleteItem(listID, itemID string) error {
	res := r.db.Where("list_id = ? AND id = ?", listID, itemID).Delete(&models.ListItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete item %s of list %s: %w", itemID, listID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "item not found")
	}
	return nil
}
