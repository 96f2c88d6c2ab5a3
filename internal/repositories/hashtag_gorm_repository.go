package repositories

import (
	"errors"
	"fmt"

	"listly/internal/models"
	"listly/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMHashtagRepository is a GORM implementation of HashtagRepository.
type GORMHashtagRepository struct {
	db *gorm.DB
}

// NewGORMHashtagRepository creates a new instance of GORMHashtagRepository.
func NewGORMHashtagRepository(db *gorm.DB) *GORMHashtagRepository {
	return &GORMHashtagRepository{
		db: db,
	}
}

// Create inserts a new hashtag; duplicates surface as conflicts.
func (r *GORMHashtagRepository) Create(tag *models.Hashtag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	if err := r.db.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.KindConflict, "hashtag already exists")
		}
		return fmt.Errorf("failed to create hashtag: %w", err)
	}
	return nil
}

// GetByTag retrieves a hashtag by its exact value.
func (r *GORMHashtagRepository) GetByTag(tag string) (*models.Hashtag, error) {
	var ht models.Hashtag
	if err := r.db.First(&ht, "tag = ?", tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "hashtag not found")
		}
		return nil, fmt.Errorf("failed to get hashtag %s: %w", tag, err)
	}
	return &ht, nil
}

// GetByIDs retrieves the hashtags with the given IDs.
func (r *GORMHashtagRepository) GetByIDs(ids []string) ([]models.Hashtag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Hashtag
	if err := r.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to get hashtags by IDs: %w", err)
	}
	return tags, nil
}

// Search retrieves hashtags containing the given term. An empty term
// matches everything.
func (r *GORMHashtagRepository) Search(term string) ([]models.Hashtag, error) {
	var tags []models.Hashtag
	if err := r.db.Where("tag LIKE ?", "%"+term+"%").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to search hashtags: %w", err)
	}
	return tags, nil
}
