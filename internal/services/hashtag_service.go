package services

import (
	"strings"

	"listly/internal/models"
	"listly/internal/repositories"
	"listly/pkg/apperr"
)

// HashtagService handles the global, deduplicated tag set.
type HashtagService struct {
	tagRepo repositories.HashtagRepository
}

// NewHashtagService creates a new HashtagService.
func NewHashtagService(tagRepo repositories.HashtagRepository) *HashtagService {
	return &HashtagService{
		tagRepo: tagRepo,
	}
}

// Create adds a new hashtag, case-folded. When the tag already exists
// the existing row is returned along with a conflict error so callers
// can echo it.
func (s *HashtagService) Create(tag string) (*models.Hashtag, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return nil, apperr.New(apperr.KindValidation, "tag field is required")
	}
	if len(tag) > 50 {
		return nil, apperr.New(apperr.KindValidation, "tag should be at most 50 characters long")
	}

	if existing, err := s.tagRepo.GetByTag(tag); err == nil {
		return existing, apperr.New(apperr.KindConflict, "hashtag already exists")
	}

	ht := &models.Hashtag{Tag: tag}
	if err := s.tagRepo.Create(ht); err != nil {
		if apperr.IsKind(err, apperr.KindConflict) {
			// Lost the race to a concurrent insert; surface the winner.
			if existing, getErr := s.tagRepo.GetByTag(tag); getErr == nil {
				return existing, err
			}
		}
		return nil, err
	}
	return ht, nil
}

// Search retrieves hashtags matching the given term.
func (s *HashtagService) Search(term string) ([]models.Hashtag, error) {
	return s.tagRepo.Search(strings.ToLower(strings.TrimSpace(term)))
}
