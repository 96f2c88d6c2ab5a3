package services

import (
	"fmt"
	"strings"

	"listly/internal/models"
	"listly/internal/repositories"
	"listly/pkg/apperr"
)

// Allow-lists for partial updates. A single unknown key rejects the
// whole payload; nothing is applied.
var (
	publicListUpdateAllowList  = map[string]bool{"name": true, "description": true, "items": true, "tags": true}
	privateListUpdateAllowList = map[string]bool{"name": true, "description": true, "tags": true}
	itemUpdateAllowList        = map[string]bool{"name": true, "url": true, "icon_url": true}
)

// CreateListInput carries the fields a list can be created with.
type CreateListInput struct {
	Name        string
	Description string
	Items       []models.ListItem
	TagIDs      []string
}

// ListService handles list and item operations. Public and private lists
// live in separate route namespaces, so every operation is scoped by the
// visibility the route implies: a private list does not exist as far as
// the public endpoints are concerned, and vice versa. The ownership
// policy always checks existence first, so a missing list reads as
// not-found even to a stranger.
type ListService struct {
	listRepo repositories.ListRepository
	tagRepo  repositories.HashtagRepository
}

// NewListService creates a new ListService.
func NewListService(listRepo repositories.ListRepository, tagRepo repositories.HashtagRepository) *ListService {
	return &ListService{
		listRepo: listRepo,
		tagRepo:  tagRepo,
	}
}

// pageBounds normalizes pagination params into a limit and offset.
func pageBounds(limit, page int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}

// Create creates a list owned by authorID.
func (s *ListService) Create(authorID, visibility string, in CreateListInput) (*models.List, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.New(apperr.KindValidation, "name field is required")
	}
	if len(name) > 100 {
		return nil, apperr.New(apperr.KindValidation, "name should be at most 100 characters long")
	}
	description := strings.TrimSpace(in.Description)
	if len(description) > 200 {
		return nil, apperr.New(apperr.KindValidation, "description should be at most 200 characters long")
	}

	items, err := normalizeItems(in.Items)
	if err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(in.TagIDs)
	if err != nil {
		return nil, err
	}

	list := &models.List{
		Name:        name,
		Description: description,
		AuthorID:    authorID,
		Visibility:  visibility,
		Items:       items,
		Tags:        tags,
	}
	if err := s.listRepo.Create(list); err != nil {
		return nil, err
	}
	return s.listRepo.GetByID(list.ID)
}

// Get retrieves a list for the given requester. Private lists are
// owner-only; reading a public list bumps its read counter.
func (s *ListService) Get(id, visibility, requesterID string) (*models.List, error) {
	list, err := s.loadVisible(id, visibility)
	if err != nil {
		return nil, err
	}
	if visibility == models.VisibilityPrivate && list.AuthorID != requesterID {
		return nil, apperr.New(apperr.KindForbidden, "not the list owner")
	}
	if visibility == models.VisibilityPublic {
		if err := s.listRepo.IncrementReads(id); err != nil {
			return nil, err
		}
		list.Reads++
	}
	return list, nil
}

// Update applies a partial update to a list the requester owns. The
// allow-list depends on the route's visibility: items are patchable on
// public lists only. Key validation runs before existence, existence
// before ownership.
func (s *ListService) Update(id, visibility, requesterID string, updates map[string]interface{}) (*models.List, error) {
	allowed := privateListUpdateAllowList
	if visibility == models.VisibilityPublic {
		allowed = publicListUpdateAllowList
	}
	for key := range updates {
		if !allowed[key] {
			return nil, apperr.New(apperr.KindValidation, fmt.Sprintf("update of '%s' is not allowed", key))
		}
	}

	list, err := s.loadOwned(id, visibility, requesterID)
	if err != nil {
		return nil, err
	}

	// Validate every value before the first write so a rejected payload
	// never leaves a half-applied update behind.
	for key, value := range updates {
		switch key {
		case "name":
			name, ok := value.(string)
			if !ok {
				return nil, apperr.New(apperr.KindValidation, "name must be a string")
			}
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, apperr.New(apperr.KindValidation, "name field is required")
			}
			if len(name) > 100 {
				return nil, apperr.New(apperr.KindValidation, "name should be at most 100 characters long")
			}
			list.Name = name
		case "description":
			description, ok := value.(string)
			if !ok {
				return nil, apperr.New(apperr.KindValidation, "description must be a string")
			}
			description = strings.TrimSpace(description)
			if len(description) > 200 {
				return nil, apperr.New(apperr.KindValidation, "description should be at most 200 characters long")
			}
			list.Description = description
		}
	}

	var tags []models.Hashtag
	replaceTags := false
	if raw, ok := updates["tags"]; ok {
		tagIDs, err := stringSlice(raw, "tags")
		if err != nil {
			return nil, err
		}
		if tags, err = s.resolveTags(tagIDs); err != nil {
			return nil, err
		}
		replaceTags = true
	}

	var items []models.ListItem
	replaceItems := false
	if raw, ok := updates["items"]; ok {
		if items, err = itemsFromPayload(raw); err != nil {
			return nil, err
		}
		replaceItems = true
	}

	if err := s.listRepo.Save(list); err != nil {
		return nil, err
	}
	if replaceTags {
		if err := s.listRepo.ReplaceTags(list, tags); err != nil {
			return nil, err
		}
	}
	if replaceItems {
		if err := s.listRepo.ReplaceItems(list, items); err != nil {
			return nil, err
		}
	}

	return s.listRepo.GetByID(id)
}

// ListPublic retrieves a page of public list summaries.
func (s *ListService) ListPublic(limit, page int) ([]models.ListSummary, error) {
	limit, offset := pageBounds(limit, page)
	lists, err := s.listRepo.GetSummaries(models.VisibilityPublic, "", limit, offset)
	if err != nil {
		return nil, err
	}
	return summarize(lists), nil
}

// ListByAuthor retrieves a page of one author's list summaries for the
// given visibility.
func (s *ListService) ListByAuthor(authorID, visibility string, limit, page int) ([]models.ListSummary, error) {
	limit, offset := pageBounds(limit, page)
	lists, err := s.listRepo.GetSummaries(visibility, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return summarize(lists), nil
}

// Items retrieves a list's items; private lists are owner-only.
func (s *ListService) Items(listID, visibility, requesterID string) ([]models.ListItem, error) {
	list, err := s.loadVisible(listID, visibility)
	if err != nil {
		return nil, err
	}
	if visibility == models.VisibilityPrivate && list.AuthorID != requesterID {
		return nil, apperr.New(apperr.KindForbidden, "not the list owner")
	}
	return list.Items, nil
}

// AddItem appends an item to a list the requester owns.
func (s *ListService) AddItem(listID, visibility, requesterID string, item models.ListItem) (*models.ListItem, error) {
	if _, err := s.loadOwned(listID, visibility, requesterID); err != nil {
		return nil, err
	}
	item.URL = strings.TrimSpace(item.URL)
	if item.URL == "" {
		return nil, apperr.New(apperr.KindValidation, "url field is required")
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		item.Name = item.URL
	}
	item.ListID = listID
	if err := s.listRepo.AddItem(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Item retrieves one item; private lists are owner-only.
func (s *ListService) Item(listID, itemID, visibility, requesterID string) (*models.ListItem, error) {
	list, err := s.loadVisible(listID, visibility)
	if err != nil {
		return nil, err
	}
	if visibility == models.VisibilityPrivate && list.AuthorID != requesterID {
		return nil, apperr.New(apperr.KindForbidden, "not the list owner")
	}
	return s.listRepo.GetItem(listID, itemID)
}

// UpdateItem applies a partial update to an item of a list the requester
// owns, under the item allow-list.
func (s *ListService) UpdateItem(listID, itemID, visibility, requesterID string, updates map[string]interface{}) (*models.ListItem, error) {
	for key := range updates {
		if !itemUpdateAllowList[key] {
			return nil, apperr.New(apperr.KindValidation, fmt.Sprintf("update of '%s' is not allowed", key))
		}
	}
	if _, err := s.loadOwned(listID, visibility, requesterID); err != nil {
		return nil, err
	}
	item, err := s.listRepo.GetItem(listID, itemID)
	if err != nil {
		return nil, err
	}

	for key, value := range updates {
		str, ok := value.(string)
		if !ok {
			return nil, apperr.New(apperr.KindValidation, fmt.Sprintf("'%s' must be a string", key))
		}
		str = strings.TrimSpace(str)
		switch key {
		case "name":
			item.Name = str
		case "url":
			if str == "" {
				return nil, apperr.New(apperr.KindValidation, "url field is required")
			}
			item.URL = str
		case "icon_url":
			item.IconURL = str
		}
	}
	if item.Name == "" {
		item.Name = item.URL
	}

	if err := s.listRepo.SaveItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes one item of a list the requester owns and returns
// the removed item. A second delete of the same id is not-found.
func (s *ListService) DeleteItem(listID, itemID, visibility, requesterID string) (*models.ListItem, error) {
	if _, err := s.loadOwned(listID, visibility, requesterID); err != nil {
		return nil, err
	}
	item, err := s.listRepo.GetItem(listID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.listRepo.DeleteItem(listID, itemID); err != nil {
		return nil, err
	}
	return item, nil
}

// loadVisible loads a list, treating a visibility mismatch as absence:
// a private list does not exist on the public routes and vice versa.
func (s *ListService) loadVisible(id, visibility string) (*models.List, error) {
	list, err := s.listRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if list.Visibility != visibility {
		return nil, apperr.New(apperr.KindNotFound, "list not found")
	}
	return list, nil
}

// loadOwned loads a visible list and enforces the ownership policy,
// existence first.
func (s *ListService) loadOwned(id, visibility, requesterID string) (*models.List, error) {
	list, err := s.loadVisible(id, visibility)
	if err != nil {
		return nil, err
	}
	if list.AuthorID != requesterID {
		return nil, apperr.New(apperr.KindForbidden, "not the list owner")
	}
	return list, nil
}

func (s *ListService) resolveTags(ids []string) ([]models.Hashtag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	tags, err := s.tagRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, apperr.New(apperr.KindValidation, "unknown hashtag reference")
	}
	return tags, nil
}

func normalizeItems(items []models.ListItem) ([]models.ListItem, error) {
	out := make([]models.ListItem, 0, len(items))
	for _, item := range items {
		item.URL = strings.TrimSpace(item.URL)
		if item.URL == "" {
			return nil, apperr.New(apperr.KindValidation, "item url field is required")
		}
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			item.Name = item.URL
		}
		out = append(out, item)
	}
	return out, nil
}

func summarize(lists []models.List) []models.ListSummary {
	summaries := make([]models.ListSummary, 0, len(lists))
	for i := range lists {
		summaries = append(summaries, lists[i].Summary())
	}
	return summaries
}

func stringSlice(raw interface{}, field string) ([]string, error) {
	values, ok := raw.([]interface{})
	if !ok {
		return nil, apperr.New(apperr.KindValidation, fmt.Sprintf("'%s' must be an array", field))
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			return nil, apperr.New(apperr.KindValidation, fmt.Sprintf("'%s' must be an array of strings", field))
		}
		out = append(out, str)
	}
	return out, nil
}

func itemsFromPayload(raw interface{}) ([]models.ListItem, error) {
	values, ok := raw.([]interface{})
	if !ok {
		return nil, apperr.New(apperr.KindValidation, "'items' must be an array")
	}
	items := make([]models.ListItem, 0, len(values))
	for _, v := range values {
		obj, ok := v.(map[string]interface{})
		if !ok {
			return nil, apperr.New(apperr.KindValidation, "'items' must be an array of objects")
		}
		for key := range obj {
			if !itemUpdateAllowList[key] {
				return nil, apperr.New(apperr.KindValidation, fmt.Sprintf("item field '%s' is not allowed", key))
			}
		}
		item := models.ListItem{}
		if s, ok := obj["name"].(string); ok {
			item.Name = s
		}
		if s, ok := obj["url"].(string); ok {
			item.URL = s
		}
		if s, ok := obj["icon_url"].(string); ok {
			item.IconURL = s
		}
		items = append(items, item)
	}
	return normalizeItems(items)
}
