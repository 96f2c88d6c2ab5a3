package repositories

import (
	"errors"
	"fmt"

	"listly/internal/models"
	"listly/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMEngagementRepository is a GORM implementation of EngagementRepository.
type GORMEngagementRepository struct {
	db *gorm.DB
}

// NewGORMEngagementRepository creates a new instance of GORMEngagementRepository.
func NewGORMEngagementRepository(db *gorm.DB) *GORMEngagementRepository {
	return &GORMEngagementRepository{
		db: db,
	}
}

// CreateLike inserts a like and bumps the list's like counter in one
// transaction. The (list_id, user_id) unique index turns a concurrent
// duplicate into a conflict instead of a double count.
func (r *GORMEngagementRepository) CreateLike(like *models.Like) error {
	if like.ID == "" {
		like.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.New(apperr.KindConflict, "list already liked")
			}
			return fmt.Errorf("failed to create like: %w", err)
		}
		res := tx.Model(&models.List{}).Where("id = ?", like.ListID).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1))
		if res.Error != nil {
			return fmt.Errorf("failed to increment likes for list %s: %w", like.ListID, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.KindNotFound, "list not found")
		}
		return nil
	})
}

// DeleteLike removes a like and decrements the counter in one transaction.
// Removing a like that does not exist is a conflict, not a no-op.
func (r *GORMEngagementRepository) DeleteLike(listID, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("list_id = ? AND user_id = ?", listID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete like: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.KindConflict, "list not liked")
		}
		res = tx.Model(&models.List{}).Where("id = ?", listID).
			UpdateColumn("likes", gorm.Expr("likes - ?", 1))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement likes for list %s: %w", listID, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.KindNotFound, "list not found")
		}
		return nil
	})
}

// HasLiked reports whether the user already liked the list.
func (r *GORMEngagementRepository) HasLiked(listID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("list_id = ? AND user_id = ?", listID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count likes: %w", err)
	}
	return count > 0, nil
}

// CreateBookmark inserts a bookmark. No counter moves for bookmarks.
func (r *GORMEngagementRepository) CreateBookmark(bookmark *models.Bookmark) error {
	if bookmark.ID == "" {
		bookmark.ID = uuid.New().String()
	}
	if err := r.db.Create(bookmark).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.KindConflict, "list already bookmarked")
		}
		return fmt.Errorf("failed to create bookmark: %w", err)
	}
	return nil
}

// DeleteBookmark removes a bookmark; removing a missing one is a conflict.
func (r *GORMEngagementRepository) DeleteBookmark(listID, userID string) error {
	res := r.db.Where("list_id = ? AND user_id = ?", listID, userID).Delete(&models.Bookmark{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete bookmark: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindConflict, "list not bookmarked")
	}
	return nil
}

// HasBookmarked reports whether the user already bookmarked the list.
func (r *GORMEngagementRepository) HasBookmarked(listID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Bookmark{}).
		Where("list_id = ? AND user_id = ?", listID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return count > 0, nil
}

// BookmarkedLists retrieves the lists the user follows, with authors.
func (r *GORMEngagementRepository) BookmarkedLists(userID string, limit, offset int) ([]models.List, error) {
	var lists []models.List
	err := r.db.Preload("Author").
		Joins("JOIN bookmarks ON bookmarks.list_id = lists.id").
		Where("bookmarks.user_id = ?", userID).
		Limit(limit).Offset(offset).
		Find(&lists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmarked lists: %w", err)
	}
	listRepo := GORMListRepository{db: r.db}
	if err := listRepo.attachItemCounts(lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// CreateComment inserts a comment and bumps the list's comment counter in
// one transaction; a missing list rolls the whole thing back so no orphan
// comment survives.
func (r *GORMEngagementRepository) CreateComment(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		res := tx.Model(&models.List{}).Where("id = ?", comment.ListID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1))
		if res.Error != nil {
			return fmt.Errorf("failed to increment comment count for list %s: %w", comment.ListID, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.KindNotFound, "list not found")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := r.db.First(&comment.Author, "id = ?", comment.UserID).Error; err != nil {
		return fmt.Errorf("failed to load comment author: %w", err)
	}
	return nil
}

// ListComments retrieves a list's comments, newest first, with authors.
func (r *GORMEngagementRepository) ListComments(listID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Where("list_id = ?", listID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get comments for list %s: %w", listID, err)
	}
	return comments, nil
}
