package repositories

import "listly/internal/models"

// EngagementRepository defines the interface for likes, bookmarks and
// comments. Counter side effects are part of the operation itself: a like
// or comment is created in the same transaction that moves the list's
// counter, so readers never observe one without the other.
type EngagementRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(listID, userID string) error
	HasLiked(listID, userID string) (bool, error)

	CreateBookmark(bookmark *models.Bookmark) error
	DeleteBookmark(listID, userID string) error
	HasBookmarked(listID, userID string) (bool, error)
	BookmarkedLists(userID string, limit, offset int) ([]models.List, error)

	CreateComment(comment *models.Comment) error
	ListComments(listID string) ([]models.Comment, error)
}
