package services

import (
	"log"

	"listly/internal/models"
	"listly/internal/repositories"
	"listly/pkg/apperr"
	"listly/pkg/rabbitmq"

	"strings"
)

// EngagementService handles likes, bookmarks and comments on public
// lists. Counter movement happens inside the repository's transaction;
// this layer owns the existence checks and the event publishing that
// feeds the owner's notifications.
type EngagementService struct {
	listRepo       repositories.ListRepository
	engagementRepo repositories.EngagementRepository
	mqClient       *rabbitmq.Client
}

// NewEngagementService creates a new EngagementService. mqClient may be
// nil; events are then skipped.
func NewEngagementService(listRepo repositories.ListRepository, engagementRepo repositories.EngagementRepository, mqClient *rabbitmq.Client) *EngagementService {
	return &EngagementService{
		listRepo:       listRepo,
		engagementRepo: engagementRepo,
		mqClient:       mqClient,
	}
}

// Like records that actor liked the list and bumps its like counter. A
// missing list is not-found; a repeated like is a conflict.
func (s *EngagementService) Like(listID, actorID, actorName string) error {
	list, err := s.loadPublic(listID)
	if err != nil {
		return err
	}
	liked, err := s.engagementRepo.HasLiked(listID, actorID)
	if err != nil {
		return err
	}
	if liked {
		return apperr.New(apperr.KindConflict, "list already liked")
	}
	like := &models.Like{ListID: listID, UserID: actorID}
	if err := s.engagementRepo.CreateLike(like); err != nil {
		return err
	}
	s.publish(rabbitmq.EventLike, list, actorID, actorName)
	return nil
}

// Unlike removes the actor's like and decrements the counter. Unliking a
// list that was never liked is a conflict.
func (s *EngagementService) Unlike(listID, actorID string) error {
	if _, err := s.loadPublic(listID); err != nil {
		return err
	}
	return s.engagementRepo.DeleteLike(listID, actorID)
}

// Likes returns the list's like counter.
func (s *EngagementService) Likes(listID string) (int64, error) {
	list, err := s.loadPublic(listID)
	if err != nil {
		return 0, err
	}
	return list.Likes, nil
}

// Follow bookmarks the list for the actor. Same conflict semantics as
// Like, without any counter side effect.
func (s *EngagementService) Follow(listID, actorID, actorName string) error {
	list, err := s.loadPublic(listID)
	if err != nil {
		return err
	}
	bookmarked, err := s.engagementRepo.HasBookmarked(listID, actorID)
	if err != nil {
		return err
	}
	if bookmarked {
		return apperr.New(apperr.KindConflict, "list already bookmarked")
	}
	bookmark := &models.Bookmark{ListID: listID, UserID: actorID}
	if err := s.engagementRepo.CreateBookmark(bookmark); err != nil {
		return err
	}
	s.publish(rabbitmq.EventFollow, list, actorID, actorName)
	return nil
}

// Unfollow removes the actor's bookmark; removing a missing one is a
// conflict.
func (s *EngagementService) Unfollow(listID, actorID string) error {
	if _, err := s.loadPublic(listID); err != nil {
		return err
	}
	return s.engagementRepo.DeleteBookmark(listID, actorID)
}

// Bookmarks retrieves summaries of the lists the actor follows.
func (s *EngagementService) Bookmarks(actorID string, limit, page int) ([]models.ListSummary, error) {
	limit, offset := pageBounds(limit, page)
	lists, err := s.engagementRepo.BookmarkedLists(actorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return summarize(lists), nil
}

// Comment creates a comment on the list and bumps its comment counter.
// An empty body after trimming is a validation error; the comment is
// never created without the counter moving, and vice versa.
func (s *EngagementService) Comment(listID, actorID, actorName, body string) (*models.Comment, error) {
	list, err := s.loadPublic(listID)
	if err != nil {
		return nil, err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.New(apperr.KindValidation, "body is required")
	}
	comment := &models.Comment{ListID: listID, UserID: actorID, Body: body}
	if err := s.engagementRepo.CreateComment(comment); err != nil {
		return nil, err
	}
	s.publish(rabbitmq.EventComment, list, actorID, actorName)
	return comment, nil
}

// Comments retrieves the list's comments, newest first.
func (s *EngagementService) Comments(listID string) ([]models.Comment, error) {
	if _, err := s.loadPublic(listID); err != nil {
		return nil, err
	}
	return s.engagementRepo.ListComments(listID)
}

// loadPublic loads a list; only public lists take engagement.
func (s *EngagementService) loadPublic(listID string) (*models.List, error) {
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		return nil, err
	}
	if list.Visibility != models.VisibilityPublic {
		return nil, apperr.New(apperr.KindNotFound, "list not found")
	}
	return list, nil
}

// publish emits an engagement event for the notification consumer. A
// publish failure is logged and never fails the request. Acting on your
// own list produces no notification.
func (s *EngagementService) publish(kind string, list *models.List, actorID, actorName string) {
	if s.mqClient == nil || list.AuthorID == actorID {
		return
	}
	event := rabbitmq.EngagementEvent{
		Kind:      kind,
		ListID:    list.ID,
		ListName:  list.Name,
		OwnerID:   list.AuthorID,
		ActorID:   actorID,
		ActorName: actorName,
	}
	if err := s.mqClient.PublishEngagement(event); err != nil {
		log.Printf("Warning: failed to publish %s event for list %s: %v", kind, list.ID, err)
	}
}
