package handlers

import (
	"listly/internal/models"
	"listly/internal/services"

	"github.com/gofiber/fiber/v2"
)

// EngagementHandler handles likes, follows, comments and the bookmark
// feed.
type EngagementHandler struct {
	engagementService *services.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(engagementService *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
	}
}

// RegisterRoutes registers the engagement routes under /public-lists and
// the bookmark feed.
func (h *EngagementHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	lists := router.Group("/public-lists")
	lists.Get("/:id/likes", h.HandleLikes)
	lists.Post("/:id/likes", auth, h.HandleLike)
	lists.Delete("/:id/likes", auth, h.HandleUnlike)
	lists.Post("/:id/follow", auth, h.HandleFollow)
	lists.Delete("/:id/follow", auth, h.HandleUnfollow)
	lists.Get("/:id/comments", h.HandleComments)
	lists.Post("/:id/comments", auth, h.HandleComment)

	router.Get("/bookmarks", auth, h.HandleBookmarks)
}

// HandleLikes returns the list's like counter.
func (h *EngagementHandler) HandleLikes(c *fiber.Ctx) error {
	likes, err := h.engagementService.Likes(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, fiber.StatusOK, "list likes", fiber.Map{
		"likes": likes,
	})
}

// HandleLike records the caller's like.
func (h *EngagementHandler) HandleLike(c *fiber.Ctx) error {
	if err := h.engagementService.Like(c.Params("id"), requesterID(c), requesterName(c)); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUnlike removes the caller's like.
func (h *EngagementHandler) HandleUnlike(c *fiber.Ctx) error {
	if err := h.engagementService.Unlike(c.Params("id"), requesterID(c)); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleFollow bookmarks the list for the caller.
func (h *EngagementHandler) HandleFollow(c *fiber.Ctx) error {
	if err := h.engagementService.Follow(c.Params("id"), requesterID(c), requesterName(c)); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUnfollow removes the caller's bookmark.
func (h *EngagementHandler) HandleUnfollow(c *fiber.Ctx) error {
	if err := h.engagementService.Unfollow(c.Params("id"), requesterID(c)); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleComments returns the list's comments, newest first.
func (h *EngagementHandler) HandleComments(c *fiber.Ctx) error {
	comments, err := h.engagementService.Comments(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}
	views := make([]models.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, comments[i].View())
	}
	return sendSuccess(c, fiber.StatusOK, "list comments", fiber.Map{
		"comments": views,
	})
}

// CommentRequest represents the request body for a new comment.
type CommentRequest struct {
	Body string `json:"body"`
}

// HandleComment creates a comment on the list.
func (h *EngagementHandler) HandleComment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}
	comment, err := h.engagementService.Comment(c.Params("id"), requesterID(c), requesterName(c), req.Body)
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, fiber.StatusCreated, "comment created successfully", fiber.Map{
		"comment": comment.View(),
	})
}

// HandleBookmarks returns summaries of the lists the caller follows.
func (h *EngagementHandler) HandleBookmarks(c *fiber.Ctx) error {
	limit, page := pageParams(c)
	lists, err := h.engagementService.Bookmarks(requesterID(c), limit, page)
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, fiber.StatusOK, "bookmarked lists", fiber.Map{
		"lists": lists,
	})
}
