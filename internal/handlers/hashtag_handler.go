package handlers

import (
	"listly/internal/services"
	"listly/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// HashtagHandler handles HTTP requests for the global tag set.
type HashtagHandler struct {
	hashtagService *services.HashtagService
}

// NewHashtagHandler creates a new HashtagHandler.
func NewHashtagHandler(hashtagService *services.HashtagService) *HashtagHandler {
	return &HashtagHandler{
		hashtagService: hashtagService,
	}
}

// RegisterRoutes registers the hashtag routes.
func (h *HashtagHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	tags := router.Group("/hashtags")
	tags.Post("/", auth, h.HandleCreate)
	tags.Get("/", h.HandleSearch)
}

// HashtagRequest represents the request body for tag creation.
type HashtagRequest struct {
	Tag string `json:"tag"`
}

// HandleCreate creates a hashtag; an existing tag comes back as a 409
// carrying the stored row.
func (h *HashtagHandler) HandleCreate(c *fiber.Ctx) error {
	var req HashtagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}
	tag, err := h.hashtagService.Create(req.Tag)
	if err != nil {
		if apperr.IsKind(err, apperr.KindConflict) && tag != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "hashtag already exists",
				"data":    fiber.Map{"tag": tag},
			})
		}
		return sendError(c, err)
	}
	return sendSuccess(c, fiber.StatusCreated, "hashtag created successfully", fiber.Map{
		"tag": tag,
	})
}

// HandleSearch returns hashtags matching the optional ?tag= term.
func (h *HashtagHandler) HandleSearch(c *fiber.Ctx) error {
	tags, err := h.hashtagService.Search(c.Query("tag"))
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, fiber.StatusOK, "hashtags", fiber.Map{
		"tags": tags,
	})
}
