package handlers

import (
	"strconv"

	"listly/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles HTTP requests for the notification feed.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// RegisterRoutes registers the notification routes; all require auth.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	notifications := router.Group("/notifications", auth)
	notifications.Get("/", h.HandleList)
	notifications.Get("/:id", h.HandleGet)
}

// HandleList returns a page of the caller's notifications, optionally
// filtered by ?type=.
func (h *NotificationHandler) HandleList(c *fiber.Ctx) error {
	limit, page := pageParams(c)

	var notificationType *int
	if raw := c.Query("type"); raw != "" {
		t, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"message": "type must be a number",
			})
		}
		notificationType = &t
	}

	notifications, err := h.notificationService.List(requesterID(c), notificationType, limit, page)
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, fiber.StatusOK, "notifications", fiber.Map{
		"notifications": notifications,
	})
}

// HandleGet returns a single notification the caller owns.
func (h *NotificationHandler) HandleGet(c *fiber.Ctx) error {
	notification, err := h.notificationService.Get(c.Params("id"), requesterID(c))
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, fiber.StatusOK, "notification found successfully", fiber.Map{
		"notification": notification,
	})
}
