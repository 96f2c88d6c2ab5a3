package handlers

import (
	"fmt"

	"listly/internal/models"
	"listly/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ListHandler handles HTTP requests for lists and their items. The same
// handler serves both the public and private route namespaces; the
// route's visibility scopes every operation.
type ListHandler struct {
	listService *services.ListService
	validate    *validator.Validate
}

// NewListHandler creates a new ListHandler.
func NewListHandler(listService *services.ListService) *ListHandler {
	return &ListHandler{
		listService: listService,
		validate:    validator.New(),
	}
}

// RegisterPublicRoutes registers the /public-lists routes. Reads are
// open, mutations require auth.
func (h *ListHandler) RegisterPublicRoutes(router fiber.Router, auth fiber.Handler) {
	lists := router.Group("/public-lists")
	lists.Get("/", h.handleList)
	lists.Post("/", auth, h.handleCreate(models.VisibilityPublic))
	lists.Get("/:id", h.handleGet(models.VisibilityPublic))
	lists.Patch("/:id", auth, h.handleUpdate(models.VisibilityPublic))
	lists.Get("/:id/items", h.handleItems(models.VisibilityPublic))
	lists.Post("/:id/items", auth, h.handleAddItem(models.VisibilityPublic))
	lists.Get("/:id/items/:itemId", h.handleItem(models.VisibilityPublic))
	lists.Patch("/:id/items/:itemId", auth, h.handleUpdateItem(models.VisibilityPublic))
	lists.Delete("/:id/items/:itemId", auth, h.handleDeleteItem(models.VisibilityPublic))
}

// RegisterPrivateRoutes registers the /private-lists routes; everything
// is owner-only, so everything is authenticated.
func (h *ListHandler) RegisterPrivateRoutes(router fiber.Router, auth fiber.Handler) {
	lists := router.Group("/private-lists", auth)
	lists.Post("/", h.handleCreate(models.VisibilityPrivate))
	lists.Get("/:id", h.handleGet(models.VisibilityPrivate))
	lists.Patch("/:id", h.handleUpdate(models.VisibilityPrivate))
	lists.Get("/:id/items", h.handleItems(models.VisibilityPrivate))
	lists.Post("/:id/items", h.handleAddItem(models.VisibilityPrivate))
	lists.Get("/:id/items/:itemId", h.handleItem(models.VisibilityPrivate))
	lists.Patch("/:id/items/:itemId", h.handleUpdateItem(models.VisibilityPrivate))
	lists.Delete("/:id/items/:itemId", h.handleDeleteItem(models.VisibilityPrivate))
}

// ItemRequest represents an item in create/add payloads.
type ItemRequest struct {
	Name    string `json:"name"`
	URL     string `json:"url" validate:"required"`
	IconURL string `json:"icon_url"`
}

// CreateListRequest represents the request body for list creation.
type CreateListRequest struct {
	Name        string        `json:"name" validate:"required,min=1,max=100"`
	Description string        `json:"description" validate:"omitempty,max=200"`
	Items       []ItemRequest `json:"items" validate:"omitempty,dive"`
	Tags        []string      `json:"tags" validate:"omitempty,dive,required"`
}

func (h *ListHandler) handleList(c *fiber.Ctx) error {
	limit, page := pageParams(c)
	lists, err := h.listService.ListPublic(limit, page)
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, fiber.StatusOK, "public lists", fiber.Map{
		"lists": lists,
	})
}

func (h *ListHandler) handleCreate(visibility string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateListRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "invalid request body",
			})
		}
		if err := h.validate.Struct(req); err != nil {
			validationErrors := err.(validator.ValidationErrors)
			errorMessages := make(map[string]string)
			for _, e := range validationErrors {
				errorMessages[e.Field()] = fmt.Sprintf("field '%s' failed on the '%s' rule", e.Field(), e.Tag())
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"message": "validation failed",
				"errors":  errorMessages,
			})
		}

		items := make([]models.ListItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.ListItem{Name: item.Name, URL: item.URL, IconURL: item.IconURL})
		}

		list, err := h.listService.Create(requesterID(c), visibility, services.CreateListInput{
			Name:        req.Name,
			Description: req.Description,
			Items:       items,
			TagIDs:      req.Tags,
		})
		if err != nil {
			return sendError(c, err)
		}
		return sendSuccess(c, fiber.StatusCreated, "list created successfully", fiber.Map{
			"list": list.Detail(),
		})
	}
}

func (h *ListHandler) handleGet(visibility string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := h.listService.Get(c.Params("id"), visibility, requesterID(c))
		if err != nil {
			return sendError(c, err)
		}
		return sendSuccess(c, fiber.StatusOK, "list found successfully", fiber.Map{
			"list": list.Detail(),
		})
	}
}

func (h *ListHandler) handleUpdate(visibility string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var updates map[string]interface{}
		if err := c.BodyParser(&updates); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "invalid request body",
			})
		}
		list, err := h.listService.Update(c.Params("id"), visibility, requesterID(c), updates)
		if err != nil {
			return sendError(c, err)
		}
		return sendSuccess(c, fiber.StatusOK, "list updated successfully", fiber.Map{
			"list": list.Detail(),
		})
	}
}

func (h *ListHandler) handleItems(visibility string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := h.listService.Items(c.Params("id"), visibility, requesterID(c))
		if err != nil {
			return sendError(c, err)
		}
		return sendSuccess(c, fiber.StatusOK, "list items", fiber.Map{
			"items": items,
		})
	}
}

func (h *ListHandler) handleAddItem(visibility string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ItemRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "invalid request body",
			})
		}
		item, err := h.listService.AddItem(c.Params("id"), visibility, requesterID(c), models.ListItem{
			Name:    req.Name,
			URL:     req.URL,
			IconURL: req.IconURL,
		})
		if err != nil {
			return sendError(c, err)
		}
		return sendSuccess(c, fiber.StatusCreated, "item added successfully", fiber.Map{
			"item": item,
		})
	}
}

func (h *ListHandler) handleItem(visibility string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := h.listService.Item(c.Params("id"), c.Params("itemId"), visibility, requesterID(c))
		if err != nil {
			return sendError(c, err)
		}
		return sendSuccess(c, fiber.StatusOK, "item found successfully", fiber.Map{
			"item": item,
		})
	}
}

func (h *ListHandler) handleUpdateItem(visibility string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var updates map[string]interface{}
		if err := c.BodyParser(&updates); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "invalid request body",
			})
		}
		item, err := h.listService.UpdateItem(c.Params("id"), c.Params("itemId"), visibility, requesterID(c), updates)
		if err != nil {
			return sendError(c, err)
		}
		return sendSuccess(c, fiber.StatusOK, "item updated successfully", fiber.Map{
			"item": item,
		})
	}
}

func (h *ListHandler) handleDeleteItem(visibility string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := h.listService.DeleteItem(c.Params("id"), c.Params("itemId"), visibility, requesterID(c))
		if err != nil {
			return sendError(c, err)
		}
		return sendSuccess(c, fiber.StatusOK, "item deleted successfully", fiber.Map{
			"item": item,
		})
	}
}
