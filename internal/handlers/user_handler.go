package handlers

import (
	"fmt"
	"io"
	"strings"

	"listly/internal/models"
	"listly/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts and their lists.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
	listService *services.ListService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, authService *services.AuthService, listService *services.ListService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		listService: listService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes. auth guards the routes that
// need an identity.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	users := router.Group("/users")
	users.Post("/", h.HandleRegister)
	users.Patch("/", auth, h.HandleUpdate)
	users.Get("/:username", h.HandleProfile)
	users.Post("/:username/avatar", auth, h.HandleUploadAvatar)
	users.Get("/:username/avatar", h.HandleAvatar)
	users.Get("/:username/public-lists", h.HandlePublicLists)
	users.Get("/:username/private-lists", auth, h.HandlePrivateLists)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=4,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=72"`
	Name     string `json:"name" validate:"omitempty,min=4,max=20"`
}

// HandleRegister creates a new account and returns it with a token.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
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

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     strings.TrimSpace(req.Name),
	}
	if err := h.authService.RegisterUser(user); err != nil {
		return sendError(c, err)
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		return sendError(c, err)
	}

	return sendSuccess(c, fiber.StatusCreated, "account was created successfully", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// HandleUpdate applies a partial profile update for the caller.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	user, err := h.userService.Update(requesterID(c), updates)
	if err != nil {
		return sendError(c, err)
	}

	return sendSuccess(c, fiber.StatusOK, "details updated successfully", fiber.Map{
		"user": user,
	})
}

// HandleProfile returns a user's public profile.
func (h *UserHandler) HandleProfile(c *fiber.Ctx) error {
	user, err := h.userService.Profile(c.Params("username"))
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, fiber.StatusOK, "user found successfully", fiber.Map{
		"user":       user,
		"avatar_url": user.AvatarURL(),
	})
}

// HandleUploadAvatar stores the caller's avatar image. Only the account
// owner may upload.
func (h *UserHandler) HandleUploadAvatar(c *fiber.Ctx) error {
	if c.Params("username") != requesterName(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "user not authorized",
		})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": "avatar file is required",
		})
	}
	name := strings.ToLower(fileHeader.Filename)
	if !strings.HasSuffix(name, ".jpg") && !strings.HasSuffix(name, ".jpeg") && !strings.HasSuffix(name, ".png") {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": "please upload an image file",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return sendError(c, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return sendError(c, err)
	}

	if err := h.userService.SetAvatar(requesterID(c), data); err != nil {
		return sendError(c, err)
	}

	return sendSuccess(c, fiber.StatusOK, "avatar uploaded successfully", nil)
}

// HandleAvatar serves a user's avatar image.
func (h *UserHandler) HandleAvatar(c *fiber.Ctx) error {
	data, err := h.userService.Avatar(c.Params("username"))
	if err != nil {
		return sendError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(data)
}

// HandlePublicLists returns a page of a user's public list summaries.
func (h *UserHandler) HandlePublicLists(c *fiber.Ctx) error {
	user, err := h.userService.Profile(c.Params("username"))
	if err != nil {
		return sendError(c, err)
	}
	limit, page := pageParams(c)
	lists, err := h.listService.ListByAuthor(user.ID, models.VisibilityPublic, limit, page)
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, fiber.StatusOK, "user public lists", fiber.Map{
		"lists": lists,
	})
}

// HandlePrivateLists returns a page of the caller's own private list
// summaries. Only the account owner may read them.
func (h *UserHandler) HandlePrivateLists(c *fiber.Ctx) error {
	if c.Params("username") != requesterName(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "user not authorized",
		})
	}
	limit, page := pageParams(c)
	lists, err := h.listService.ListByAuthor(requesterID(c), models.VisibilityPrivate, limit, page)
	if err != nil {
		return sendError(c, err)
	}
	return sendSuccess(c, fiber.StatusOK, "user private lists", fiber.Map{
		"lists": lists,
	})
}
