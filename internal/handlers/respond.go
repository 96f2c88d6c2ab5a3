package handlers

import (
	"errors"
	"log"

	"listly/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// sendSuccess writes the standard success envelope.
func sendSuccess(c *fiber.Ctx, status int, message string, data fiber.Map) error {
	body := fiber.Map{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// sendError translates a service error into the standard error envelope.
// Unclassified errors become opaque 500s; their cause is only logged.
func sendError(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind != apperr.KindInternal {
		return c.Status(ae.HTTPStatus()).JSON(fiber.Map{
			"success": false,
			"message": ae.Message,
			"error":   fiber.Map{"general": ae.Message},
		})
	}
	log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "server error occurred",
		"error":   fiber.Map{"general": "server error occurred"},
	})
}

// pageParams reads the limit/page query params with their defaults.
func pageParams(c *fiber.Ctx) (limit, page int) {
	return c.QueryInt("limit", 10), c.QueryInt("page", 1)
}

// requesterID returns the authenticated user's ID, or "" on public routes.
func requesterID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// requesterName returns the authenticated user's username.
func requesterName(c *fiber.Ctx) string {
	name, _ := c.Locals("username").(string)
	return name
}
