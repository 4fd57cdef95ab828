package handler

import (
	"go-warehouse-admin/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// fail renders a classified error with the API envelope.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(apperr.Status(err)).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

// paged renders a listing with pagination metadata, mirroring the admin UI's
// expectations.
func paged(c *fiber.Ctx, data interface{}, total int64, page, pageSize int) error {
	totalPages := int64(0)
	if pageSize > 0 {
		totalPages = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       data,
		"total":      total,
		"page":       page,
		"pageSize":   pageSize,
		"totalPages": totalPages,
	})
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
