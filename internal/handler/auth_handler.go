package handler

import (
	"go-warehouse-admin/internal/service"
	"go-warehouse-admin/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Email and password are required"})
	}

	result, err := h.service.Login(&req)
	if err != nil {
		// Credential failures render as 401, not the taxonomy's 400
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid email or password"})
	}
	return ok(c, result)
}
