package middleware

import (
	"strings"

	"go-warehouse-admin/internal/repository"
	"go-warehouse-admin/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and sets the admin identity in the
// request context.
func RequireAuth(adminRepo repository.AdminRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
		}

		admin, err := adminRepo.FindByID(claims.AdminID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Admin not found"})
		}

		c.Locals("admin_id", admin.ID.String())
		c.Locals("admin_email", admin.Email)
		return c.Next()
	}
}
