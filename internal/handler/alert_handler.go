package handler

import (
	"go-warehouse-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	service service.AlertService
}

func NewAlertHandler(s service.AlertService) *AlertHandler {
	return &AlertHandler{service: s}
}

// GetAlerts lists low- and out-of-stock products, most urgent first
func (h *AlertHandler) GetAlerts(c *fiber.Ctx) error {
	result, err := h.service.GetAlerts()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    result.Alerts,
		"summary": result.Summary,
	})
}
