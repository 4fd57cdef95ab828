package handler

import (
	"go-warehouse-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboard returns the overview stats, recent movements and low-stock widget
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	data, err := h.service.GetDashboard()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, data)
}
