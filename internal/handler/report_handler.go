package handler

import (
	"time"

	"go-warehouse-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetReports returns daily/weekly/monthly/yearly profit buckets plus a
// summary, optionally narrowed by an inclusive startDate/endDate range.
func (h *ReportHandler) GetReports(c *fiber.Ctx) error {
	startDate, err := parseDateQuery(c.Query("startDate"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid startDate, expected YYYY-MM-DD"})
	}
	endDate, err := parseDateQuery(c.Query("endDate"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid endDate, expected YYYY-MM-DD"})
	}

	reports, err := h.service.GetReports(startDate, endDate)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, reports)
}

func parseDateQuery(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
