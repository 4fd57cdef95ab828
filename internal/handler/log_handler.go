package handler

import (
	"strconv"

	"go-warehouse-admin/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type LogHandler struct {
	repo repository.ActivityLogRepository
}

func NewLogHandler(repo repository.ActivityLogRepository) *LogHandler {
	return &LogHandler{repo: repo}
}

// GetLogs returns the activity trail, newest first
func (h *LogHandler) GetLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	logs, total, err := h.repo.FindAll(page, pageSize)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch logs"})
	}
	return paged(c, logs, total, page, pageSize)
}
