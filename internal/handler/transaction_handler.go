package handler

import (
	"strconv"
	"time"

	"go-warehouse-admin/internal/model"
	"go-warehouse-admin/internal/repository"
	"go-warehouse-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	filter := repository.TransactionFilter{Page: page, PageSize: pageSize}
	if t := c.Query("type"); t == string(model.MovementBuy) || t == string(model.MovementSell) {
		filter.Type = model.MovementType(t)
	}
	if raw := c.Query("startDate"); raw != "" {
		start, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid startDate, expected YYYY-MM-DD"})
		}
		filter.StartDate = &start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid endDate, expected YYYY-MM-DD"})
		}
		// include the entire end date
		end = end.Add(24*time.Hour - time.Millisecond)
		filter.EndDate = &end
	}

	txns, total, err := h.service.List(filter)
	if err != nil {
		return fail(c, err)
	}
	return paged(c, txns, total, page, pageSize)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid transaction ID"})
	}

	txn, err := h.service.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, txn)
}

// DeleteTransaction removes a movement record. Administrative action: the
// paired stock quantity is not rolled back.
func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid transaction ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Transaction deleted successfully"})
}
