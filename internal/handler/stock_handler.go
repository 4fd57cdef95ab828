package handler

import (
	"go-warehouse-admin/internal/repository"
	"go-warehouse-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	ledger    service.LedgerService
	stockRepo repository.StockRepository
}

func NewStockHandler(ledger service.LedgerService, stockRepo repository.StockRepository) *StockHandler {
	return &StockHandler{ledger: ledger, stockRepo: stockRepo}
}

// GetStocks lists all stock rows for active products, most recently moved first
func (h *StockHandler) GetStocks(c *fiber.Ctx) error {
	stocks, err := h.stockRepo.FindAllActive()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch stocks"})
	}
	return ok(c, stocks)
}

// ApplyMovement records one BUY or SELL against a product's stock
func (h *StockHandler) ApplyMovement(c *fiber.Ctx) error {
	var req service.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid JSON"})
	}

	result, err := h.ledger.ApplyMovement(&req)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, fiber.Map{
		"stock":       fiber.Map{"quantity": result.Quantity},
		"transaction": result.Transaction,
	})
}
