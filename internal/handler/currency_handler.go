package handler

import (
	"go-warehouse-admin/internal/model"
	"go-warehouse-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CurrencyHandler struct {
	service service.CurrencyService
}

func NewCurrencyHandler(s service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{service: s}
}

// Convert handles GET /currency/convert?from=USD&to=IQD&amount=100
func (h *CurrencyHandler) Convert(c *fiber.Ctx) error {
	from := model.Currency(c.Query("from"))
	to := model.Currency(c.Query("to"))
	amount, err := decimal.NewFromString(c.Query("amount", ""))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid parameters. Required: from, to, amount"})
	}

	conv, err := h.service.Convert(from, to, amount)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, conv)
}
