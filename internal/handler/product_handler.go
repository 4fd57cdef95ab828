package handler

import (
	"strconv"

	"go-warehouse-admin/internal/model"
	"go-warehouse-admin/internal/repository"
	"go-warehouse-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	filter := repository.ProductFilter{
		Search:   c.Query("search"),
		Deleted:  c.Query("deleted") == "true",
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid category ID"})
		}
		filter.CategoryID = categoryID
	}

	products, total, err := h.service.List(filter)
	if err != nil {
		return fail(c, err)
	}
	return paged(c, products, total, page, pageSize)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid product ID"})
	}

	product, err := h.service.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, product)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid JSON"})
	}
	product.ID = uuid.Nil

	if err := h.service.Create(&product); err != nil {
		return fail(c, err)
	}
	return created(c, product)
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid JSON"})
	}

	updated, err := h.service.Update(id, &product)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, updated)
}

// DeleteProduct soft-deletes by default; ?permanent=true removes the product
// together with its stock and transaction history.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid product ID"})
	}

	if c.Query("permanent") == "true" {
		if err := h.service.PermanentDelete(id); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "Product permanently deleted"})
	}

	product, err := h.service.SoftDelete(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, product)
}

func (h *ProductHandler) RecoverProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid product ID"})
	}

	product, err := h.service.Recover(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
		"message": "Product recovered successfully",
	})
}
