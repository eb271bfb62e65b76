package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Thakshaka/inventory-order-management-system/internal/service"
)

type ProductHandler struct {
	catalogService   *service.CatalogService
	defaultPageLimit int
	maxPageLimit     int
}

func NewProductHandler(catalogService *service.CatalogService, defaultPageLimit, maxPageLimit int) *ProductHandler {
	return &ProductHandler{
		catalogService:   catalogService,
		defaultPageLimit: defaultPageLimit,
		maxPageLimit:     maxPageLimit,
	}
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var request CreateProductRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}

	product, err := h.catalogService.CreateProduct(request.Name, request.Price, request.StockQuantity)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(product)
}

func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	limit, offset := parsePageParams(c, h.defaultPageLimit, h.maxPageLimit)

	products, total, err := h.catalogService.ListProducts(limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(PaginatedResponse{
		Items:  products,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}
