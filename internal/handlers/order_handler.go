package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Thakshaka/inventory-order-management-system/internal/service"
)

type OrderHandler struct {
	orderService     *service.OrderService
	defaultPageLimit int
	maxPageLimit     int
}

func NewOrderHandler(orderService *service.OrderService, defaultPageLimit, maxPageLimit int) *OrderHandler {
	return &OrderHandler{
		orderService:     orderService,
		defaultPageLimit: defaultPageLimit,
		maxPageLimit:     maxPageLimit,
	}
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var request CreateOrderRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}

	items := make([]service.OrderItemInput, len(request.Items))
	for i, item := range request.Items {
		items[i] = service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	order, err := h.orderService.CreateOrder(items)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid order id")
	}

	order, err := h.orderService.GetOrder(id)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(order)
}

func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	limit, offset := parsePageParams(c, h.defaultPageLimit, h.maxPageLimit)

	orders, total, err := h.orderService.ListOrders(limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(PaginatedResponse{
		Items:  orders,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid order id")
	}

	var request UpdateOrderStatusRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}

	order, err := h.orderService.UpdateStatus(id, request.Status)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(order)
}
