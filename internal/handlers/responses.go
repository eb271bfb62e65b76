package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Thakshaka/inventory-order-management-system/internal/domain"
)

// Response shapes the external client depends on. Lists are wrapped, created
// and fetched entities are returned bare, errors carry a detail message.

type PaginatedResponse struct {
	Items  interface{} `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type InsufficientStockResponse struct {
	Detail    string    `json:"detail"`
	ProductID uuid.UUID `json:"product_id"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Detail: detail})
}

// writeDomainError maps the domain error taxonomy onto the HTTP contract:
// NotFoundError → 404, everything else the caller can fix → 400.
func writeDomainError(c *fiber.Ctx, err error) error {
	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	var stock *domain.InsufficientStockError
	var transition *domain.InvalidTransitionError

	switch {
	case errors.As(err, &notFound):
		log.WithError(err).Warn("not found")
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Detail: notFound.Error()})

	case errors.As(err, &validation):
		log.WithError(err).Warn("validation error")
		return badRequest(c, validation.Error())

	case errors.As(err, &stock):
		log.WithError(err).Warn("insufficient stock")
		return c.Status(fiber.StatusBadRequest).JSON(InsufficientStockResponse{
			Detail:    stock.Error(),
			ProductID: stock.ProductID,
			Requested: stock.Requested,
			Available: stock.Available,
		})

	case errors.As(err, &transition):
		log.WithError(err).Warn("invalid status transition")
		return badRequest(c, transition.Error())

	default:
		log.WithError(err).Error("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Detail: "internal server error"})
	}
}
