package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API under /api/v1 plus the service endpoints the
// deployment depends on.
func RegisterRoutes(app *fiber.App, productHandler *ProductHandler, orderHandler *OrderHandler, version string) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the Inventory & Order Management API",
			"version": version,
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "version": version})
	})

	api := app.Group("/api/v1")

	api.Post("/products", productHandler.CreateProduct)
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:id", productHandler.GetProduct)

	api.Post("/orders", orderHandler.CreateOrder)
	api.Get("/orders", orderHandler.ListOrders)
	api.Get("/orders/:id", orderHandler.GetOrder)
	api.Patch("/orders/:id/status", orderHandler.UpdateOrderStatus)
}
