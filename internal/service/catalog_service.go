package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/Thakshaka/inventory-order-management-system/internal/domain"
	"github.com/Thakshaka/inventory-order-management-system/internal/events"
	"github.com/Thakshaka/inventory-order-management-system/internal/metrics"
	"github.com/Thakshaka/inventory-order-management-system/internal/store"
)

// CatalogService owns product creation and the read-side product queries.
type CatalogService struct {
	catalog   store.CatalogStore
	publisher events.Publisher
}

func NewCatalogService(catalog store.CatalogStore, publisher events.Publisher) *CatalogService {
	return &CatalogService{
		catalog:   catalog,
		publisher: publisher,
	}
}

func (s *CatalogService) CreateProduct(name string, price decimal.Decimal, stockQuantity int) (*domain.Product, error) {
	product, err := domain.NewProduct(name, price, stockQuantity)
	if err != nil {
		return nil, err
	}

	if err := s.catalog.AddProduct(product); err != nil {
		return nil, err
	}

	metrics.InventoryLevel.WithLabelValues(product.ID.String()).Set(float64(product.StockQuantity))
	publishChangeEvent(s.publisher, events.ProductCreatedEvent, events.ProductCreatedPayload{Product: product})

	log.WithFields(log.Fields{
		"product_id": product.ID,
		"name":       product.Name,
		"stock":      product.StockQuantity,
	}).Info("product created")

	return product, nil
}

func (s *CatalogService) GetProduct(id uuid.UUID) (*domain.Product, error) {
	return s.catalog.GetProduct(id)
}

func (s *CatalogService) ListProducts(limit, offset int) ([]*domain.Product, int, error) {
	return s.catalog.ListProducts(limit, offset)
}
