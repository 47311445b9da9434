package repositories

import (
	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
)

// CatalogRepository defines read-only access to the product catalogue.
// The catalogue is loaded once per process and never mutated afterwards,
// so the interface carries no write operations. GetAll returns products in
// catalog order, which is also the PriceSortNone display order.
type CatalogRepository interface {
	GetAll() ([]models.Product, error)
	GetByCode(code string) (*models.Product, error)
}
