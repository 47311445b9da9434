package repositories

import (
	"fmt"
	"sync"

	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
)

// MemoryCatalogRepository is an in-memory implementation of
// CatalogRepository, used for seed mode and tests. It keeps an explicit
// insertion-order slice alongside the code index so GetAll is stable.
type MemoryCatalogRepository struct {
	byCode map[string]models.Product
	order  []string
	mu     sync.RWMutex
}

// NewMemoryCatalogRepository creates an empty in-memory catalogue.
func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{
		byCode: make(map[string]models.Product),
	}
}

// Put adds a product to the catalogue. Codes are the primary key; adding a
// duplicate code fails rather than silently replacing the earlier row.
func (r *MemoryCatalogRepository) Put(product models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCode[product.Code]; exists {
		return fmt.Errorf("duplicate product code %s", product.Code)
	}
	r.byCode[product.Code] = product
	r.order = append(r.order, product.Code)
	return nil
}

// GetAll returns all products in insertion order.
func (r *MemoryCatalogRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.order))
	for _, code := range r.order {
		products = append(products, r.byCode[code])
	}
	return products, nil
}

// GetByCode returns the product with the given code.
func (r *MemoryCatalogRepository) GetByCode(code string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.byCode[code]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", code, models.ErrUnknownProduct)
	}
	return &product, nil
}
