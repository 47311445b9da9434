package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
)

// ProductRecord is the database row backing a catalogue product. Sizes and
// Images use the same text encodings as the CSV source, so decoding goes
// through the shared parsers.
type ProductRecord struct {
	Code        string  `gorm:"uniqueIndex;type:varchar(36)"`
	Description string  `gorm:"type:varchar(500)"`
	Price       float64 `gorm:""`
	Type        string  `gorm:"type:varchar(100)"`
	InStock     bool    `gorm:""`
	Sizes       string  `gorm:"type:varchar(100)"`
	Images      string  `gorm:"type:varchar(500)"`
	gorm.Model          // Embed gorm.Model for ID, CreatedAt, UpdatedAt, DeletedAt
}

// TableName keeps the table name stable across drivers.
func (ProductRecord) TableName() string { return "products" }

// GORMCatalogRepository serves the catalogue from a database table,
// read-only. Catalog order is the row insertion order (primary key).
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// Migrate creates the products table if needed.
func (r *GORMCatalogRepository) Migrate() error {
	if err := r.db.AutoMigrate(&ProductRecord{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}
	return nil
}

// GetAll retrieves all products from the database in catalog order.
func (r *GORMCatalogRepository) GetAll() ([]models.Product, error) {
	var records []ProductRecord
	if err := r.db.Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}

	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		product, err := decodeProductRecord(&rec)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, nil
}

// GetByCode retrieves a single product by its code from the database.
func (r *GORMCatalogRepository) GetByCode(code string) (*models.Product, error) {
	var rec ProductRecord
	if err := r.db.First(&rec, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", code, models.ErrUnknownProduct)
		}
		return nil, fmt.Errorf("failed to get product by code %s: %w", code, err)
	}
	return decodeProductRecord(&rec)
}

func decodeProductRecord(rec *ProductRecord) (*models.Product, error) {
	sizeOrder, sizeAvail, err := ParseSizes(rec.Sizes)
	if err != nil {
		return nil, &models.DataLoadError{Row: int(rec.ID), Field: "sizes", Err: err}
	}
	images, err := ParseImages(rec.Images)
	if err != nil {
		return nil, &models.DataLoadError{Row: int(rec.ID), Field: "images", Err: err}
	}
	return &models.Product{
		Code:        rec.Code,
		Description: rec.Description,
		Price:       rec.Price,
		Type:        rec.Type,
		InStock:     rec.InStock,
		SizeOrder:   sizeOrder,
		SizeAvail:   sizeAvail,
		Images:      images,
	}, nil
}
