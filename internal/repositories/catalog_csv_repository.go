package repositories

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
)

// csvColumns is the required header of a catalogue CSV, in order.
var csvColumns = []string{"code", "description", "price", "type", "in_stock", "sizes", "images"}

// CSVCatalogRepository loads the product table from a CSV file once at
// construction and serves it from memory. Any malformed row fails the whole
// load with *models.DataLoadError; rows are never silently skipped.
type CSVCatalogRepository struct {
	store *MemoryCatalogRepository
}

// NewCSVCatalogRepository reads and validates the catalogue at path.
func NewCSVCatalogRepository(path string) (*CSVCatalogRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	repo, err := loadCSVCatalog(f)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func loadCSVCatalog(r io.Reader) (*CSVCatalogRepository, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &models.DataLoadError{Row: 0, Err: fmt.Errorf("failed to read header: %w", err)}
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range csvColumns {
		if _, ok := col[name]; !ok {
			return nil, &models.DataLoadError{Row: 0, Field: name, Err: fmt.Errorf("missing required column")}
		}
	}

	validate := validator.New()
	store := NewMemoryCatalogRepository()

	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &models.DataLoadError{Row: row, Err: err}
		}

		product, loadErr := parseCSVRow(record, col, row)
		if loadErr != nil {
			return nil, loadErr
		}
		if err := validate.Struct(product); err != nil {
			return nil, &models.DataLoadError{Row: row, Err: err}
		}
		if err := store.Put(*product); err != nil {
			return nil, &models.DataLoadError{Row: row, Field: "code", Err: err}
		}
	}

	return &CSVCatalogRepository{store: store}, nil
}

func parseCSVRow(record []string, col map[string]int, row int) (*models.Product, error) {
	field := func(name string) string {
		idx := col[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	price, err := strconv.ParseFloat(field("price"), 64)
	if err != nil {
		return nil, &models.DataLoadError{Row: row, Field: "price", Err: err}
	}
	inStock, err := strconv.ParseBool(field("in_stock"))
	if err != nil {
		return nil, &models.DataLoadError{Row: row, Field: "in_stock", Err: err}
	}
	sizeOrder, sizeAvail, err := ParseSizes(field("sizes"))
	if err != nil {
		return nil, &models.DataLoadError{Row: row, Field: "sizes", Err: err}
	}
	images, err := ParseImages(field("images"))
	if err != nil {
		return nil, &models.DataLoadError{Row: row, Field: "images", Err: err}
	}

	return &models.Product{
		Code:        field("code"),
		Description: field("description"),
		Price:       price,
		Type:        field("type"),
		InStock:     inStock,
		SizeOrder:   sizeOrder,
		SizeAvail:   sizeAvail,
		Images:      images,
	}, nil
}

// GetAll returns all products in source row order.
func (r *CSVCatalogRepository) GetAll() ([]models.Product, error) {
	return r.store.GetAll()
}

// GetByCode returns the product with the given code.
func (r *CSVCatalogRepository) GetByCode(code string) (*models.Product, error) {
	return r.store.GetByCode(code)
}
