package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
	"github.com/hivaasboutique/hivaas-catalogue/internal/services"
)

// CatalogHandler handles HTTP requests for browsing the catalogue.
type CatalogHandler struct {
	browseService *services.BrowseService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(browseService *services.BrowseService) *CatalogHandler {
	return &CatalogHandler{
		browseService: browseService,
	}
}

// RegisterRoutes registers the catalogue routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleBrowse)
	router.Get("/types", h.HandleTypes)
}

// HandleBrowse runs one render cycle of the browse pipeline. Query
// parameters: q (search), sizes and types (comma-separated), sort
// (asc|desc), page (1-based).
func (h *CatalogHandler) HandleBrowse(c *fiber.Ctx) error {
	criteria := models.FilterCriteria{
		Query:     strings.TrimSpace(c.Query("q")),
		Sizes:     splitList(c.Query("sizes")),
		Types:     splitList(c.Query("types")),
		PriceSort: models.ParsePriceSort(c.Query("sort")),
	}
	page := c.QueryInt("page", 1)

	result, err := h.browseService.Browse(criteria, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// HandleTypes returns the distinct product types for the filter sidebar.
func (h *CatalogHandler) HandleTypes(c *fiber.Ctx) error {
	types, err := h.browseService.Types()
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"types": types})
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
