package services

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
	"github.com/hivaasboutique/hivaas-catalogue/internal/repositories"
)

// suggestionLimit caps the fallback list shown when a filter combination
// matches nothing.
const suggestionLimit = 5

// BrowsePage is one rendered page of the catalogue.
type BrowsePage struct {
	Products   []models.Product `json:"products"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	// Suggestions is populated only when the filtered result is empty.
	Suggestions []models.Product `json:"suggestions,omitempty"`
}

// BrowseService handles the visitor-facing browse pipeline: filter, sort,
// paginate, and the empty-result suggestion fallback.
type BrowseService struct {
	repo     repositories.CatalogRepository
	pageSize int

	// rng drives the random suggestion fallback; guarded because Fiber
	// serves requests concurrently and rand.Rand is not safe for that.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewBrowseService creates a new BrowseService. The rng seed is injectable
// so the suggestion fallback is reproducible in tests.
func NewBrowseService(repo repositories.CatalogRepository, pageSize int, rng *rand.Rand) *BrowseService {
	return &BrowseService{
		repo:     repo,
		pageSize: pageSize,
		rng:      rng,
	}
}

// ApplyFilters narrows and orders the catalogue per the criteria. Passes run
// in a fixed order: search, size, type are conjunctive filters; price sort
// is a final total order. The input slice is never mutated.
func ApplyFilters(products []models.Product, criteria models.FilterCriteria) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	query := strings.ToLower(criteria.Query)
	for _, p := range products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Description), query) &&
			!strings.Contains(strings.ToLower(p.Code), query) {
			continue
		}
		if len(criteria.Sizes) > 0 && !hasAnySizeKey(&p, criteria.Sizes) {
			continue
		}
		if len(criteria.Types) > 0 && !containsString(criteria.Types, p.Type) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch criteria.PriceSort {
	case models.PriceSortAscending:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case models.PriceSortDescending:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	}
	return filtered
}

// hasAnySizeKey matches on key presence only, not on the availability flag.
// A product listing M as sold out still matches a filter for M.
func hasAnySizeKey(p *models.Product, sizes []string) bool {
	for _, s := range sizes {
		if p.HasSize(s) {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Paginate slices one page out of the filtered sequence. Total pages is at
// least 1 even for an empty result. Page numbers past the end clamp to the
// last page; only a malformed request (page or pageSize below 1) fails.
func Paginate(products []models.Product, pageSize, page int) ([]models.Product, int, error) {
	if pageSize < 1 {
		return nil, 0, fmt.Errorf("page size %d: %w", pageSize, models.ErrInvalidPage)
	}
	if page < 1 {
		return nil, 0, fmt.Errorf("page %d: %w", page, models.ErrInvalidPage)
	}

	totalPages := (len(products) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(products) {
		start = len(products)
	}
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], totalPages, nil
}

// Browse runs the full pipeline for one render cycle. When the filters
// match nothing, the page carries suggestions instead of products.
func (s *BrowseService) Browse(criteria models.FilterCriteria, page int) (*BrowsePage, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilters(all, criteria)
	pageSlice, totalPages, err := Paginate(filtered, s.pageSize, page)
	if err != nil {
		return nil, err
	}

	result := &BrowsePage{
		Products:   pageSlice,
		Page:       clampPage(page, totalPages),
		TotalPages: totalPages,
	}
	if len(filtered) == 0 {
		result.Suggestions = s.suggest(all, criteria)
	}
	return result, nil
}

func clampPage(page, totalPages int) int {
	if page > totalPages {
		return totalPages
	}
	return page
}

// Types returns the distinct product types in catalog order, for the
// filter sidebar.
func (s *BrowseService) Types() ([]string, error) {
	all, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(all))
	types := make([]string, 0, len(all))
	for _, p := range all {
		if !seen[p.Type] {
			seen[p.Type] = true
			types = append(types, p.Type)
		}
	}
	return types, nil
}

// suggest builds the empty-result fallback: first a deterministic narrowing
// by sizes/types only (search and sort ignored), then a random sample of
// the whole catalogue when even that matches nothing.
func (s *BrowseService) suggest(all []models.Product, criteria models.FilterCriteria) []models.Product {
	narrowed := ApplyFilters(all, models.FilterCriteria{
		Sizes: criteria.Sizes,
		Types: criteria.Types,
	})
	if len(narrowed) > 0 {
		if len(narrowed) > suggestionLimit {
			narrowed = narrowed[:suggestionLimit]
		}
		return narrowed
	}

	if len(all) == 0 || s.rng == nil {
		return nil
	}

	s.rngMu.Lock()
	perm := s.rng.Perm(len(all))
	s.rngMu.Unlock()

	n := suggestionLimit
	if n > len(all) {
		n = len(all)
	}
	sample := make([]models.Product, 0, n)
	for _, idx := range perm[:n] {
		sample = append(sample, all[idx])
	}
	return sample
}
