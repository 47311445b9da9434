package services_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
	"github.com/hivaasboutique/hivaas-catalogue/internal/repositories"
	"github.com/hivaasboutique/hivaas-catalogue/internal/services"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{
			Code:        "A",
			Description: "Elegant cotton kurthi top",
			Price:       100,
			Type:        "kurthi tops",
			InStock:     true,
			SizeOrder:   []string{"S", "M"},
			SizeAvail:   map[string]bool{"S": true, "M": false},
			Images:      []string{"a.jpg"},
		},
		{
			Code:        "B",
			Description: "Trendy short kurti",
			Price:       50,
			Type:        "short kurtis",
			InStock:     true,
			SizeOrder:   []string{"S"},
			SizeAvail:   map[string]bool{"S": true},
			Images:      []string{"b.jpg"},
		},
		{
			Code:        "C",
			Description: "Traditional chudidhar set",
			Price:       100,
			Type:        "chudidhar sets",
			InStock:     false,
			SizeOrder:   []string{"L", "XL"},
			SizeAvail:   map[string]bool{"L": true, "XL": true},
			Images:      []string{"c.jpg"},
		},
	}
}

func codes(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Code)
	}
	return out
}

func TestApplyFilters_IdentityLaw(t *testing.T) {
	products := sampleProducts()

	result := services.ApplyFilters(products, models.FilterCriteria{})

	assert.Equal(t, codes(products), codes(result), "empty criteria must return the catalog unchanged in order")
}

func TestApplyFilters_SearchQuery(t *testing.T) {
	products := sampleProducts()

	// Case-insensitive substring over description.
	result := services.ApplyFilters(products, models.FilterCriteria{Query: "KURTHI"})
	assert.Equal(t, []string{"A"}, codes(result))

	// Substring over code too.
	result = services.ApplyFilters(products, models.FilterCriteria{Query: "b"})
	assert.Equal(t, []string{"B"}, codes(result))

	// No match is an empty result, not an error.
	result = services.ApplyFilters(products, models.FilterCriteria{Query: "saree"})
	assert.Empty(t, result)
}

func TestApplyFilters_SizeMatchesOnKeyPresence(t *testing.T) {
	products := sampleProducts()

	// Product A lists M as sold out; the size filter matches on the key
	// being present, not on availability.
	result := services.ApplyFilters(products, models.FilterCriteria{Sizes: []string{"M"}})
	assert.Equal(t, []string{"A"}, codes(result))

	// Any of the requested sizes qualifies.
	result = services.ApplyFilters(products, models.FilterCriteria{Sizes: []string{"M", "XL"}})
	assert.Equal(t, []string{"A", "C"}, codes(result))
}

func TestApplyFilters_Types(t *testing.T) {
	products := sampleProducts()

	result := services.ApplyFilters(products, models.FilterCriteria{Types: []string{"short kurtis", "chudidhar sets"}})
	assert.Equal(t, []string{"B", "C"}, codes(result))
}

func TestApplyFilters_PriceSort(t *testing.T) {
	products := sampleProducts()

	asc := services.ApplyFilters(products, models.FilterCriteria{PriceSort: models.PriceSortAscending})
	assert.Equal(t, []string{"B", "A", "C"}, codes(asc), "ties keep original relative order")

	desc := services.ApplyFilters(products, models.FilterCriteria{PriceSort: models.PriceSortDescending})
	assert.Equal(t, []string{"A", "C", "B"}, codes(desc), "descending is stable for the A/C tie too")

	// Sorting an already sorted sequence again changes nothing.
	again := services.ApplyFilters(asc, models.FilterCriteria{PriceSort: models.PriceSortAscending})
	assert.Equal(t, codes(asc), codes(again))
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	products := sampleProducts()

	_ = services.ApplyFilters(products, models.FilterCriteria{PriceSort: models.PriceSortAscending})

	assert.Equal(t, []string{"A", "B", "C"}, codes(products))
}

func TestPaginate(t *testing.T) {
	products := sampleProducts()

	page, total, err := services.Paginate(products, 2, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{"A", "B"}, codes(page))

	page, total, err = services.Paginate(products, 2, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{"C"}, codes(page))
}

func TestPaginate_EmptyResultStillHasOnePage(t *testing.T) {
	page, total, err := services.Paginate(nil, 6, 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, page)
}

func TestPaginate_OutOfRangePageClamps(t *testing.T) {
	products := sampleProducts()

	page, total, err := services.Paginate(products, 2, 99)

	assert.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{"C"}, codes(page), "pages past the end clamp to the last page")
}

func TestPaginate_MalformedRequest(t *testing.T) {
	products := sampleProducts()

	_, _, err := services.Paginate(products, 0, 1)
	assert.ErrorIs(t, err, models.ErrInvalidPage)

	_, _, err = services.Paginate(products, 2, 0)
	assert.ErrorIs(t, err, models.ErrInvalidPage)
}

func TestPaginate_RoundTrip(t *testing.T) {
	products := sampleProducts()
	pageSize := 2

	_, total, err := services.Paginate(products, pageSize, 1)
	assert.NoError(t, err)

	var joined []models.Product
	for p := 1; p <= total; p++ {
		page, _, err := services.Paginate(products, pageSize, p)
		assert.NoError(t, err)
		joined = append(joined, page...)
	}
	assert.Equal(t, codes(products), codes(joined), "concatenating all pages reproduces the sequence exactly once")
}

func newBrowseService(t *testing.T, seed int64) *services.BrowseService {
	t.Helper()
	repo := repositories.NewMemoryCatalogRepository()
	for _, p := range sampleProducts() {
		assert.NoError(t, repo.Put(p))
	}
	return services.NewBrowseService(repo, 2, rand.New(rand.NewSource(seed)))
}

func TestBrowse(t *testing.T) {
	svc := newBrowseService(t, 1)

	result, err := svc.Browse(models.FilterCriteria{PriceSort: models.PriceSortAscending}, 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, []string{"B", "A"}, codes(result.Products))
	assert.Empty(t, result.Suggestions)
}

func TestBrowse_EmptyResultNarrowedSuggestions(t *testing.T) {
	svc := newBrowseService(t, 1)

	// The query matches nothing, but the type narrowing alone does; the
	// suggestions drop the query and the sort.
	result, err := svc.Browse(models.FilterCriteria{
		Query: "no such product",
		Types: []string{"kurthi tops"},
	}, 1)

	assert.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.Equal(t, []string{"A"}, codes(result.Suggestions))
}

func TestBrowse_EmptyNarrowingFallsBackToRandomSample(t *testing.T) {
	// An impossible type: narrowing yields nothing, so the fallback is a
	// random sample. The same seed must produce the same sample.
	criteria := models.FilterCriteria{Types: []string{"sarees"}}

	first, err := newBrowseService(t, 42).Browse(criteria, 1)
	assert.NoError(t, err)
	second, err := newBrowseService(t, 42).Browse(criteria, 1)
	assert.NoError(t, err)

	assert.Empty(t, first.Products)
	assert.NotEmpty(t, first.Suggestions)
	assert.LessOrEqual(t, len(first.Suggestions), 5)
	assert.Equal(t, codes(first.Suggestions), codes(second.Suggestions))
}

func TestTypes(t *testing.T) {
	svc := newBrowseService(t, 1)

	types, err := svc.Types()

	assert.NoError(t, err)
	assert.Equal(t, []string{"kurthi tops", "short kurtis", "chudidhar sets"}, types)
}
