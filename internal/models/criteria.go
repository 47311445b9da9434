package models

// PriceSort selects the final ordering pass of the browse pipeline.
type PriceSort int

const (
	PriceSortNone PriceSort = iota
	PriceSortAscending
	PriceSortDescending
)

// ParsePriceSort maps the query-string value to a PriceSort. Unknown values
// fall back to PriceSortNone, matching the "None" radio default.
func ParsePriceSort(s string) PriceSort {
	switch s {
	case "asc", "low-to-high":
		return PriceSortAscending
	case "desc", "high-to-low":
		return PriceSortDescending
	default:
		return PriceSortNone
	}
}

// FilterCriteria is one render cycle's worth of filter input. Zero value
// means "show everything in catalog order".
type FilterCriteria struct {
	Query     string    `json:"query"`
	Sizes     []string  `json:"sizes"`
	Types     []string  `json:"types"`
	PriceSort PriceSort `json:"price_sort"`
}

// IsEmpty reports whether the criteria would pass the catalog through
// unchanged.
func (c FilterCriteria) IsEmpty() bool {
	return c.Query == "" && len(c.Sizes) == 0 && len(c.Types) == 0 && c.PriceSort == PriceSortNone
}
