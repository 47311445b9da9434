package models

// SizeVocabulary is the fixed set of garment size labels the boutique
// recognises, in display order. Catalog rows may only use these labels.
var SizeVocabulary = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL"}

// KnownSize reports whether label belongs to the size vocabulary.
func KnownSize(label string) bool {
	for _, s := range SizeVocabulary {
		if s == label {
			return true
		}
	}
	return false
}

// Product represents a single item in the catalogue. Products are immutable
// after load; no component may mutate a Product's fields.
type Product struct {
	Code        string  `json:"code" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Type        string  `json:"type" validate:"required"`
	InStock     bool    `json:"in_stock"`
	// SizeOrder keeps the declaration order of the source row; SizeAvail
	// maps each of those labels to its availability flag. The catalog
	// loaders keep the two in lockstep.
	SizeOrder []string        `json:"size_order" validate:"required,min=1"`
	SizeAvail map[string]bool `json:"sizes" validate:"required"`
	Images    []string        `json:"images" validate:"required,min=1,max=4"`
}

// HasSize reports whether label is one of the product's declared sizes,
// available or not.
func (p *Product) HasSize(label string) bool {
	_, ok := p.SizeAvail[label]
	return ok
}

// AvailableSizes returns the labels marked available, in declaration order.
func (p *Product) AvailableSizes() []string {
	out := make([]string, 0, len(p.SizeOrder))
	for _, s := range p.SizeOrder {
		if p.SizeAvail[s] {
			out = append(out, s)
		}
	}
	return out
}
