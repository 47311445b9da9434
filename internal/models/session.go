package models

// SelectionState is the transient per-product UI state of one session:
// the image currently shown and which size checkboxes are ticked. It is
// created lazily on first access and lives for the whole session.
type SelectionState struct {
	ImageIndex   int             `json:"image_index"`
	CheckedSizes map[string]bool `json:"checked_sizes"`
}

// WishlistEntry is the snapshot stored when a product is added to the
// wishlist. SelectedSizes is a copy taken at add time; later checkbox
// changes do not alter it.
type WishlistEntry struct {
	Code          string   `json:"code"`
	SelectedSizes []string `json:"selected_sizes"`
}
