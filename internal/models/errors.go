package models

import (
	"errors"
	"fmt"
)

// Caller usage errors: the specific operation is rejected and all state is
// left unchanged.
var (
	ErrInvalidSize    = errors.New("size is not offered for this product")
	ErrInvalidPage    = errors.New("invalid page request")
	ErrUnknownProduct = errors.New("unknown product code")
)

// Expected user-workflow conditions, surfaced to the visitor as warnings
// rather than failures.
var (
	ErrEmptySelection    = errors.New("no sizes selected")
	ErrAlreadyInWishlist = errors.New("product is already in the wishlist")
	ErrNotInWishlist     = errors.New("product is not in the wishlist")
	ErrProductSoldOut    = errors.New("product is sold out")
)

// ErrImageFetch marks a failed image-collaborator call; the render degrades
// to a placeholder instead of failing the page.
var ErrImageFetch = errors.New("image fetch failed")

// DataLoadError reports a malformed catalog source row. The whole load
// fails; rows are never silently skipped.
type DataLoadError struct {
	Row   int
	Field string
	Err   error
}

func (e *DataLoadError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("catalog load failed at row %d (%s): %v", e.Row, e.Field, e.Err)
	}
	return fmt.Sprintf("catalog load failed at row %d: %v", e.Row, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }
