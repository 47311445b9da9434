package repositories

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
)

// Catalog sources store per-size availability as a compact text encoding,
// e.g. "S:1|M:0|L:1", and image references as a ";"-separated list of 1 to
// 4 entries. Both encodings are shared by the CSV and database sources so
// load-time validation stays in one place.

const (
	sizePairSep  = "|"
	sizeFlagSep  = ":"
	imageRefSep  = ";"
	maxImageRefs = 4
)

// ParseSizes decodes a size-availability encoding into declaration order
// and availability map. Labels must come from the size vocabulary and may
// not repeat.
func ParseSizes(encoded string) ([]string, map[string]bool, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, nil, fmt.Errorf("empty size encoding")
	}

	order := make([]string, 0, 4)
	avail := make(map[string]bool, 4)
	for _, pair := range strings.Split(encoded, sizePairSep) {
		parts := strings.SplitN(pair, sizeFlagSep, 2)
		if len(parts) != 2 {
			return nil, nil, fmt.Errorf("malformed size pair %q", pair)
		}
		label := strings.TrimSpace(parts[0])
		if !models.KnownSize(label) {
			return nil, nil, fmt.Errorf("unknown size label %q", label)
		}
		if _, dup := avail[label]; dup {
			return nil, nil, fmt.Errorf("duplicate size label %q", label)
		}
		flag, err := strconv.ParseBool(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, nil, fmt.Errorf("bad availability flag for size %q: %w", label, err)
		}
		order = append(order, label)
		avail[label] = flag
	}
	return order, avail, nil
}

// EncodeSizes is the inverse of ParseSizes, used when seeding database
// catalog tables.
func EncodeSizes(order []string, avail map[string]bool) string {
	pairs := make([]string, 0, len(order))
	for _, label := range order {
		flag := "0"
		if avail[label] {
			flag = "1"
		}
		pairs = append(pairs, label+sizeFlagSep+flag)
	}
	return strings.Join(pairs, sizePairSep)
}

// ParseImages decodes a ";"-separated image reference list. Every product
// must carry between 1 and 4 references.
func ParseImages(encoded string) ([]string, error) {
	refs := make([]string, 0, maxImageRefs)
	for _, ref := range strings.Split(encoded, imageRefSep) {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		refs = append(refs, ref)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("product has no image references")
	}
	if len(refs) > maxImageRefs {
		return nil, fmt.Errorf("product has %d image references, maximum is %d", len(refs), maxImageRefs)
	}
	return refs, nil
}

// EncodeImages is the inverse of ParseImages.
func EncodeImages(refs []string) string {
	return strings.Join(refs, imageRefSep)
}
