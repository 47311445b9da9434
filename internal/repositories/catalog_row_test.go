package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hivaasboutique/hivaas-catalogue/internal/repositories"
)

func TestParseSizes(t *testing.T) {
	order, avail, err := repositories.ParseSizes("S:1|M:0|L:1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"S", "M", "L"}, order)
	assert.Equal(t, map[string]bool{"S": true, "M": false, "L": true}, avail)
}

func TestParseSizes_Errors(t *testing.T) {
	for _, encoded := range []string{"", "S", "S:1|TINY:0", "S:abc", "S:1|S:0"} {
		_, _, err := repositories.ParseSizes(encoded)
		assert.Error(t, err, "encoding %q should be rejected", encoded)
	}
}

func TestEncodeSizesRoundTrip(t *testing.T) {
	order := []string{"XS", "M", "XXL"}
	avail := map[string]bool{"XS": false, "M": true, "XXL": true}

	encoded := repositories.EncodeSizes(order, avail)
	assert.Equal(t, "XS:0|M:1|XXL:1", encoded)

	gotOrder, gotAvail, err := repositories.ParseSizes(encoded)
	assert.NoError(t, err)
	assert.Equal(t, order, gotOrder)
	assert.Equal(t, avail, gotAvail)
}

func TestParseImages(t *testing.T) {
	refs, err := repositories.ParseImages("a.jpg; b.jpg;c.jpg")
	assert.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, refs)

	_, err = repositories.ParseImages("")
	assert.Error(t, err, "a product must carry at least one image")

	_, err = repositories.ParseImages("a;b;c;d;e")
	assert.Error(t, err, "more than four references is a malformed row")
}
