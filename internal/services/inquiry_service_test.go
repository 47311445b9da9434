package services_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
	"github.com/hivaasboutique/hivaas-catalogue/internal/repositories"
	"github.com/hivaasboutique/hivaas-catalogue/internal/services"
)

// MockInquiryPublisher is a mock implementation of services.InquiryPublisher.
type MockInquiryPublisher struct {
	mock.Mock
}

func (m *MockInquiryPublisher) PublishInquiryCreated(event interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}

func newInquiryService(t *testing.T, publisher services.InquiryPublisher) *services.InquiryService {
	t.Helper()
	repo := repositories.NewMemoryCatalogRepository()
	for _, p := range sampleProducts() {
		assert.NoError(t, repo.Put(p))
	}
	return services.NewInquiryService(repo, "918073879674", publisher)
}

func TestEncodeText(t *testing.T) {
	text := "Hi, I'm interested in Product Code: A - Test item. Sizes: S, M"

	encoded := services.EncodeText(text)

	assert.NotContains(t, encoded, " ", "all spaces must be percent-encoded")
	assert.NotContains(t, encoded, "+", "spaces encode as %20, not +")
	assert.Contains(t, encoded, "%20")

	decoded, err := url.QueryUnescape(encoded)
	assert.NoError(t, err)
	assert.Equal(t, text, decoded, "encoding must round-trip exactly")
}

func TestFormatSingle(t *testing.T) {
	product := &models.Product{Code: "A", Description: "Test item"}

	msg := services.FormatSingle(product, []string{"S", "M"})
	assert.Equal(t, "Hi, I'm interested in Product Code: A - Test item. Sizes: S, M", msg)
	assert.True(t, strings.HasSuffix(msg, "Sizes: S, M"))

	// Without a selection the size clause is omitted.
	msg = services.FormatSingle(product, nil)
	assert.Equal(t, "Hi, I'm interested in Product Code: A - Test item.", msg)
}

func TestFormatWishlist(t *testing.T) {
	catalog := map[string]*models.Product{
		"A": {Code: "A", Description: "Elegant kurthi", Price: 799},
		"B": {Code: "B", Description: "Short kurti", Price: 599.5},
	}
	lookup := func(code string) (*models.Product, error) {
		if p, ok := catalog[code]; ok {
			return p, nil
		}
		return nil, models.ErrUnknownProduct
	}
	entries := []models.WishlistEntry{
		{Code: "A", SelectedSizes: []string{"S", "M"}},
		{Code: "B", SelectedSizes: []string{"S"}},
	}

	msg, err := services.FormatWishlist(entries, lookup)
	assert.NoError(t, err)
	assert.Equal(t,
		"Hi, I'm interested in the following products:\n"+
			"A: Elegant kurthi (₹799) Sizes: S, M\n"+
			"B: Short kurti (₹599.5) Sizes: S",
		msg)
}

func TestFormatWishlist_UnknownProduct(t *testing.T) {
	lookup := func(code string) (*models.Product, error) {
		return nil, models.ErrUnknownProduct
	}
	entries := []models.WishlistEntry{{Code: "ZZ", SelectedSizes: []string{"S"}}}

	_, err := services.FormatWishlist(entries, lookup)
	assert.ErrorIs(t, err, models.ErrUnknownProduct)
}

func TestSingleInquiry(t *testing.T) {
	mockPub := new(MockInquiryPublisher)
	mockPub.On("PublishInquiryCreated", mock.Anything).Return(nil).Once()
	svc := newInquiryService(t, mockPub)

	inquiry, err := svc.SingleInquiry("session-1", "A", []string{"S"})

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(inquiry.URL, "https://wa.me/918073879674?text="))
	assert.Equal(t, services.EncodeText(inquiry.Message), inquiry.Encoded)
	assert.Contains(t, inquiry.Message, "Product Code: A")
	mockPub.AssertExpectations(t)

	event := mockPub.Calls[0].Arguments.Get(0).(models.InquiryEvent)
	assert.Equal(t, "session-1", event.SessionID)
	assert.Equal(t, "single", event.Kind)
	assert.Equal(t, []string{"A"}, event.Codes)
}

func TestSingleInquiry_UnknownProduct(t *testing.T) {
	svc := newInquiryService(t, nil)

	_, err := svc.SingleInquiry("session-1", "ZZ", nil)
	assert.ErrorIs(t, err, models.ErrUnknownProduct)
}

func TestSingleInquiry_PublisherFailureDoesNotFailHandOff(t *testing.T) {
	mockPub := new(MockInquiryPublisher)
	mockPub.On("PublishInquiryCreated", mock.Anything).Return(assert.AnError).Once()
	svc := newInquiryService(t, mockPub)

	inquiry, err := svc.SingleInquiry("session-1", "A", nil)

	assert.NoError(t, err)
	assert.NotNil(t, inquiry)
	mockPub.AssertExpectations(t)
}

func TestWishlistInquiry(t *testing.T) {
	mockPub := new(MockInquiryPublisher)
	mockPub.On("PublishInquiryCreated", mock.Anything).Return(nil).Once()
	svc := newInquiryService(t, mockPub)

	entries := []models.WishlistEntry{
		{Code: "A", SelectedSizes: []string{"S"}},
		{Code: "B", SelectedSizes: []string{"S"}},
	}
	inquiry, err := svc.WishlistInquiry("session-1", entries)

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(inquiry.Message, "Hi, I'm interested in the following products:"))
	assert.Contains(t, inquiry.Message, "A: Elegant cotton kurthi top (₹100) Sizes: S")
	assert.Contains(t, inquiry.Message, "B: Trendy short kurti (₹50) Sizes: S")

	decoded, err := url.QueryUnescape(inquiry.Encoded)
	assert.NoError(t, err)
	assert.Equal(t, inquiry.Message, decoded)

	event := mockPub.Calls[0].Arguments.Get(0).(models.InquiryEvent)
	assert.Equal(t, "wishlist", event.Kind)
	assert.Equal(t, []string{"A", "B"}, event.Codes)
	mockPub.AssertExpectations(t)
}

func TestWishlistInquiry_NilPublisher(t *testing.T) {
	svc := newInquiryService(t, nil)

	inquiry, err := svc.WishlistInquiry("session-1", []models.WishlistEntry{{Code: "A", SelectedSizes: []string{"S"}}})

	assert.NoError(t, err)
	assert.NotNil(t, inquiry)
}
