package services

import (
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
	"github.com/hivaasboutique/hivaas-catalogue/internal/repositories"
)

// InquiryPublisher publishes inquiry-created notifications to the message
// queue. The body is marshaled to JSON by the implementation.
type InquiryPublisher interface {
	PublishInquiryCreated(event interface{}) error
}

// InquiryService builds the WhatsApp hand-off messages for a single
// product or for a whole wishlist, and notifies the shop owner's queue
// when a link is produced.
type InquiryService struct {
	catalog   repositories.CatalogRepository
	number    string
	publisher InquiryPublisher // may be nil when the queue is disabled
}

// NewInquiryService creates a new InquiryService. The number is the
// destination WhatsApp account in international digits-only form.
func NewInquiryService(catalog repositories.CatalogRepository, number string, publisher InquiryPublisher) *InquiryService {
	return &InquiryService{
		catalog:   catalog,
		number:    number,
		publisher: publisher,
	}
}

// EncodeText percent-encodes a message for embedding in a URL query
// parameter, with spaces as %20. Decoding with url.QueryUnescape recovers
// the exact original text.
func EncodeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// FormatSingle builds the plain inquiry text for one product. The size
// clause is omitted when nothing is selected, matching the plain product
// link on the storefront.
func FormatSingle(product *models.Product, selectedSizes []string) string {
	msg := fmt.Sprintf("Hi, I'm interested in Product Code: %s - %s.", product.Code, product.Description)
	if len(selectedSizes) > 0 {
		msg += fmt.Sprintf(" Sizes: %s", strings.Join(selectedSizes, ", "))
	}
	return msg
}

// FormatWishlist builds the plain inquiry text for a whole wishlist, one
// line per entry under a fixed header. lookup resolves a code to its
// product and is expected to succeed for every entry.
func FormatWishlist(entries []models.WishlistEntry, lookup func(code string) (*models.Product, error)) (string, error) {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, "Hi, I'm interested in the following products:")
	for _, entry := range entries {
		product, err := lookup(entry.Code)
		if err != nil {
			return "", fmt.Errorf("wishlist entry %s: %w", entry.Code, models.ErrUnknownProduct)
		}
		lines = append(lines, fmt.Sprintf("%s: %s (₹%s) Sizes: %s",
			product.Code,
			product.Description,
			formatPrice(product.Price),
			strings.Join(entry.SelectedSizes, ", ")))
	}
	return strings.Join(lines, "\n"), nil
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// SingleInquiry builds the hand-off for one product plus the caller's
// current size selection.
func (s *InquiryService) SingleInquiry(sessionID, code string, selectedSizes []string) (*models.Inquiry, error) {
	product, err := s.catalog.GetByCode(code)
	if err != nil {
		return nil, err
	}

	message := FormatSingle(product, selectedSizes)
	inquiry := s.newInquiry(message)
	s.notify(sessionID, "single", []string{code}, message)
	return inquiry, nil
}

// WishlistInquiry builds the hand-off for the whole wishlist.
func (s *InquiryService) WishlistInquiry(sessionID string, entries []models.WishlistEntry) (*models.Inquiry, error) {
	message, err := FormatWishlist(entries, s.catalog.GetByCode)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(entries))
	for _, entry := range entries {
		codes = append(codes, entry.Code)
	}
	inquiry := s.newInquiry(message)
	s.notify(sessionID, "wishlist", codes, message)
	return inquiry, nil
}

func (s *InquiryService) newInquiry(message string) *models.Inquiry {
	encoded := EncodeText(message)
	return &models.Inquiry{
		Message: message,
		Encoded: encoded,
		URL:     fmt.Sprintf("https://wa.me/%s?text=%s", s.number, encoded),
	}
}

// notify is fire-and-forget: a queue failure never fails the hand-off.
func (s *InquiryService) notify(sessionID, kind string, codes []string, message string) {
	if s.publisher == nil {
		return
	}
	event := models.InquiryEvent{
		SessionID: sessionID,
		Kind:      kind,
		Codes:     codes,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.publisher.PublishInquiryCreated(event); err != nil {
		log.Printf("Failed to publish inquiry event: %v", err)
	}
}
