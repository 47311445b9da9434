package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hivaasboutique/hivaas-catalogue/internal/middleware"
	"github.com/hivaasboutique/hivaas-catalogue/internal/services"
)

// InquiryHandler handles the WhatsApp hand-off endpoints.
type InquiryHandler struct {
	inquiryService *services.InquiryService
}

// NewInquiryHandler creates a new InquiryHandler.
func NewInquiryHandler(inquiryService *services.InquiryService) *InquiryHandler {
	return &InquiryHandler{
		inquiryService: inquiryService,
	}
}

// RegisterRoutes registers the inquiry routes with the Fiber app.
func (h *InquiryHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products/:code/inquiry", h.HandleSingleInquiry)
	router.Get("/wishlist/inquiry", h.HandleWishlistInquiry)
}

// HandleSingleInquiry builds the hand-off link for one product using the
// session's current size selection.
func (h *InquiryHandler) HandleSingleInquiry(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	code := c.Params("code")

	sizes, err := session.SelectedSizes(code)
	if err != nil {
		return respondError(c, err)
	}
	inquiry, err := h.inquiryService.SingleInquiry(session.ID, code, sizes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(inquiry)
}

// HandleWishlistInquiry builds the hand-off link for the whole wishlist.
func (h *InquiryHandler) HandleWishlistInquiry(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)

	entries := session.Entries()
	if len(entries) == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"warning": "No items in wishlist yet",
		})
	}

	inquiry, err := h.inquiryService.WishlistInquiry(session.ID, entries)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(inquiry)
}
