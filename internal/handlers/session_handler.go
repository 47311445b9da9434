package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/hivaasboutique/hivaas-catalogue/internal/middleware"
)

// SessionHandler handles the discrete visitor intents that mutate session
// state: image navigation, size checkboxes and the wishlist.
type SessionHandler struct{}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// RegisterRoutes registers the session-state routes with the Fiber app.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products/:code/selection", h.HandleGetSelection)
	router.Post("/products/:code/image", h.HandleAdvanceImage)
	router.Put("/products/:code/sizes/:size", h.HandleSetSizeChecked)

	router.Get("/wishlist", h.HandleGetWishlist)
	router.Post("/wishlist/:code", h.HandleAddToWishlist)
	router.Delete("/wishlist/:code", h.HandleRemoveFromWishlist)
}

// HandleGetSelection returns the product's current selection state,
// creating it lazily.
func (h *SessionHandler) HandleGetSelection(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	state, err := session.Selection(utils.CopyString(c.Params("code")))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(state)
}

// HandleAdvanceImage moves the product's image carousel. Query parameter
// dir is "next" or "prev".
func (h *SessionHandler) HandleAdvanceImage(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	code := utils.CopyString(c.Params("code"))

	var direction int
	switch dir := c.Query("dir", "next"); dir {
	case "next":
		direction = 1
	case "prev":
		direction = -1
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("dir must be 'next' or 'prev', got %q", dir),
		})
	}

	index, err := session.AdvanceImage(code, direction)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"code":        code,
		"image_index": index,
	})
}

type setSizeCheckedRequest struct {
	Checked bool `json:"checked"`
}

// HandleSetSizeChecked ticks or unticks one size checkbox.
func (h *SessionHandler) HandleSetSizeChecked(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	code := utils.CopyString(c.Params("code"))
	size := utils.CopyString(c.Params("size"))

	var req setSizeCheckedRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing size-checked request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := session.SetSizeChecked(code, size, req.Checked); err != nil {
		return respondError(c, err)
	}
	selected, err := session.SelectedSizes(code)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"code":           code,
		"selected_sizes": selected,
	})
}

// HandleGetWishlist returns the wishlist in insertion order.
func (h *SessionHandler) HandleGetWishlist(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"entries": session.Entries(),
	})
}

// HandleAddToWishlist snapshots the current selection into the wishlist.
func (h *SessionHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	code := utils.CopyString(c.Params("code"))

	sizes, err := session.AddToWishlist(code)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"code":           code,
		"selected_sizes": sizes,
	})
}

// HandleRemoveFromWishlist drops the entry and resets the product's size
// checkboxes.
func (h *SessionHandler) HandleRemoveFromWishlist(c *fiber.Ctx) error {
	session := middleware.SessionFromCtx(c)
	code := c.Params("code")

	if err := session.RemoveFromWishlist(code); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"code":    code,
		"removed": true,
	})
}
