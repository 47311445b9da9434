package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
)

// respondError maps domain errors to HTTP responses. Workflow conditions
// (empty selection, wishlist toggles, sold out) are surfaced as warnings
// the storefront shows to the visitor; usage errors reject the request.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrUnknownProduct):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrInvalidSize), errors.Is(err, models.ErrInvalidPage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrEmptySelection):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"warning": "Select at least one size before adding to the wishlist",
		})
	case errors.Is(err, models.ErrAlreadyInWishlist):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"warning": "This product is already in your wishlist",
		})
	case errors.Is(err, models.ErrNotInWishlist):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"warning": "This product is not in your wishlist",
		})
	case errors.Is(err, models.ErrProductSoldOut):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"warning": "This product is sold out",
		})
	default:
		log.Printf("Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}
