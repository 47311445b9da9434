package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
	"github.com/hivaasboutique/hivaas-catalogue/internal/services"
)

// ImageHandler serves product images through the caching image service.
type ImageHandler struct {
	imageService *services.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(imageService *services.ImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
	}
}

// RegisterRoutes registers the image route with the Fiber app.
func (h *ImageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/images/+", h.HandleGetImage)
}

// HandleGetImage serves the processed image for a reference. A failed
// fetch degrades to the placeholder rather than failing the render.
func (h *ImageHandler) HandleGetImage(c *fiber.Ctx) error {
	ref := c.Params("+")

	data, err := h.imageService.Get(ref)
	if err != nil {
		if errors.Is(err, models.ErrImageFetch) {
			log.Printf("Image fetch failed for %q, serving placeholder: %v", ref, err)
			placeholder := h.imageService.Placeholder()
			c.Set(fiber.HeaderContentType, http.DetectContentType(placeholder))
			return c.Status(fiber.StatusOK).Send(placeholder)
		}
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Status(fiber.StatusOK).Send(data)
}
