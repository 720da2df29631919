package uploads

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cakeshop/cakeshop/internal/httperr"
)

const (
	imageKeyPrefix = "cakeshop"
	presignTTL     = 15 * time.Minute
)

// Handler exposes image upload endpoints.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// UploadImage accepts a single multipart image under the "image" field and
// stores it under a fresh key.
func (h *Handler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return httperr.Validation("Please provide an image file")
	}
	if !IsImage(file.Header.Get(fiber.HeaderContentType)) {
		return httperr.Validation("Only image files are allowed")
	}
	if file.Size > MaxImageSize {
		return httperr.Validation(fmt.Sprintf("Image must be smaller than %d bytes", MaxImageSize))
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	key := RandomKey(imageKeyPrefix)
	url, err := h.store.Upload(c.UserContext(), key, file.Header.Get(fiber.HeaderContentType), src)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"key": key, "url": url},
	})
}

// DeleteImage removes a stored image by its object key.
func (h *Handler) DeleteImage(c *fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return httperr.Validation("Please provide an image key")
	}
	if err := h.store.Delete(c.UserContext(), key); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httperr.NotFound(fmt.Sprintf("Image not found with key of %s", key))
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{}})
}

// GetImage returns a time-limited retrieval URL for a stored image.
func (h *Handler) GetImage(c *fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return httperr.Validation("Please provide an image key")
	}
	url, err := h.store.PresignGet(c.UserContext(), key, presignTTL)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httperr.NotFound(fmt.Sprintf("Image not found with key of %s", key))
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"url": url}})
}
