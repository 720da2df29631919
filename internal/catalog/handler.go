package catalog

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cakeshop/cakeshop/internal/httperr"
	"github.com/cakeshop/cakeshop/internal/uploads"
)

const (
	maxImagesPerProduct = 5
	imageKeyPrefix      = "cakeshop"
)

// Handler exposes product CRUD endpoints. Mutations accept either JSON or
// multipart bodies; multipart image files are forwarded to the image store.
type Handler struct {
	svc   *Service
	store uploads.Store
}

func NewHandler(svc *Service, store uploads.Store) *Handler {
	return &Handler{svc: svc, store: store}
}

// List returns every product.
func (h *Handler) List(c *fiber.Ctx) error {
	products, err := h.svc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(products),
		"data":    products,
	})
}

// Get returns a single product.
func (h *Handler) Get(c *fiber.Ctx) error {
	p, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": p})
}

type productRequest struct {
	Name        string   `json:"name" form:"name"`
	Description string   `json:"description" form:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category" form:"category"`
	Images      []string `json:"images"`
	Ingredients []string `json:"ingredients"`
	Allergens   []string `json:"allergens"`
}

// Create stores a new product, uploading any attached images first.
func (h *Handler) Create(c *fiber.Ctx) error {
	req, files, err := h.parseProductBody(c)
	if err != nil {
		return err
	}

	imageURLs, err := h.uploadAll(c, files)
	if err != nil {
		return err
	}

	p, err := h.svc.Create(c.UserContext(), CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      append(req.Images, imageURLs...),
		Ingredients: req.Ingredients,
		Allergens:   req.Allergens,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": p})
}

// Update applies a partial update. An "images" field lists the stored image
// URLs to keep; attached files are uploaded and appended.
func (h *Handler) Update(c *fiber.Ctx) error {
	in := UpdateInput{}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		if v, ok := firstValue(form, "name"); ok {
			in.Name = &v
		}
		if v, ok := firstValue(form, "description"); ok {
			in.Description = &v
		}
		if v, ok := firstValue(form, "price"); ok {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return httperr.Validation("Please provide a valid price")
			}
			in.Price = &price
		}
		if v, ok := firstValue(form, "category"); ok {
			in.Category = &v
		}
		if v, ok := firstValue(form, "isAvailable"); ok {
			avail := v == "true"
			in.IsAvailable = &avail
		}
		if v, ok := firstValue(form, "images"); ok {
			keep, err := parseStringList(v)
			if err != nil {
				return httperr.Validation("Please provide images as a JSON array")
			}
			in.KeepImages = keep
		}
		if v, ok := firstValue(form, "ingredients"); ok {
			list, err := parseStringList(v)
			if err != nil {
				return httperr.Validation("Please provide ingredients as a JSON array")
			}
			in.Ingredients = list
		}
		if v, ok := firstValue(form, "allergens"); ok {
			list, err := parseStringList(v)
			if err != nil {
				return httperr.Validation("Please provide allergens as a JSON array")
			}
			in.Allergens = list
		}
		added, err := h.uploadAll(c, form.File["images"])
		if err != nil {
			return err
		}
		in.AddImages = added
	} else {
		var req struct {
			Name        *string  `json:"name"`
			Description *string  `json:"description"`
			Price       *float64 `json:"price"`
			Category    *string  `json:"category"`
			IsAvailable *bool    `json:"isAvailable"`
			Images      []string `json:"images"`
			Ingredients []string `json:"ingredients"`
			Allergens   []string `json:"allergens"`
		}
		if err := c.BodyParser(&req); err != nil {
			return httperr.Validation("Please provide a valid product payload")
		}
		in.Name = req.Name
		in.Description = req.Description
		in.Price = req.Price
		in.Category = req.Category
		in.IsAvailable = req.IsAvailable
		in.KeepImages = req.Images
		in.Ingredients = req.Ingredients
		in.Allergens = req.Allergens
	}

	p, err := h.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": p})
}

// Delete removes a product.
func (h *Handler) Delete(c *fiber.Ctx) error {
	p, err := h.svc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"product": p}})
}

func (h *Handler) parseProductBody(c *fiber.Ctx) (productRequest, []*multipart.FileHeader, error) {
	var req productRequest

	form, err := c.MultipartForm()
	if err != nil || form == nil {
		if err := c.BodyParser(&req); err != nil {
			return productRequest{}, nil, httperr.Validation("Please provide a valid product payload")
		}
		return req, nil, nil
	}

	req.Name, _ = firstValue(form, "name")
	req.Description, _ = firstValue(form, "description")
	req.Category, _ = firstValue(form, "category")
	if v, ok := firstValue(form, "price"); ok {
		req.Price, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return productRequest{}, nil, httperr.Validation("Please provide a valid price")
		}
	}
	if v, ok := firstValue(form, "ingredients"); ok {
		req.Ingredients, err = parseStringList(v)
		if err != nil {
			return productRequest{}, nil, httperr.Validation("Please provide ingredients as a JSON array")
		}
	}
	if v, ok := firstValue(form, "allergens"); ok {
		req.Allergens, err = parseStringList(v)
		if err != nil {
			return productRequest{}, nil, httperr.Validation("Please provide allergens as a JSON array")
		}
	}
	return req, form.File["images"], nil
}

func (h *Handler) uploadAll(c *fiber.Ctx, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > maxImagesPerProduct {
		files = files[:maxImagesPerProduct]
	}
	urls := make([]string, 0, len(files))
	for _, file := range files {
		contentType := file.Header.Get(fiber.HeaderContentType)
		if !uploads.IsImage(contentType) {
			return nil, httperr.Validation("Only image files are allowed")
		}
		if file.Size > uploads.MaxImageSize {
			return nil, httperr.Validation("Image files must be smaller than 5MB")
		}
		src, err := file.Open()
		if err != nil {
			return nil, err
		}
		url, err := h.store.Upload(c.UserContext(), uploads.RandomKey(imageKeyPrefix), contentType, src)
		src.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func firstValue(form *multipart.Form, key string) (string, bool) {
	if vals := form.Value[key]; len(vals) > 0 {
		return vals[0], true
	}
	return "", false
}

func parseStringList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	return list, nil
}
