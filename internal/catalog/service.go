package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cakeshop/cakeshop/internal/httperr"
)

// Service implements catalog operations over a repository with an optional
// list cache in front of it.
type Service struct {
	repo  Repository
	cache *ListCache
}

// NewService creates a new catalog service.
func NewService(repo Repository, cache *ListCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// CreateInput carries the fields accepted on product creation and update.
type CreateInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Images      []string
	Ingredients []string
	Allergens   []string
}

// List returns all products, preferring the cached listing.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	if products, ok := s.cache.Get(ctx); ok {
		return products, nil
	}
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, products)
	return products, nil
}

// Get fetches a single product.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, httperr.NotFound(fmt.Sprintf("Product not found with id of %s", id))
		}
		return Product{}, err
	}
	return p, nil
}

// Create validates and stores a new product.
func (s *Service) Create(ctx context.Context, in CreateInput) (Product, error) {
	now := time.Now().UTC()
	p := Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Images:      in.Images,
		Ingredients: in.Ingredients,
		Allergens:   in.Allergens,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if msgs := p.Validate(); len(msgs) > 0 {
		return Product{}, httperr.Validation(strings.Join(msgs, ", "))
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Product{}, err
	}
	s.cache.Invalidate(ctx)
	return p, nil
}

// UpdateInput carries the fields that may change on update. Nil slices and
// nil pointers leave the stored value untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	IsAvailable *bool
	// KeepImages restricts the stored images to the listed URLs.
	KeepImages []string
	// AddImages appends freshly uploaded image URLs.
	AddImages   []string
	Ingredients []string
	Allergens   []string
}

// Update applies a partial update to an existing product.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
	if in.KeepImages != nil {
		p.Images = intersect(p.Images, in.KeepImages)
	}
	if len(in.AddImages) > 0 {
		p.Images = append(p.Images, in.AddImages...)
	}
	if in.Ingredients != nil {
		p.Ingredients = in.Ingredients
	}
	if in.Allergens != nil {
		p.Allergens = in.Allergens
	}
	p.UpdatedAt = time.Now().UTC()

	if msgs := p.Validate(); len(msgs) > 0 {
		return Product{}, httperr.Validation(strings.Join(msgs, ", "))
	}
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, httperr.NotFound(fmt.Sprintf("Product not found with id of %s", id))
		}
		return Product{}, err
	}
	s.cache.Invalidate(ctx)
	return p, nil
}

// Delete removes a product and returns the removed record.
func (s *Service) Delete(ctx context.Context, id string) (Product, error) {
	p, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, httperr.NotFound(fmt.Sprintf("Product not found with id of %s", id))
		}
		return Product{}, err
	}
	s.cache.Invalidate(ctx)
	return p, nil
}

func intersect(stored, keep []string) []string {
	out := []string{}
	for _, img := range stored {
		for _, k := range keep {
			if img == k {
				out = append(out, img)
				break
			}
		}
	}
	return out
}
