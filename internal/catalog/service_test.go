package catalog

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cakeshop/cakeshop/internal/httperr"
	"github.com/cakeshop/cakeshop/internal/logging"
)

func validInput() CreateInput {
	return CreateInput{
		Name:        "Chocolate Cake",
		Description: "Rich chocolate sponge",
		Price:       24.5,
		Category:    "Cake",
		Images:      []string{"https://img.example.com/1.jpg"},
		Ingredients: []string{"flour", "cocoa"},
		Allergens:   []string{"gluten"},
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.IsAvailable {
		t.Fatalf("new products default to available")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Chocolate Cake" {
		t.Fatalf("unexpected name %q", got.Name)
	}
}

func TestCreateJoinsValidationMessages(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	_, err := svc.Create(context.Background(), CreateInput{Price: -1, Category: "Soup"})
	var appErr *httperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *httperr.Error, got %v", err)
	}
	if appErr.Type != httperr.TypeValidation || appErr.StatusCode != 400 {
		t.Fatalf("unexpected error %+v", appErr)
	}
	for _, want := range []string{"Please add a product name", "Please add a description", "Price cannot be negative", "Category must be one of"} {
		if !strings.Contains(appErr.Message, want) {
			t.Fatalf("message %q missing %q", appErr.Message, want)
		}
	}
	if !strings.Contains(appErr.Message, ", ") {
		t.Fatalf("messages should be comma separated: %q", appErr.Message)
	}
}

func TestGetUnknownProduct(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)

	_, err := svc.Get(context.Background(), "nope")
	var appErr *httperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *httperr.Error, got %v", err)
	}
	if appErr.StatusCode != 404 || appErr.Type != httperr.TypeNotFound {
		t.Fatalf("unexpected error %+v", appErr)
	}
	if appErr.Message != "Product not found with id of nope" {
		t.Fatalf("unexpected message %q", appErr.Message)
	}
}

func TestUpdateKeepsAndAppendsImages(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	in := validInput()
	in.Images = []string{"https://img.example.com/1.jpg", "https://img.example.com/2.jpg"}
	created, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, UpdateInput{
		KeepImages: []string{"https://img.example.com/2.jpg"},
		AddImages:  []string{"https://img.example.com/3.jpg"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := []string{"https://img.example.com/2.jpg", "https://img.example.com/3.jpg"}
	if len(updated.Images) != len(want) || updated.Images[0] != want[0] || updated.Images[1] != want[1] {
		t.Fatalf("unexpected images %v", updated.Images)
	}
}

// countingRepository counts List calls so cache behavior is observable.
type countingRepository struct {
	Repository
	lists atomic.Int64
}

func (r *countingRepository) List(ctx context.Context) ([]Product, error) {
	r.lists.Add(1)
	return r.Repository.List(ctx)
}

func newTestCache(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return client, func() {
		client.Close()
		mr.Close()
	}
}

func TestListUsesCache(t *testing.T) {
	client, cleanup := newTestCache(t)
	defer cleanup()

	repo := &countingRepository{Repository: NewMemoryRepository()}
	svc := NewService(repo, NewListCache(client, time.Minute, logging.Discard()))
	ctx := context.Background()

	if _, err := svc.Create(ctx, validInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		products, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
		if len(products) != 1 {
			t.Fatalf("list %d: expected 1 product, got %d", i, len(products))
		}
	}
	if got := repo.lists.Load(); got != 1 {
		t.Fatalf("expected a single repository read, got %d", got)
	}
}

func TestMutationInvalidatesCache(t *testing.T) {
	client, cleanup := newTestCache(t)
	defer cleanup()

	repo := &countingRepository{Repository: NewMemoryRepository()}
	svc := NewService(repo, NewListCache(client, time.Minute, logging.Discard()))
	ctx := context.Background()

	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := svc.Create(ctx, validInput()); err != nil {
		t.Fatalf("create: %v", err)
	}
	products, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("stale listing served after mutation: %v", products)
	}
}

func TestDeleteReturnsRemovedProduct(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	removed, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed.ID != created.ID {
		t.Fatalf("unexpected removed product %v", removed)
	}
	if _, err := svc.Get(ctx, created.ID); err == nil {
		t.Fatalf("product should be gone")
	}
}
