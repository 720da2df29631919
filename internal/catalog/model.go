package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Categories a product may belong to.
var Categories = []string{"Cake", "Pastry", "Cookie", "Bread", "Other"}

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// Product is a catalog listing with hosted image attachments.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Ingredients []string  `json:"ingredients"`
	Allergens   []string  `json:"allergens"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns every schema violation; callers join them into a single
// message for the response.
func (p Product) Validate() []string {
	var msgs []string
	if strings.TrimSpace(p.Name) == "" {
		msgs = append(msgs, "Please add a product name")
	} else if len(p.Name) > maxNameLength {
		msgs = append(msgs, fmt.Sprintf("Name cannot be more than %d characters", maxNameLength))
	}
	if p.Description == "" {
		msgs = append(msgs, "Please add a description")
	} else if len(p.Description) > maxDescriptionLength {
		msgs = append(msgs, fmt.Sprintf("Description cannot be more than %d characters", maxDescriptionLength))
	}
	if p.Price < 0 {
		msgs = append(msgs, "Price cannot be negative")
	}
	if p.Category == "" {
		msgs = append(msgs, "Please add a category")
	} else if !validCategory(p.Category) {
		msgs = append(msgs, fmt.Sprintf("Category must be one of %s", strings.Join(Categories, ", ")))
	}
	return msgs
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
