// internal/domain/catalog/entity.go
package catalog

import (
	"errors"
	"fmt"
)

// Product represents a catalog product as served by the CMS gateway
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	Description     string   `json:"description,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	Category        string   `json:"category"`
	DiscountPercent float64  `json:"discount_percent,omitempty"`
	IsNew           bool     `json:"is_new,omitempty"`
	Colors          []string `json:"colors"`
	Sizes           []string `json:"sizes"`
}

// ErrNotFound is returned when a product id does not exist in the catalog
var ErrNotFound = errors.New("product not found")

// ErrUnavailable is returned when the catalog gateway cannot be reached
// or responds with a non-success status
var ErrUnavailable = errors.New("catalog unavailable")

// Validate checks that a decoded product record is usable by cart and
// filter logic. Records coming off the wire must pass this before they
// are handed to any caller.
func (p *Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product record missing id")
	}
	if p.Name == "" {
		return fmt.Errorf("product %s missing name", p.ID)
	}
	if p.Price < 0 {
		return fmt.Errorf("product %s has negative price %v", p.ID, p.Price)
	}
	return nil
}

// HasColor reports whether the product is offered in the given color
func (p *Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// HasSize reports whether the product is offered in the given size
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// Snapshot is a point-in-time view of the catalog, indexed by product id
type Snapshot struct {
	products []Product
	byID     map[string]*Product
}

// NewSnapshot builds a snapshot from a product listing. Input order is
// preserved; later duplicates of an id are ignored.
func NewSnapshot(products []Product) *Snapshot {
	s := &Snapshot{
		products: products,
		byID:     make(map[string]*Product, len(products)),
	}
	for i := range products {
		if _, ok := s.byID[products[i].ID]; !ok {
			s.byID[products[i].ID] = &products[i]
		}
	}
	return s
}

// Lookup resolves a product id against the snapshot
func (s *Snapshot) Lookup(id string) (*Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Products returns the snapshot's product listing in catalog order
func (s *Snapshot) Products() []Product {
	return s.products
}

// Len returns the number of products in the snapshot
func (s *Snapshot) Len() int {
	return len(s.products)
}
