// internal/domain/catalog/filter.go
package catalog

// FilterSpec narrows a product listing for display. Empty string fields
// match everything; MaxPrice <= 0 means no price limit.
type FilterSpec struct {
	Category string  `form:"category" json:"category,omitempty"`
	Color    string  `form:"color" json:"color,omitempty"`
	Size     string  `form:"size" json:"size,omitempty"`
	MaxPrice float64 `form:"max_price" json:"max_price,omitempty"`
}

// Matches reports whether a single product satisfies the spec
func (f FilterSpec) Matches(p *Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Color != "" && !p.HasColor(f.Color) {
		return false
	}
	if f.Size != "" && !p.HasSize(f.Size) {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	return true
}

// Filter returns the products matching the spec, preserving input order.
// It never reorders and never mutates its input.
func Filter(products []Product, spec FilterSpec) []Product {
	matches := make([]Product, 0, len(products))
	for i := range products {
		if spec.Matches(&products[i]) {
			matches = append(matches, products[i])
		}
	}
	return matches
}

// Paginate slices matches into the requested page. totalPages is at
// least 1 so pagination controls render consistently over an empty
// result. The page number is not clamped here: out-of-range pages yield
// an empty slice, and callers that want clamping do it themselves.
func Paginate(matches []Product, pageSize, page int) (pageItems []Product, totalPages int) {
	if pageSize < 1 {
		return []Product{}, 1
	}

	totalPages = (len(matches) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if page < 1 || start >= len(matches) {
		return []Product{}, totalPages
	}

	end := start + pageSize
	if end > len(matches) {
		end = len(matches)
	}

	return matches[start:end], totalPages
}
