// internal/domain/cart/entity.go
package cart

import (
	"context"
	"fmt"
)

// Quantity bounds enforced when a line is added
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// Line represents one product+variant entry in the cart. ProductID is a
// weak reference: it is not checked against the catalog when stored and
// is resolved lazily when the cart is viewed.
type Line struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// SameVariant reports whether two lines share the (product, color, size)
// identity key that decides whether additions merge
func (l Line) SameVariant(other Line) bool {
	return l.ProductID == other.ProductID && l.Color == other.Color && l.Size == other.Size
}

// Store is the durable blob store backing the cart. One fixed key per
// session holds the whole cart as a JSON array of Line.
type Store interface {
	// Get returns the stored blob, or ok=false when nothing is stored
	Get(ctx context.Context, key string) (blob []byte, ok bool, err error)
	Set(ctx context.Context, key string, blob []byte) error
	Remove(ctx context.Context, key string) error
}

// Source records where a hydrated cart came from, so callers and tests
// can tell "empty because nothing stored" from "empty because the blob
// was corrupt" even though both degrade the same way
type Source string

const (
	// SourceNone means no blob was stored for the session
	SourceNone Source = "none"
	// SourceStored means the cart was read back from the store
	SourceStored Source = "stored"
	// SourceCorrupt means the stored blob did not parse and was discarded
	SourceCorrupt Source = "corrupt"
	// SourceUnavailable means the store itself could not be read
	SourceUnavailable Source = "unavailable"
)

// HydrateResult is the outcome of loading a session's cart. Lines is
// always usable; Source says how it was obtained.
type HydrateResult struct {
	Lines  []Line
	Source Source
}

// ValidationError reports a rejected cart operation with the field that
// caused it. No state changes when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CartKey builds the store key for a session's cart
func CartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}
