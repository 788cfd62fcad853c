// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// Engine owns the session cart: it applies add/remove operations,
// recomputes totals against a catalog snapshot, and serializes to and
// from the backing Store after every mutation.
//
// Storage failures never escape the engine. A cart that cannot be read
// degrades to empty, and a cart that cannot be written stays correct in
// the returned lines even though the write was lost; both conditions
// are logged. Only validation failures are reported to callers.
type Engine struct {
	store  Store
	logger logrus.FieldLogger
}

// NewEngine creates a cart engine over the given store
func NewEngine(store Store, logger logrus.FieldLogger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
	}
}

// Hydrate loads the session's cart from the store. It never fails:
// a missing, unreadable, or corrupted blob degrades to an empty cart,
// with the condition recorded in the result and logged. Corrupted
// client state must not block the shopping flow.
func (e *Engine) Hydrate(ctx context.Context, sessionID string) HydrateResult {
	blob, ok, err := e.store.Get(ctx, CartKey(sessionID))
	if err != nil {
		e.logger.WithError(err).WithField("session_id", sessionID).
			Warn("Cart store unreachable, serving empty cart")
		return HydrateResult{Lines: []Line{}, Source: SourceUnavailable}
	}
	if !ok {
		return HydrateResult{Lines: []Line{}, Source: SourceNone}
	}

	var lines []Line
	if err := json.Unmarshal(blob, &lines); err != nil {
		e.logger.WithError(err).WithField("session_id", sessionID).
			Warn("Discarding corrupt cart blob, serving empty cart")
		return HydrateResult{Lines: []Line{}, Source: SourceCorrupt}
	}
	if lines == nil {
		lines = []Line{}
	}

	return HydrateResult{Lines: lines, Source: SourceStored}
}

// AddItem validates and adds a line to the session's cart. An addition
// with the same (product, color, size) as an existing line merges into
// it, accumulating quantity; otherwise the line is appended, preserving
// insertion order. The 1..10 quantity bound applies to each addition,
// not to the merged result: repeated valid adds may accumulate past 10,
// matching the storefront's quantity control which caps a single pick
// at 10 but never re-checks on merge.
func (e *Engine) AddItem(ctx context.Context, sessionID, productID, color, size string, quantity int) ([]Line, error) {
	if productID == "" {
		return nil, &ValidationError{Field: "product_id", Message: "product id is required"}
	}
	if color == "" {
		return nil, &ValidationError{Field: "color", Message: "color is required"}
	}
	if size == "" {
		return nil, &ValidationError{Field: "size", Message: "size is required"}
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return nil, &ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity must be between %d and %d", MinQuantity, MaxQuantity),
		}
	}

	lines := e.Hydrate(ctx, sessionID).Lines

	added := Line{ProductID: productID, Color: color, Size: size, Quantity: quantity}
	merged := false
	for i := range lines {
		if lines[i].SameVariant(added) {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, added)
	}

	e.persist(ctx, sessionID, lines)
	return lines, nil
}

// RemoveItem removes every line referencing the given product,
// regardless of variant. Variant-level removal is deliberately not
// offered: the storefront removes a product from the cart wholesale.
func (e *Engine) RemoveItem(ctx context.Context, sessionID, productID string) []Line {
	lines := e.Hydrate(ctx, sessionID).Lines

	kept := lines[:0]
	for _, line := range lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}

	e.persist(ctx, sessionID, kept)
	return kept
}

// Clear empties the cart and removes the persisted blob
func (e *Engine) Clear(ctx context.Context, sessionID string) {
	if err := e.store.Remove(ctx, CartKey(sessionID)); err != nil {
		e.logger.WithError(err).WithField("session_id", sessionID).
			Warn("Failed to remove cart blob")
	}
}

// ComputeTotal sums quantity times price over lines whose product still
// resolves in the snapshot. Lines referencing products that have left
// the catalog contribute zero; catalog drift between add and view is
// tolerated, never an error.
func ComputeTotal(lines []Line, snapshot *catalog.Snapshot) float64 {
	var total float64
	for _, line := range lines {
		product, ok := snapshot.Lookup(line.ProductID)
		if !ok {
			continue
		}
		total += float64(line.Quantity) * product.Price
	}
	return total
}

func (e *Engine) persist(ctx context.Context, sessionID string, lines []Line) {
	blob, err := json.Marshal(lines)
	if err != nil {
		e.logger.WithError(err).WithField("session_id", sessionID).
			Error("Failed to serialize cart")
		return
	}
	if err := e.store.Set(ctx, CartKey(sessionID), blob); err != nil {
		e.logger.WithError(err).WithField("session_id", sessionID).
			Warn("Failed to persist cart, mutation kept in response only")
	}
}
