package cart

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// memStore is an in-memory Store with injectable failures
type memStore struct {
	blobs  map[string][]byte
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{blobs: map[string][]byte{}}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	blob, ok := s.blobs[key]
	return blob, ok, nil
}

func (s *memStore) Set(ctx context.Context, key string, blob []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.blobs[key] = blob
	return nil
}

func (s *memStore) Remove(ctx context.Context, key string) error {
	delete(s.blobs, key)
	return nil
}

func newTestEngine() (*Engine, *memStore) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := newMemStore()
	return NewEngine(store, logger), store
}

const session = "test-session"

func TestAddItemValidation(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	tests := []struct {
		name      string
		productID string
		color     string
		size      string
		quantity  int
		wantField string
	}{
		{"missing product id", "", "red", "M", 1, "product_id"},
		{"missing color", "1", "", "M", 1, "color"},
		{"missing size", "1", "red", "", 1, "size"},
		{"zero quantity", "1", "red", "M", 0, "quantity"},
		{"negative quantity", "1", "red", "M", -3, "quantity"},
		{"quantity above cap", "1", "red", "M", 11, "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.AddItem(ctx, session, tt.productID, tt.color, tt.size, tt.quantity)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, validationErr.Field)
			}

			// Rejected operations must not mutate state
			if lines := engine.Hydrate(ctx, session).Lines; len(lines) != 0 {
				t.Errorf("cart mutated by rejected add: %v", lines)
			}
		})
	}
}

func TestAddItemMergesSameVariant(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	if _, err := engine.AddItem(ctx, session, "1", "red", "M", 3); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	lines, err := engine.AddItem(ctx, session, "1", "red", "M", 2)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", lines[0].Quantity)
	}
	if lines[0].ProductID != "1" || lines[0].Color != "red" || lines[0].Size != "M" {
		t.Errorf("unexpected merged line: %+v", lines[0])
	}
}

func TestAddItemMergeMayExceedCap(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	engine.AddItem(ctx, session, "1", "red", "M", 10)
	lines, err := engine.AddItem(ctx, session, "1", "red", "M", 10)
	if err != nil {
		t.Fatalf("merge of two valid adds failed: %v", err)
	}

	// The per-add bound does not clamp the accumulated quantity
	if lines[0].Quantity != 20 {
		t.Errorf("expected accumulated quantity 20, got %d", lines[0].Quantity)
	}
}

func TestAddItemDifferentVariantsKeepSeparateLines(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	engine.AddItem(ctx, session, "1", "red", "M", 1)
	engine.AddItem(ctx, session, "1", "blue", "M", 1)
	lines, _ := engine.AddItem(ctx, session, "1", "red", "L", 1)

	if len(lines) != 3 {
		t.Fatalf("expected 3 distinct variant lines, got %d", len(lines))
	}
	// Insertion order is preserved
	if lines[0].Color != "red" || lines[0].Size != "M" {
		t.Errorf("unexpected first line: %+v", lines[0])
	}
	if lines[2].Color != "red" || lines[2].Size != "L" {
		t.Errorf("unexpected last line: %+v", lines[2])
	}
}

func TestAddThenRemoveYieldsEmptyCart(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	engine.AddItem(ctx, session, "1", "red", "M", 4)
	lines := engine.RemoveItem(ctx, session, "1")

	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %v", lines)
	}
	if stored := engine.Hydrate(ctx, session).Lines; len(stored) != 0 {
		t.Errorf("expected persisted cart empty, got %v", stored)
	}
}

func TestRemoveItemDropsAllVariantsOfProduct(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	engine.AddItem(ctx, session, "1", "red", "M", 1)
	engine.AddItem(ctx, session, "1", "blue", "L", 2)
	engine.AddItem(ctx, session, "2", "black", "S", 1)

	lines := engine.RemoveItem(ctx, session, "1")

	if len(lines) != 1 {
		t.Fatalf("expected only product 2 to remain, got %v", lines)
	}
	if lines[0].ProductID != "2" {
		t.Errorf("expected product 2, got %s", lines[0].ProductID)
	}
}

func TestRemoveUnknownProductIsNoop(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	engine.AddItem(ctx, session, "1", "red", "M", 1)
	lines := engine.RemoveItem(ctx, session, "does-not-exist")

	if len(lines) != 1 {
		t.Errorf("expected cart unchanged, got %v", lines)
	}
}

func TestHydrateEmptyWhenNothingStored(t *testing.T) {
	engine, _ := newTestEngine()

	result := engine.Hydrate(context.Background(), session)

	if result.Source != SourceNone {
		t.Errorf("expected SourceNone, got %s", result.Source)
	}
	if len(result.Lines) != 0 {
		t.Errorf("expected empty cart, got %v", result.Lines)
	}
}

func TestHydrateCorruptBlobRecoversToEmpty(t *testing.T) {
	engine, store := newTestEngine()
	store.blobs[CartKey(session)] = []byte("not-json")

	result := engine.Hydrate(context.Background(), session)

	if result.Source != SourceCorrupt {
		t.Errorf("expected SourceCorrupt, got %s", result.Source)
	}
	if len(result.Lines) != 0 {
		t.Errorf("expected empty cart after corrupt blob, got %v", result.Lines)
	}
}

func TestHydrateStoreErrorRecoversToEmpty(t *testing.T) {
	engine, store := newTestEngine()
	store.getErr = errors.New("connection refused")

	result := engine.Hydrate(context.Background(), session)

	if result.Source != SourceUnavailable {
		t.Errorf("expected SourceUnavailable, got %s", result.Source)
	}
	if len(result.Lines) != 0 {
		t.Errorf("expected empty cart when store is down, got %v", result.Lines)
	}
}

func TestHydrateRoundTrip(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	engine.AddItem(ctx, session, "1", "red", "M", 2)
	engine.AddItem(ctx, session, "2", "blue", "L", 1)

	result := engine.Hydrate(ctx, session)

	if result.Source != SourceStored {
		t.Fatalf("expected SourceStored, got %s", result.Source)
	}
	if len(result.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(result.Lines))
	}
	if result.Lines[0].ProductID != "1" || result.Lines[1].ProductID != "2" {
		t.Errorf("insertion order lost: %v", result.Lines)
	}
}

func TestAddItemSurvivesWriteFailure(t *testing.T) {
	engine, store := newTestEngine()
	store.setErr = errors.New("connection refused")

	lines, err := engine.AddItem(context.Background(), session, "1", "red", "M", 1)
	if err != nil {
		t.Fatalf("write failure must not surface to caller, got %v", err)
	}
	if len(lines) != 1 {
		t.Errorf("expected the added line in the response, got %v", lines)
	}
}

func TestClearRemovesBlob(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	engine.AddItem(ctx, session, "1", "red", "M", 1)
	engine.Clear(ctx, session)

	if _, ok := store.blobs[CartKey(session)]; ok {
		t.Error("expected stored blob removed after clear")
	}
	if lines := engine.Hydrate(ctx, session).Lines; len(lines) != 0 {
		t.Errorf("expected empty cart after clear, got %v", lines)
	}
}

func TestComputeTotalSkipsUnresolvableLines(t *testing.T) {
	snapshot := catalog.NewSnapshot([]catalog.Product{
		{ID: "1", Price: 20},
		{ID: "2", Price: 999},
	})

	lines := []Line{
		{ProductID: "1", Color: "red", Size: "M", Quantity: 3},
		{ProductID: "gone", Color: "blue", Size: "L", Quantity: 5},
		{ProductID: "2", Color: "blue", Size: "L", Quantity: 1},
	}

	total := ComputeTotal(lines, snapshot)

	want := 3*20.0 + 999.0
	if total != want {
		t.Errorf("expected total %v, got %v", want, total)
	}

	// Same total as if the unresolvable line were absent
	without := ComputeTotal([]Line{lines[0], lines[2]}, snapshot)
	if total != without {
		t.Errorf("unresolvable line changed the total: %v != %v", total, without)
	}
}

func TestComputeTotalEmptyCart(t *testing.T) {
	snapshot := catalog.NewSnapshot([]catalog.Product{{ID: "1", Price: 20}})

	if total := ComputeTotal(nil, snapshot); total != 0 {
		t.Errorf("expected zero total for empty cart, got %v", total)
	}
}
