package checkout

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// memStore is a minimal in-memory cart store
type memStore struct {
	blobs map[string][]byte
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	blob, ok := s.blobs[key]
	return blob, ok, nil
}

func (s *memStore) Set(ctx context.Context, key string, blob []byte) error {
	s.blobs[key] = blob
	return nil
}

func (s *memStore) Remove(ctx context.Context, key string) error {
	delete(s.blobs, key)
	return nil
}

// fakeProvider serves a fixed catalog or a fixed error
type fakeProvider struct {
	products []catalog.Product
	err      error
}

func (p *fakeProvider) Products(ctx context.Context) ([]catalog.Product, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.products, nil
}

func (p *fakeProvider) Product(ctx context.Context, id string) (*catalog.Product, error) {
	for i := range p.products {
		if p.products[i].ID == id {
			return &p.products[i], nil
		}
	}
	return nil, catalog.ErrNotFound
}

func newTestService(provider catalog.Provider) (*Service, *cart.Engine) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	engine := cart.NewEngine(&memStore{blobs: map[string][]byte{}}, logger)
	return NewService(engine, provider, logger), engine
}

func validRequest() *SubmitRequest {
	return &SubmitRequest{
		Billing: BillingInfo{
			Name:       "Jane Doe",
			Email:      "jane@example.com",
			Address:    "1 Main St",
			City:       "Springfield",
			PostalCode: "12345",
		},
		Payment: PaymentInfo{
			CardNumber: "4111111111111111",
			ExpiryDate: "12/27",
			CVV:        "123",
		},
	}
}

func TestValidateFieldRules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SubmitRequest)
		wantField string
	}{
		{"missing name", func(r *SubmitRequest) { r.Billing.Name = "  " }, "name"},
		{"missing email", func(r *SubmitRequest) { r.Billing.Email = "" }, "email"},
		{"missing address", func(r *SubmitRequest) { r.Billing.Address = "" }, "address"},
		{"missing city", func(r *SubmitRequest) { r.Billing.City = "" }, "city"},
		{"missing postal code", func(r *SubmitRequest) { r.Billing.PostalCode = "" }, "postal_code"},
		{"malformed email", func(r *SubmitRequest) { r.Billing.Email = "jane@nodot" }, "email"},
		{"postal code too short", func(r *SubmitRequest) { r.Billing.PostalCode = "1234" }, "postal_code"},
		{"postal code too long", func(r *SubmitRequest) { r.Billing.PostalCode = "1234567" }, "postal_code"},
		{"missing card number", func(r *SubmitRequest) { r.Payment.CardNumber = "" }, "card_number"},
		{"short card number", func(r *SubmitRequest) { r.Payment.CardNumber = "411111111111111" }, "card_number"},
		{"card number with letters", func(r *SubmitRequest) { r.Payment.CardNumber = "4111x11111111111" }, "card_number"},
		{"expiry without slash", func(r *SubmitRequest) { r.Payment.ExpiryDate = "1227" }, "expiry_date"},
		{"missing cvv", func(r *SubmitRequest) { r.Payment.CVV = "" }, "cvv"},
		{"cvv too long", func(r *SubmitRequest) { r.Payment.CVV = "1234" }, "cvv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := req.Validate()

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, validationErr.Field)
			}
		})
	}
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	service, _ := newTestService(&fakeProvider{})

	_, err := service.Submit(context.Background(), "s1", validRequest())

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for empty cart, got %v", err)
	}
	if validationErr.Field != "cart" {
		t.Errorf("expected cart field, got %q", validationErr.Field)
	}
}

func TestSubmitPlacesOrderAndClearsCart(t *testing.T) {
	provider := &fakeProvider{products: []catalog.Product{
		{ID: "1", Name: "Classic Tee", Price: 20, Category: "T-Shirts"},
		{ID: "2", Name: "Designer Jeans", Price: 999, Category: "Jeans"},
	}}
	service, engine := newTestService(provider)
	ctx := context.Background()

	engine.AddItem(ctx, "s1", "1", "red", "M", 3)
	engine.AddItem(ctx, "s1", "2", "blue", "L", 1)

	confirmation, err := service.Submit(ctx, "s1", validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if confirmation.OrderID == "" {
		t.Error("expected a generated order id")
	}
	if want := 3*20.0 + 999.0; confirmation.Total != want {
		t.Errorf("expected total %v, got %v", want, confirmation.Total)
	}
	if confirmation.ItemCount != 4 {
		t.Errorf("expected item count 4, got %d", confirmation.ItemCount)
	}

	if lines := engine.Hydrate(ctx, "s1").Lines; len(lines) != 0 {
		t.Errorf("expected cart cleared after checkout, got %v", lines)
	}
}

func TestSubmitUnresolvableLineContributesZero(t *testing.T) {
	provider := &fakeProvider{products: []catalog.Product{
		{ID: "1", Name: "Classic Tee", Price: 20},
	}}
	service, engine := newTestService(provider)
	ctx := context.Background()

	engine.AddItem(ctx, "s1", "1", "red", "M", 2)
	engine.AddItem(ctx, "s1", "withdrawn", "red", "M", 5)

	confirmation, err := service.Submit(ctx, "s1", validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmation.Total != 40 {
		t.Errorf("expected total 40 from the resolvable line only, got %v", confirmation.Total)
	}
}

func TestSubmitCatalogFailureKeepsCart(t *testing.T) {
	provider := &fakeProvider{err: catalog.ErrUnavailable}
	service, engine := newTestService(provider)
	ctx := context.Background()

	engine.AddItem(ctx, "s1", "1", "red", "M", 1)

	_, err := service.Submit(ctx, "s1", validRequest())
	if !errors.Is(err, catalog.ErrUnavailable) {
		t.Fatalf("expected catalog error to propagate, got %v", err)
	}

	if lines := engine.Hydrate(ctx, "s1").Lines; len(lines) != 1 {
		t.Errorf("expected cart intact after failed checkout, got %v", lines)
	}
}

func TestSubmitRejectsInvalidFormBeforeTouchingCart(t *testing.T) {
	service, engine := newTestService(&fakeProvider{products: []catalog.Product{{ID: "1", Price: 20}}})
	ctx := context.Background()

	engine.AddItem(ctx, "s1", "1", "red", "M", 1)

	req := validRequest()
	req.Payment.CVV = "12"

	if _, err := service.Submit(ctx, "s1", req); err == nil {
		t.Fatal("expected validation failure")
	}

	if lines := engine.Hydrate(ctx, "s1").Lines; len(lines) != 1 {
		t.Errorf("expected cart untouched after rejected form, got %v", lines)
	}
}
