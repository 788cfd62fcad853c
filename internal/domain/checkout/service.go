// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// Service handles checkout submission. Payment is simulated: the card
// fields are validated for shape only and never leave this process.
type Service struct {
	cartEngine *cart.Engine
	provider   catalog.Provider
	logger     logrus.FieldLogger
}

// NewService creates a new checkout service
func NewService(cartEngine *cart.Engine, provider catalog.Provider, logger logrus.FieldLogger) *Service {
	return &Service{
		cartEngine: cartEngine,
		provider:   provider,
		logger:     logger,
	}
}

// BillingInfo is the billing address block of the checkout form
type BillingInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// PaymentInfo is the card block of the checkout form
type PaymentInfo struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

// SubmitRequest is a checkout form submission
type SubmitRequest struct {
	Billing BillingInfo `json:"billing"`
	Payment PaymentInfo `json:"payment"`
}

// Confirmation is the simulated order confirmation
type Confirmation struct {
	OrderID   string    `json:"order_id"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"item_count"`
	PlacedAt  time.Time `json:"placed_at"`
}

// ValidationError reports a rejected checkout field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	postalCodePattern = regexp.MustCompile(`^\d{5,6}$`)
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3}$`)
)

// Validate checks the form fields, reporting the first failure with the
// field that caused it
func (r *SubmitRequest) Validate() error {
	billingFields := []struct {
		field, value string
	}{
		{"name", r.Billing.Name},
		{"email", r.Billing.Email},
		{"address", r.Billing.Address},
		{"city", r.Billing.City},
		{"postal_code", r.Billing.PostalCode},
	}
	for _, f := range billingFields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Message: "field is required"}
		}
	}

	if !emailPattern.MatchString(r.Billing.Email) {
		return &ValidationError{Field: "email", Message: "invalid email address"}
	}
	if !postalCodePattern.MatchString(r.Billing.PostalCode) {
		return &ValidationError{Field: "postal_code", Message: "postal code must be 5 or 6 digits"}
	}

	paymentFields := []struct {
		field, value string
	}{
		{"card_number", r.Payment.CardNumber},
		{"expiry_date", r.Payment.ExpiryDate},
		{"cvv", r.Payment.CVV},
	}
	for _, f := range paymentFields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Message: "field is required"}
		}
	}

	if !cardNumberPattern.MatchString(r.Payment.CardNumber) {
		return &ValidationError{Field: "card_number", Message: "card number must be a valid 16-digit number"}
	}
	if !expiryPattern.MatchString(r.Payment.ExpiryDate) {
		return &ValidationError{Field: "expiry_date", Message: "expiry date must be in MM/YY format"}
	}
	if !cvvPattern.MatchString(r.Payment.CVV) {
		return &ValidationError{Field: "cvv", Message: "cvv must be a valid 3-digit number"}
	}

	return nil
}

// Submit validates the form, totals the session's cart against a fresh
// catalog snapshot, simulates payment success, and clears the cart.
// A catalog fetch failure propagates to the caller and leaves the cart
// intact; nothing is retried.
func (s *Service) Submit(ctx context.Context, sessionID string, req *SubmitRequest) (*Confirmation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lines := s.cartEngine.Hydrate(ctx, sessionID).Lines
	if len(lines) == 0 {
		return nil, &ValidationError{Field: "cart", Message: "cart is empty"}
	}

	products, err := s.provider.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog for order total: %w", err)
	}
	snapshot := catalog.NewSnapshot(products)

	itemCount := 0
	for _, line := range lines {
		itemCount += line.Quantity
	}

	confirmation := &Confirmation{
		OrderID:   uuid.New().String(),
		Total:     cart.ComputeTotal(lines, snapshot),
		ItemCount: itemCount,
		PlacedAt:  time.Now().UTC(),
	}

	// Payment gateway interaction is out of scope; the order succeeds
	// unconditionally once validation passes.
	s.cartEngine.Clear(ctx, sessionID)

	s.logger.WithFields(logrus.Fields{
		"order_id":   confirmation.OrderID,
		"item_count": confirmation.ItemCount,
		"total":      confirmation.Total,
	}).Info("Simulated order placed")

	return confirmation, nil
}
