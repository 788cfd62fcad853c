// internal/domain/catalog/provider.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// Provider supplies read-only access to the product catalog
type Provider interface {
	// Products returns the full catalog snapshot. The gateway exposes no
	// server-side filtering; narrowing happens in Filter.
	Products(ctx context.Context) ([]Product, error)

	// Product returns a single product or ErrNotFound
	Product(ctx context.Context, id string) (*Product, error)
}

// HTTPProvider fetches products from the CMS gateway over HTTP/JSON
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	logger  logrus.FieldLogger
}

// errorPayload is the error body shape served by the gateway
type errorPayload struct {
	Error string `json:"error"`
}

// NewHTTPProvider creates a catalog provider against the given gateway base URL
func NewHTTPProvider(baseURL string, client *http.Client, logger logrus.FieldLogger) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// Products retrieves the full product listing. Records that fail
// validation are dropped and logged rather than propagated; a transport
// or decode failure surfaces as ErrUnavailable.
func (p *HTTPProvider) Products(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, p.statusError(resp)
	}

	var records []Product
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decoding product listing: %v", ErrUnavailable, err)
	}

	products := records[:0]
	for _, record := range records {
		if err := record.Validate(); err != nil {
			p.logger.WithError(err).Warn("Dropping invalid product record from catalog listing")
			continue
		}
		products = append(products, record)
	}

	return products, nil
}

// Product retrieves a single product by id. An unknown id is ErrNotFound;
// any other failure is ErrUnavailable.
func (p *HTTPProvider) Product(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/products/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, p.statusError(resp)
	}

	var record Product
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: decoding product %s: %v", ErrUnavailable, id, err)
	}

	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid product record: %v", ErrUnavailable, err)
	}

	return &record, nil
}

// statusError turns a non-success gateway response into ErrUnavailable,
// keeping the gateway's own error message when it sends one
func (p *HTTPProvider) statusError(resp *http.Response) error {
	var payload errorPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%w: %s (status %d)", ErrUnavailable, payload.Error, resp.StatusCode)
	}
	return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
}
