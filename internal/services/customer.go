package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ywatanabe-dev/line-support-relay/internal/models"
)

// CustomerService fetches customer profiles and order histories from
// the mock MCP server. Data is fetched fresh on every inquiry; nothing
// is cached.
type CustomerService struct {
	baseURL string
	client  *http.Client
}

// NewCustomerService creates a directory client against the given
// mock MCP base URL.
func NewCustomerService(baseURL string) *CustomerService {
	return &CustomerService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// GetCustomerWithOrders fetches the profile and the order history in
// parallel. Either fetch failing aborts the combined result; a partial
// profile-without-orders result is never returned.
func (s *CustomerService) GetCustomerWithOrders(ctx context.Context, userID string) (models.Customer, []models.Order, error) {
	var (
		customer models.Customer
		orders   []models.Order
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.getJSON(ctx, "/customer/"+url.PathEscape(userID), &customer)
	})
	g.Go(func() error {
		return s.getJSON(ctx, "/orders/"+url.PathEscape(userID), &orders)
	})

	if err := g.Wait(); err != nil {
		return models.Customer{}, nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	return customer, orders, nil
}

func (s *CustomerService) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
