// Package cart exposes the shopping cart. Mutations are not retried; the
// backend (or the mock reducer) owns merge semantics, the client only sends
// intents.
package cart

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ProcureNet/client_runtime/internal/api"
	"github.com/ProcureNet/client_runtime/internal/config"
	"github.com/ProcureNet/client_runtime/internal/domain/cart"
	"github.com/ProcureNet/client_runtime/internal/mock"
	"github.com/ProcureNet/client_runtime/pkg/logger"
)

// Service serves cart reads and mutations.
type Service struct {
	cfg   config.Config
	rt    *api.Requester
	mocks *mock.Runtime
	log   *logger.Logger
}

// New constructs a cart service.
func New(cfg config.Config, rt *api.Requester, mocks *mock.Runtime, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("cart")
	}
	return &Service{cfg: cfg, rt: rt, mocks: mocks, log: log}
}

// Get returns the cart with derived totals.
func (s *Service) Get(ctx context.Context) (cart.Cart, error) {
	if s.cfg.IsolatedMock {
		return mock.Cart(s.mocks.Load()), nil
	}
	return api.Do[cart.Cart](ctx, s.rt, api.Descriptor{
		Method:  http.MethodGet,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/cart",
		Timeout: s.cfg.RequestTimeout,
	})
}

// AddItem adds qty of a SKU, merging into an existing line.
func (s *Service) AddItem(ctx context.Context, skuID string, qty int) (cart.Cart, error) {
	skuID = strings.TrimSpace(skuID)
	if skuID == "" {
		return cart.Cart{}, fmt.Errorf("sku id is required")
	}

	if s.cfg.IsolatedMock {
		return mock.Cart(s.mocks.Update(mock.AddCartItem(skuID, qty))), nil
	}

	return api.Do[cart.Cart](ctx, s.rt, api.Descriptor{
		Method:  http.MethodPost,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/cart/items",
		Body:    api.JSONBody(map[string]any{"skuId": skuID, "qty": qty}),
		Timeout: s.cfg.RequestTimeout,
	})
}

// SetQty replaces the quantity for a SKU's line.
func (s *Service) SetQty(ctx context.Context, skuID string, qty int) (cart.Cart, error) {
	skuID = strings.TrimSpace(skuID)
	if skuID == "" {
		return cart.Cart{}, fmt.Errorf("sku id is required")
	}

	if s.cfg.IsolatedMock {
		return mock.Cart(s.mocks.Update(mock.SetCartQty(skuID, qty))), nil
	}

	return api.Do[cart.Cart](ctx, s.rt, api.Descriptor{
		Method:  http.MethodPut,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/cart/items/" + url.PathEscape(skuID),
		Body:    api.JSONBody(map[string]any{"qty": qty}),
		Timeout: s.cfg.RequestTimeout,
	})
}

// RemoveItem drops a SKU's line from the cart.
func (s *Service) RemoveItem(ctx context.Context, skuID string) (cart.Cart, error) {
	skuID = strings.TrimSpace(skuID)
	if skuID == "" {
		return cart.Cart{}, fmt.Errorf("sku id is required")
	}

	if s.cfg.IsolatedMock {
		return mock.Cart(s.mocks.Update(mock.RemoveCartItem(skuID))), nil
	}

	return api.Do[cart.Cart](ctx, s.rt, api.Descriptor{
		Method:  http.MethodDelete,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/cart/items/" + url.PathEscape(skuID),
		Timeout: s.cfg.RequestTimeout,
	})
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	if s.cfg.IsolatedMock {
		s.mocks.Update(mock.ClearCart())
		return nil
	}

	_, err := s.rt.Do(ctx, api.Descriptor{
		Method:  http.MethodDelete,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/cart",
		Timeout: s.cfg.RequestTimeout,
	})
	return err
}
