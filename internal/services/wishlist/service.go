// Package wishlist exposes the saved-SKU list.
package wishlist

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ProcureNet/client_runtime/internal/api"
	"github.com/ProcureNet/client_runtime/internal/config"
	"github.com/ProcureNet/client_runtime/internal/domain/catalog"
	"github.com/ProcureNet/client_runtime/internal/mock"
	"github.com/ProcureNet/client_runtime/pkg/logger"
)

// Service serves wishlist reads and mutations.
type Service struct {
	cfg   config.Config
	rt    *api.Requester
	mocks *mock.Runtime
	log   *logger.Logger
}

// New constructs a wishlist service.
func New(cfg config.Config, rt *api.Requester, mocks *mock.Runtime, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("wishlist")
	}
	return &Service{cfg: cfg, rt: rt, mocks: mocks, log: log}
}

// List returns the saved SKUs, resolved to full SKU payloads.
func (s *Service) List(ctx context.Context) ([]catalog.SKU, error) {
	if s.cfg.IsolatedMock {
		return mock.Wishlist(s.mocks.Load()), nil
	}
	return api.Do[[]catalog.SKU](ctx, s.rt, api.Descriptor{
		Method:  http.MethodGet,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/wishlist",
		Timeout: s.cfg.RequestTimeout,
	})
}

// Add saves a SKU. Saving an already-saved SKU is a no-op.
func (s *Service) Add(ctx context.Context, skuID string) error {
	skuID = strings.TrimSpace(skuID)
	if skuID == "" {
		return fmt.Errorf("sku id is required")
	}

	if s.cfg.IsolatedMock {
		s.mocks.Update(mock.AddWishlist(skuID))
		return nil
	}

	_, err := s.rt.Do(ctx, api.Descriptor{
		Method:  http.MethodPost,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/wishlist",
		Body:    api.JSONBody(map[string]string{"skuId": skuID}),
		Timeout: s.cfg.RequestTimeout,
	})
	return err
}

// Remove drops a SKU from the list. Absent is a no-op.
func (s *Service) Remove(ctx context.Context, skuID string) error {
	skuID = strings.TrimSpace(skuID)
	if skuID == "" {
		return fmt.Errorf("sku id is required")
	}

	if s.cfg.IsolatedMock {
		s.mocks.Update(mock.RemoveWishlist(skuID))
		return nil
	}

	_, err := s.rt.Do(ctx, api.Descriptor{
		Method:  http.MethodDelete,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/wishlist/" + url.PathEscape(skuID),
		Timeout: s.cfg.RequestTimeout,
	})
	return err
}

// Toggle flips membership and reports whether the SKU is saved afterwards.
func (s *Service) Toggle(ctx context.Context, skuID string) (bool, error) {
	skuID = strings.TrimSpace(skuID)
	if skuID == "" {
		return false, fmt.Errorf("sku id is required")
	}

	if s.cfg.IsolatedMock {
		state := s.mocks.Update(mock.ToggleWishlist(skuID))
		for _, id := range state.WishlistSKUIDs {
			if id == skuID {
				return true, nil
			}
		}
		return false, nil
	}

	type result struct {
		Saved bool `json:"saved"`
	}
	out, err := api.Do[result](ctx, s.rt, api.Descriptor{
		Method:  http.MethodPost,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/wishlist/" + url.PathEscape(skuID) + "/toggle",
		Timeout: s.cfg.RequestTimeout,
	})
	return out.Saved, err
}
