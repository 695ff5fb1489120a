// Package catalog exposes product listing, detail and SKU search. In live
// mode reads go to the commerce backend with bounded retry; in isolated mock
// mode they are served from the embedded fixture catalog, with observed
// price tiers recorded into the snapshot so repeated fetches stay stable.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ProcureNet/client_runtime/internal/api"
	"github.com/ProcureNet/client_runtime/internal/config"
	"github.com/ProcureNet/client_runtime/internal/domain/catalog"
	"github.com/ProcureNet/client_runtime/internal/mock"
	"github.com/ProcureNet/client_runtime/pkg/logger"
)

// Service serves catalog reads.
type Service struct {
	cfg   config.Config
	rt    *api.Requester
	mocks *mock.Runtime
	log   *logger.Logger
}

// New constructs a catalog service.
func New(cfg config.Config, rt *api.Requester, mocks *mock.Runtime, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("catalog")
	}
	return &Service{cfg: cfg, rt: rt, mocks: mocks, log: log}
}

// ListProducts returns one page of products matching the query.
func (s *Service) ListProducts(ctx context.Context, q catalog.Query) (catalog.ProductPage, error) {
	if s.cfg.IsolatedMock {
		return mock.Products(s.mocks.Load(), q), nil
	}

	params := url.Values{}
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}
	if q.CategoryID != "" {
		params.Set("categoryId", q.CategoryID)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	endpoint := s.cfg.CommerceBaseURL + "/api/v1/products"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	return api.WithRetry(ctx, api.RetryOptions{}, func(ctx context.Context) (catalog.ProductPage, error) {
		return api.Do[catalog.ProductPage](ctx, s.rt, api.Descriptor{
			Method:  http.MethodGet,
			URL:     endpoint,
			Timeout: s.cfg.RequestTimeout,
		})
	})
}

// ProductDetail returns the full product page payload for a SPU.
func (s *Service) ProductDetail(ctx context.Context, spuID string) (catalog.ProductDetail, error) {
	spuID = strings.TrimSpace(spuID)
	if spuID == "" {
		return catalog.ProductDetail{}, fmt.Errorf("spu id is required")
	}

	if s.cfg.IsolatedMock {
		detail, ok := mock.ProductDetail(s.mocks.Load(), spuID)
		if !ok {
			return catalog.ProductDetail{}, api.NewError(http.StatusNotFound, "not_found", "product "+spuID+" not found")
		}
		// Pin every tier ladder we just served so later cart and order math
		// uses the same numbers.
		for _, sku := range detail.SKUs {
			s.mocks.Update(mock.RecordPriceTiers(sku.ID, sku.PriceTiers))
		}
		return detail, nil
	}

	return api.WithRetry(ctx, api.RetryOptions{}, func(ctx context.Context) (catalog.ProductDetail, error) {
		return api.Do[catalog.ProductDetail](ctx, s.rt, api.Descriptor{
			Method:  http.MethodGet,
			URL:     s.cfg.CommerceBaseURL + "/api/v1/products/" + url.PathEscape(spuID),
			Timeout: s.cfg.RequestTimeout,
		})
	})
}

// SearchSKUs returns SKUs whose name or spec matches the keyword.
func (s *Service) SearchSKUs(ctx context.Context, keyword string) ([]catalog.SKU, error) {
	keyword = strings.TrimSpace(keyword)

	if s.cfg.IsolatedMock {
		return mock.SearchSKUs(s.mocks.Load(), keyword), nil
	}

	return api.WithRetry(ctx, api.RetryOptions{}, func(ctx context.Context) ([]catalog.SKU, error) {
		return api.Do[[]catalog.SKU](ctx, s.rt, api.Descriptor{
			Method:  http.MethodGet,
			URL:     s.cfg.CommerceBaseURL + "/api/v1/skus/search?keyword=" + url.QueryEscape(keyword),
			Timeout: s.cfg.RequestTimeout,
		})
	})
}
