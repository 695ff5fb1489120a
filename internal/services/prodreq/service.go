// Package prodreq exposes sourcing requests: buyers asking the platform to
// stock an item it does not carry yet.
package prodreq

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ProcureNet/client_runtime/internal/api"
	"github.com/ProcureNet/client_runtime/internal/config"
	"github.com/ProcureNet/client_runtime/internal/domain/prodreq"
	"github.com/ProcureNet/client_runtime/internal/mock"
	"github.com/ProcureNet/client_runtime/pkg/logger"
)

// Service serves sourcing request operations against the gateway backend.
type Service struct {
	cfg   config.Config
	rt    *api.Requester
	mocks *mock.Runtime
	log   *logger.Logger
}

// New constructs a sourcing request service.
func New(cfg config.Config, rt *api.Requester, mocks *mock.Runtime, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("prodreq")
	}
	return &Service{cfg: cfg, rt: rt, mocks: mocks, log: log}
}

// Create submits a sourcing request.
func (s *Service) Create(ctx context.Context, productName, description string, quantity int, targetPriceFen int64) (prodreq.Request, error) {
	productName = strings.TrimSpace(productName)
	description = strings.TrimSpace(description)
	if productName == "" {
		return prodreq.Request{}, fmt.Errorf("product name is required")
	}
	if quantity < 1 {
		return prodreq.Request{}, fmt.Errorf("quantity must be positive")
	}

	if s.cfg.IsolatedMock {
		req := prodreq.Request{
			ID:             "mock-preq-" + uuid.NewString(),
			ProductName:    productName,
			Description:    description,
			Quantity:       quantity,
			TargetPriceFen: targetPriceFen,
			Status:         prodreq.StatusSubmitted,
			CreatedAt:      s.mocks.Now(),
		}
		s.mocks.Update(mock.CreateProductRequest(req))
		return req, nil
	}

	return api.Do[prodreq.Request](ctx, s.rt, api.Descriptor{
		Method: http.MethodPost,
		URL:    s.cfg.GatewayBaseURL + "/api/v1/product-requests",
		Body: api.JSONBody(map[string]any{
			"productName":    productName,
			"description":    description,
			"quantity":       quantity,
			"targetPriceFen": targetPriceFen,
		}),
		Timeout: s.cfg.RequestTimeout,
	})
}

// List returns the buyer's sourcing requests, newest first.
func (s *Service) List(ctx context.Context) ([]prodreq.Request, error) {
	if s.cfg.IsolatedMock {
		return mock.ProductRequests(s.mocks.Load()), nil
	}
	return api.Do[[]prodreq.Request](ctx, s.rt, api.Descriptor{
		Method:  http.MethodGet,
		URL:     s.cfg.GatewayBaseURL + "/api/v1/product-requests",
		Timeout: s.cfg.RequestTimeout,
	})
}
