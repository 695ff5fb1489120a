// Package orders exposes order submission, listing, cancellation and
// tracking. Submission is the one mutation that may be replayed on flaky
// networks, so it carries an idempotency key derived from the draft: the key
// is stable while the draft is semantically unchanged and is only discarded
// after a confirmed success.
package orders

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ProcureNet/client_runtime/internal/api"
	"github.com/ProcureNet/client_runtime/internal/config"
	"github.com/ProcureNet/client_runtime/internal/domain/order"
	"github.com/ProcureNet/client_runtime/internal/idempotency"
	"github.com/ProcureNet/client_runtime/internal/mock"
	"github.com/ProcureNet/client_runtime/pkg/logger"
)

// Service serves order operations.
type Service struct {
	cfg   config.Config
	rt    *api.Requester
	mocks *mock.Runtime
	keys  *idempotency.KeyManager
	log   *logger.Logger
}

// New constructs an order service with its own idempotency key manager.
func New(cfg config.Config, rt *api.Requester, mocks *mock.Runtime, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("orders")
	}
	return &Service{
		cfg:   cfg,
		rt:    rt,
		mocks: mocks,
		keys:  idempotency.NewKeyManager(),
		log:   log,
	}
}

// Submit places an order from the draft. Retrying after a network failure
// reuses the same idempotency key, so the backend can deduplicate; editing
// the draft in between mints a fresh key.
func (s *Service) Submit(ctx context.Context, draft order.Draft) (order.Order, error) {
	if len(draft.Items) == 0 {
		return order.Order{}, fmt.Errorf("draft has no items")
	}
	key := s.keys.Key(draft)

	if s.cfg.IsolatedMock {
		// The key doubles as the order identity: replaying an unchanged
		// draft lands on the order it already created.
		id := "mock-" + key
		state := s.mocks.Load()
		if existing, ok := mock.OrderByID(state, id); ok {
			s.keys.Reset()
			return existing, nil
		}
		state = s.mocks.Update(mock.SubmitOrder(id, draft, s.mocks.Now()))
		placed, ok := mock.OrderByID(state, id)
		if !ok {
			return order.Order{}, fmt.Errorf("mock order %s not persisted", id)
		}
		s.keys.Reset()
		s.log.WithField("order_id", id).Info("mock order placed")
		return placed, nil
	}

	headers := http.Header{}
	headers.Set(idempotency.Header, key)
	placed, err := api.Do[order.Order](ctx, s.rt, api.Descriptor{
		Method:  http.MethodPost,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/orders",
		Headers: headers,
		Body:    api.JSONBody(draft),
		Timeout: s.cfg.RequestTimeout,
	})
	if err != nil {
		return order.Order{}, err
	}
	s.keys.Reset()
	s.log.WithField("order_id", placed.ID).Info("order placed")
	return placed, nil
}

// List returns the buyer's orders, newest first.
func (s *Service) List(ctx context.Context) ([]order.Order, error) {
	if s.cfg.IsolatedMock {
		return mock.Orders(s.mocks.Load()), nil
	}
	return api.Do[[]order.Order](ctx, s.rt, api.Descriptor{
		Method:  http.MethodGet,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/orders",
		Timeout: s.cfg.RequestTimeout,
	})
}

// Get returns one order by id.
func (s *Service) Get(ctx context.Context, id string) (order.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return order.Order{}, fmt.Errorf("order id is required")
	}

	if s.cfg.IsolatedMock {
		o, ok := mock.OrderByID(s.mocks.Load(), id)
		if !ok {
			return order.Order{}, api.NewError(http.StatusNotFound, "not_found", "order "+id+" not found")
		}
		return o, nil
	}

	return api.Do[order.Order](ctx, s.rt, api.Descriptor{
		Method:  http.MethodGet,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/orders/" + url.PathEscape(id),
		Timeout: s.cfg.RequestTimeout,
	})
}

// Cancel requests cancellation of an order.
func (s *Service) Cancel(ctx context.Context, id string) (order.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return order.Order{}, fmt.Errorf("order id is required")
	}

	if s.cfg.IsolatedMock {
		if _, ok := mock.OrderByID(s.mocks.Load(), id); !ok {
			return order.Order{}, api.NewError(http.StatusNotFound, "not_found", "order "+id+" not found")
		}
		state := s.mocks.Update(mock.SetOrderStatus(id, order.StatusCancelled, s.mocks.Now()))
		cancelled, _ := mock.OrderByID(state, id)
		return cancelled, nil
	}

	return api.Do[order.Order](ctx, s.rt, api.Descriptor{
		Method:  http.MethodPost,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/orders/" + url.PathEscape(id) + "/cancel",
		Timeout: s.cfg.RequestTimeout,
	})
}

// Tracking returns the logistics events for an order, oldest first.
func (s *Service) Tracking(ctx context.Context, id string) ([]order.TrackingEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("order id is required")
	}

	if s.cfg.IsolatedMock {
		if _, ok := mock.OrderByID(s.mocks.Load(), id); !ok {
			return nil, api.NewError(http.StatusNotFound, "not_found", "order "+id+" not found")
		}
		return mock.Tracking(s.mocks.Load(), id), nil
	}

	return api.Do[[]order.TrackingEvent](ctx, s.rt, api.Descriptor{
		Method:  http.MethodGet,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/orders/" + url.PathEscape(id) + "/tracking",
		Timeout: s.cfg.RequestTimeout,
	})
}
