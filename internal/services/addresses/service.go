// Package addresses exposes the buyer's delivery address book. The isolated
// mock serves a fixed demo set: addresses are not part of the persisted mock
// snapshot, so writes in mock mode are echoed back with a generated id but
// do not survive the call.
package addresses

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/ProcureNet/client_runtime/internal/api"
	"github.com/ProcureNet/client_runtime/internal/config"
	"github.com/ProcureNet/client_runtime/internal/domain/address"
	"github.com/ProcureNet/client_runtime/internal/mock"
	"github.com/ProcureNet/client_runtime/pkg/logger"
)

// Service serves address book operations.
type Service struct {
	cfg   config.Config
	rt    *api.Requester
	mocks *mock.Runtime
	log   *logger.Logger
}

// New constructs an address service.
func New(cfg config.Config, rt *api.Requester, mocks *mock.Runtime, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("addresses")
	}
	return &Service{cfg: cfg, rt: rt, mocks: mocks, log: log}
}

// List returns the address book, default address first.
func (s *Service) List(ctx context.Context) ([]address.Address, error) {
	if s.cfg.IsolatedMock {
		return mock.FixtureAddresses(), nil
	}
	return api.Do[[]address.Address](ctx, s.rt, api.Descriptor{
		Method:  http.MethodGet,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/addresses",
		Timeout: s.cfg.RequestTimeout,
	})
}

// Create saves a new address and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, a address.Address) (address.Address, error) {
	if strings.TrimSpace(a.Contact) == "" || strings.TrimSpace(a.Detail) == "" {
		return address.Address{}, fmt.Errorf("contact and detail are required")
	}

	if s.cfg.IsolatedMock {
		a.ID = "mock-addr-" + uuid.NewString()
		return a, nil
	}

	return api.Do[address.Address](ctx, s.rt, api.Descriptor{
		Method:  http.MethodPost,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/addresses",
		Body:    api.JSONBody(a),
		Timeout: s.cfg.RequestTimeout,
	})
}

// Update replaces an existing address.
func (s *Service) Update(ctx context.Context, a address.Address) (address.Address, error) {
	if strings.TrimSpace(a.ID) == "" {
		return address.Address{}, fmt.Errorf("address id is required")
	}

	if s.cfg.IsolatedMock {
		return a, nil
	}

	return api.Do[address.Address](ctx, s.rt, api.Descriptor{
		Method:  http.MethodPut,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/addresses/" + url.PathEscape(a.ID),
		Body:    api.JSONBody(a),
		Timeout: s.cfg.RequestTimeout,
	})
}

// SetDefault marks an address as the delivery default.
func (s *Service) SetDefault(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("address id is required")
	}

	if s.cfg.IsolatedMock {
		return nil
	}

	_, err := s.rt.Do(ctx, api.Descriptor{
		Method:  http.MethodPost,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/addresses/" + url.PathEscape(id) + "/default",
		Timeout: s.cfg.RequestTimeout,
	})
	return err
}

// Delete removes an address by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("address id is required")
	}

	if s.cfg.IsolatedMock {
		return nil
	}

	_, err := s.rt.Do(ctx, api.Descriptor{
		Method:  http.MethodDelete,
		URL:     s.cfg.CommerceBaseURL + "/api/v1/addresses/" + url.PathEscape(id),
		Timeout: s.cfg.RequestTimeout,
	})
	return err
}
