// Package app wires configuration, storage, transport and the service
// facades into one client runtime instance.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/ProcureNet/client_runtime/internal/api"
	"github.com/ProcureNet/client_runtime/internal/auth"
	"github.com/ProcureNet/client_runtime/internal/config"
	"github.com/ProcureNet/client_runtime/internal/mock"
	"github.com/ProcureNet/client_runtime/internal/platform"
	addresssvc "github.com/ProcureNet/client_runtime/internal/services/addresses"
	aftersalessvc "github.com/ProcureNet/client_runtime/internal/services/aftersales"
	cartsvc "github.com/ProcureNet/client_runtime/internal/services/cart"
	catalogsvc "github.com/ProcureNet/client_runtime/internal/services/catalog"
	inquirysvc "github.com/ProcureNet/client_runtime/internal/services/inquiry"
	orderssvc "github.com/ProcureNet/client_runtime/internal/services/orders"
	prodreqsvc "github.com/ProcureNet/client_runtime/internal/services/prodreq"
	wishlistsvc "github.com/ProcureNet/client_runtime/internal/services/wishlist"
	"github.com/ProcureNet/client_runtime/internal/transport"
	"github.com/ProcureNet/client_runtime/pkg/logger"
	"github.com/ProcureNet/client_runtime/pkg/storage"
)

// Application ties the facades together over one shared requester, token
// store and mock runtime.
type Application struct {
	cfg       config.Config
	platform  platform.Platform
	adapter   transport.Adapter
	requester *api.Requester
	tokens    *auth.Store
	mocks     *mock.Runtime
	log       *logger.Logger

	Catalog    *catalogsvc.Service
	Cart       *cartsvc.Service
	Wishlist   *wishlistsvc.Service
	Orders     *orderssvc.Service
	Addresses  *addresssvc.Service
	AfterSales *aftersalessvc.Service
	Inquiries  *inquirysvc.Service
	Sourcing   *prodreqsvc.Service
}

// New builds a fully initialised runtime. The host injects its platform via
// cfg.Platform; an unset value falls back to environment detection. bridge
// carries the host platform's primitives and may be nil on web.
func New(cfg config.Config, bridge *transport.Bridge, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}
	if cfg.Platform == "" {
		cfg.Platform = platform.Detect()
	}

	var kv storage.KV
	if cfg.StateDir != "" {
		kv = storage.NewFileKV(cfg.StateDir)
	} else {
		kv = storage.NewMemoryKV()
	}

	tokens := auth.NewStore(kv, cfg.DevToken())
	mocks := mock.NewRuntime(kv, tokens, log)

	adapter := transport.Select(cfg.Platform, bridge)
	requester := api.NewRequester(adapter, tokens, api.WithLogger(log))

	app := &Application{
		cfg:       cfg,
		platform:  cfg.Platform,
		adapter:   adapter,
		requester: requester,
		tokens:    tokens,
		mocks:     mocks,
		log:       log,

		Catalog:    catalogsvc.New(cfg, requester, mocks, log),
		Cart:       cartsvc.New(cfg, requester, mocks, log),
		Wishlist:   wishlistsvc.New(cfg, requester, mocks, log),
		Orders:     orderssvc.New(cfg, requester, mocks, log),
		Addresses:  addresssvc.New(cfg, requester, mocks, log),
		AfterSales: aftersalessvc.New(cfg, requester, mocks, log),
		Inquiries:  inquirysvc.New(cfg, requester, mocks, log),
		Sourcing:   prodreqsvc.New(cfg, requester, mocks, log),
	}

	log.WithField("platform", string(cfg.Platform)).
		WithField("isolated_mock", cfg.IsolatedMock).
		Info("client runtime initialised")
	return app, nil
}

// Tokens exposes the shared token store.
func (a *Application) Tokens() *auth.Store { return a.tokens }

// Mocks exposes the isolated mock runtime for tooling.
func (a *Application) Mocks() *mock.Runtime { return a.mocks }

// Requester exposes the shared dispatcher for callers with endpoints the
// facades do not cover.
func (a *Application) Requester() *api.Requester { return a.requester }

// Login establishes a session. In isolated mock mode a local session token
// is minted without any network traffic; otherwise the platform login code
// is exchanged at the identity backend.
func (a *Application) Login(ctx context.Context) error {
	if a.cfg.IsolatedMock {
		a.tokens.SetToken("mock-session-" + uuid.NewString())
		a.log.Info("mock session established")
		return nil
	}

	result, err := a.adapter.Login(ctx)
	if err != nil {
		return fmt.Errorf("platform login: %w", err)
	}

	type session struct {
		Token string `json:"token"`
	}
	out, err := api.Do[session](ctx, a.requester, api.Descriptor{
		Method: http.MethodPost,
		URL:    a.cfg.IdentityBaseURL + "/api/v1/auth/session",
		Body: api.JSONBody(map[string]string{
			"code":     result.Code,
			"platform": string(a.platform),
		}),
		Timeout: a.cfg.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("exchange login code: %w", err)
	}
	if out.Token == "" {
		return fmt.Errorf("identity backend returned an empty token")
	}
	a.tokens.SetToken(out.Token)
	a.log.Info("session established")
	return nil
}

// Logout clears every persisted credential.
func (a *Application) Logout() {
	a.tokens.SetToken("")
	a.log.Info("session cleared")
}
