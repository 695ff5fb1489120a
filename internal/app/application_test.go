package app

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ProcureNet/client_runtime/internal/config"
	"github.com/ProcureNet/client_runtime/internal/platform"
	"github.com/ProcureNet/client_runtime/internal/transport"
)

func TestMockLoginMintsLocalSession(t *testing.T) {
	cfg := config.Config{
		Platform:     platform.Web,
		IsolatedMock: true,
	}

	app, err := New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := app.Login(context.Background()); err != nil {
		t.Fatalf("login: %v", err)
	}
	token := app.Tokens().Token()
	if !strings.HasPrefix(token, "mock-session-") {
		t.Errorf("token = %q, want mock-session prefix", token)
	}

	app.Logout()
	if got := app.Tokens().Token(); got != "" {
		t.Errorf("token after logout = %q, want empty", got)
	}
}

func TestLiveLoginExchangesCode(t *testing.T) {
	var exchanged string
	bridge := &transport.Bridge{
		Login: func(context.Context) (transport.LoginResult, error) {
			return transport.LoginResult{Code: "wx-code-7"}, nil
		},
		Request: func(_ context.Context, req transport.Request) (transport.Response, error) {
			if !strings.HasSuffix(strings.SplitN(req.URL, "?", 2)[0], "/api/v1/auth/session") {
				t.Fatalf("unexpected URL %s", req.URL)
			}
			exchanged = string(req.Body)
			return transport.Response{
				Status: http.StatusOK,
				Body:   []byte(`{"token":"sess-abc"}`),
			}, nil
		},
	}

	cfg := config.Config{
		Platform:        platform.WeChat,
		IdentityBaseURL: "https://identity.test",
		RequestTimeout:  time.Second,
	}
	app, err := New(cfg, bridge, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := app.Login(context.Background()); err != nil {
		t.Fatalf("login: %v", err)
	}
	if got := app.Tokens().Token(); got != "sess-abc" {
		t.Errorf("token = %q, want sess-abc", got)
	}
	if !strings.Contains(exchanged, "wx-code-7") {
		t.Errorf("exchange body = %s, want the platform code", exchanged)
	}
	// The exchange reports the platform the host injected at startup.
	if !strings.Contains(exchanged, `"platform":"wechat"`) {
		t.Errorf("exchange body = %s, want the injected platform", exchanged)
	}
}

func TestInjectedPlatformOverridesEnvironment(t *testing.T) {
	// Even if the environment claims another platform, the host-supplied
	// value wins for both adapter selection and the login exchange.
	t.Setenv("PROCURE_PLATFORM", "wechat")

	var exchanged string
	bridge := &transport.Bridge{
		Login: func(context.Context) (transport.LoginResult, error) {
			return transport.LoginResult{Code: "ali-code-1"}, nil
		},
		Request: func(_ context.Context, req transport.Request) (transport.Response, error) {
			exchanged = string(req.Body)
			return transport.Response{Status: http.StatusOK, Body: []byte(`{"token":"sess-ali"}`)}, nil
		},
	}

	cfg := config.Config{
		Platform:        platform.Alipay,
		IdentityBaseURL: "https://identity.test",
		RequestTimeout:  time.Second,
	}
	app, err := New(cfg, bridge, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := app.Login(context.Background()); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(exchanged, `"platform":"alipay"`) {
		t.Errorf("exchange body = %s, want the injected platform, not the env one", exchanged)
	}
}

func TestUnsetPlatformFallsBackToDetection(t *testing.T) {
	t.Setenv("PROCURE_PLATFORM", "web")

	app, err := New(config.Config{IsolatedMock: true}, nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if app.platform != platform.Web {
		t.Errorf("platform = %s, want detected web", app.platform)
	}
}

func TestFacadesShareState(t *testing.T) {
	app, err := New(config.Config{Platform: platform.Web, IsolatedMock: true}, nil, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	if _, err := app.Cart.AddItem(ctx, "sku-1001-1", 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	c, err := app.Cart.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.TotalQty != 3 {
		t.Errorf("TotalQty = %d, want 3", c.TotalQty)
	}

	// Reset through the mock runtime clears what the cart facade sees.
	app.Mocks().Reset()
	c, err = app.Cart.Get(ctx)
	if err != nil {
		t.Fatalf("get after reset: %v", err)
	}
	if len(c.Items) != 0 {
		t.Errorf("cart after reset = %+v, want empty", c)
	}
}
