package cart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ProcureNet/client_runtime/internal/api"
	"github.com/ProcureNet/client_runtime/internal/config"
	"github.com/ProcureNet/client_runtime/internal/mock"
	"github.com/ProcureNet/client_runtime/internal/platform"
	"github.com/ProcureNet/client_runtime/internal/transport"
	"github.com/ProcureNet/client_runtime/pkg/storage"
)

func mockService() *Service {
	mocks := mock.NewRuntime(storage.NewMemoryKV(), nil, nil)
	return New(config.Config{IsolatedMock: true}, nil, mocks, nil)
}

func TestMockCartFlow(t *testing.T) {
	svc := mockService()
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "sku-1001-1", 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	c, err = svc.AddItem(ctx, "sku-1001-1", 3)
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].Qty != 5 {
		t.Fatalf("cart = %+v, want one line with qty 5", c)
	}
	if c.TotalQty != 5 {
		t.Errorf("TotalQty = %d, want 5", c.TotalQty)
	}
	if c.TotalFen != 5*1250 {
		t.Errorf("TotalFen = %d, want %d", c.TotalFen, 5*1250)
	}

	c, err = svc.SetQty(ctx, "sku-1001-1", 100)
	if err != nil {
		t.Fatalf("set qty: %v", err)
	}
	// The 100-unit tier kicks in.
	if c.TotalFen != 100*1100 {
		t.Errorf("TotalFen = %d, want tier price %d", c.TotalFen, 100*1100)
	}

	c, err = svc.RemoveItem(ctx, "sku-1001-1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(c.Items) != 0 || c.TotalFen != 0 {
		t.Errorf("cart after remove = %+v, want empty", c)
	}
}

func TestMockCart_EmptySKURejected(t *testing.T) {
	svc := mockService()
	if _, err := svc.AddItem(context.Background(), "  ", 1); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLiveCartGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/cart" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Fatalf("auth header = %q", got)
		}
		w.Write([]byte(`{"items":[{"sku":{"id":"sku-9","unitPriceFen":100},"qty":3}],"totalQty":3,"totalFen":300}`))
	}))
	defer server.Close()

	rt := api.NewRequester(transport.Select(platform.Web, nil), staticToken("tok-1"))
	svc := New(config.Config{
		CommerceBaseURL: server.URL,
		RequestTimeout:  time.Second,
	}, rt, nil, nil)

	c, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.TotalQty != 3 || c.TotalFen != 300 {
		t.Errorf("cart = %+v", c)
	}
	if len(c.Items) != 1 || c.Items[0].SKU.ID != "sku-9" {
		t.Errorf("items = %+v", c.Items)
	}
}

type staticToken string

func (t staticToken) Token() string { return string(t) }
