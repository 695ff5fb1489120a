// mockctl inspects and manipulates the isolated mock state used during
// development: dump the snapshot, reset it, seed demo data, or manage the
// stored session token.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ProcureNet/client_runtime/internal/auth"
	"github.com/ProcureNet/client_runtime/internal/config"
	"github.com/ProcureNet/client_runtime/internal/domain/address"
	"github.com/ProcureNet/client_runtime/internal/domain/order"
	"github.com/ProcureNet/client_runtime/internal/mock"
	"github.com/ProcureNet/client_runtime/pkg/storage"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: mockctl <command>

Commands:
  state            print the current mock snapshot as JSON
  reset            restore the snapshot to first-run defaults and clear the token
  seed             populate the snapshot with demo data
  token            print the stored session token
  token <value>    store a session token ("" clears it)

State lives under PROCURE_STATE_DIR (default .procure-state).
`)
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	dir := cfg.StateDir
	if dir == "" {
		dir = ".procure-state"
	}

	kv := storage.NewFileKV(dir)
	tokens := auth.NewStore(kv, cfg.DevToken())
	runtime := mock.NewRuntime(kv, tokens, nil)

	switch args[0] {
	case "state":
		state := runtime.Load()
		out, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			log.Fatalf("encode state: %v", err)
		}
		fmt.Println(string(out))

	case "reset":
		runtime.Reset()
		fmt.Println("mock state reset")

	case "seed":
		seed(runtime)
		fmt.Println("mock state seeded")

	case "token":
		if len(args) > 1 {
			tokens.SetToken(args[1])
			if args[1] == "" {
				fmt.Println("token cleared")
			} else {
				fmt.Println("token stored")
			}
			return
		}
		token := tokens.Token()
		if token == "" {
			fmt.Println("(no token)")
		} else {
			fmt.Println(token)
		}

	default:
		usage()
	}
}

// seed drops a small working set into the snapshot so UI flows have
// something to render on first run.
func seed(runtime *mock.Runtime) {
	now := time.Now().UTC()

	runtime.Update(mock.AddCartItem("sku-1001-1", 20))
	runtime.Update(mock.AddCartItem("sku-1002-1", 300))
	runtime.Update(mock.AddWishlist("sku-1003-1"))

	draft := order.Draft{
		Items: []order.DraftItem{
			{SKUID: "sku-1001-2", Qty: 150},
		},
		Address: address.Address{
			ID:       "addr-demo-1",
			Contact:  "Lin Wei",
			Phone:    "13800000001",
			Province: "Guangdong",
			City:     "Shenzhen",
			Detail:   "Block C, Fuyong Industrial Park",
		},
		Remark: "seeded demo order",
	}
	runtime.Update(mock.SubmitOrder("ord-seed-1", draft, now.Add(-48*time.Hour)))
	runtime.Update(mock.SetOrderStatus("ord-seed-1", order.StatusShipped, now.Add(-24*time.Hour)))
}
