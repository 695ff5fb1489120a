package mock

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ProcureNet/client_runtime/internal/domain/address"
	"github.com/ProcureNet/client_runtime/internal/domain/catalog"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// placeholderPriceFen prices SKUs the fixture catalog has never heard of.
const placeholderPriceFen = 9900

type fixtureProduct struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	CategoryID  string       `yaml:"categoryId"`
	ImageURL    string       `yaml:"imageUrl"`
	Description string       `yaml:"description"`
	SKUs        []fixtureSKU `yaml:"skus"`
}

type fixtureSKU struct {
	ID           string             `yaml:"id"`
	Name         string             `yaml:"name"`
	Spec         string             `yaml:"spec"`
	UnitPriceFen int64              `yaml:"unitPriceFen"`
	Stock        int                `yaml:"stock"`
	PriceTiers   []fixturePriceTier `yaml:"priceTiers"`
}

type fixturePriceTier struct {
	MinQty       int   `yaml:"minQty"`
	UnitPriceFen int64 `yaml:"unitPriceFen"`
}

type fixtureFile struct {
	Products  []fixtureProduct  `yaml:"products"`
	Addresses []address.Address `yaml:"addresses"`
}

type fixtureCatalog struct {
	products  []catalog.ProductDetail
	bySPU     map[string]catalog.ProductDetail
	skuByID   map[string]catalog.SKU
	addresses []address.Address
}

var (
	fixturesOnce sync.Once
	fixturesData fixtureCatalog
)

func fixtures() fixtureCatalog {
	fixturesOnce.Do(func() {
		var file fixtureFile
		if err := yaml.Unmarshal(fixturesYAML, &file); err != nil {
			// The fixture file is embedded and checked by tests; an empty
			// catalog still works through the placeholder tier.
			file = fixtureFile{}
		}

		data := fixtureCatalog{
			bySPU:     make(map[string]catalog.ProductDetail),
			skuByID:   make(map[string]catalog.SKU),
			addresses: file.Addresses,
		}
		for _, p := range file.Products {
			detail := catalog.ProductDetail{
				Product: catalog.Product{
					ID:         p.ID,
					Name:       p.Name,
					CategoryID: p.CategoryID,
					ImageURL:   p.ImageURL,
				},
				Description: p.Description,
			}
			for _, s := range p.SKUs {
				sku := catalog.SKU{
					ID:           s.ID,
					SPUID:        p.ID,
					Name:         s.Name,
					Spec:         s.Spec,
					UnitPriceFen: s.UnitPriceFen,
					Stock:        s.Stock,
					ImageURL:     p.ImageURL,
				}
				for _, t := range s.PriceTiers {
					sku.PriceTiers = append(sku.PriceTiers, catalog.PriceTier{
						MinQty:       t.MinQty,
						UnitPriceFen: t.UnitPriceFen,
					})
				}
				detail.SKUs = append(detail.SKUs, sku)
				data.skuByID[sku.ID] = sku
				if detail.MinPriceFen == 0 || sku.UnitPriceFen < detail.MinPriceFen {
					detail.MinPriceFen = sku.UnitPriceFen
				}
			}
			data.products = append(data.products, detail)
			data.bySPU[p.ID] = detail
		}
		fixturesData = data
	})
	return fixturesData
}

// LookupSKU resolves a SKU id against the snapshot. It never fails: exact
// fixture match first, then SPU inference from the "sku-<spu>-<n>" naming
// convention, then a synthesized placeholder with a default price tier.
// Recorded price-tier overrides in the state win over fixture tiers.
func LookupSKU(s State, skuID string) catalog.SKU {
	fx := fixtures()

	sku, ok := fx.skuByID[skuID]
	if !ok {
		sku = inferSKU(fx, skuID)
	}
	if tiers, ok := s.PriceTiersBySKU[skuID]; ok && len(tiers) > 0 {
		sku.PriceTiers = append([]catalog.PriceTier(nil), tiers...)
	}
	return sku
}

// inferSKU builds a plausible SKU for an id the fixtures don't know.
func inferSKU(fx fixtureCatalog, skuID string) catalog.SKU {
	if spuID, ok := spuFromSKUID(skuID); ok {
		if detail, ok := fx.bySPU[spuID]; ok && len(detail.SKUs) > 0 {
			base := detail.SKUs[0]
			return catalog.SKU{
				ID:           skuID,
				SPUID:        spuID,
				Name:         fmt.Sprintf("%s / variant", detail.Name),
				UnitPriceFen: base.UnitPriceFen,
				PriceTiers:   append([]catalog.PriceTier(nil), base.PriceTiers...),
				Stock:        base.Stock,
				ImageURL:     detail.ImageURL,
			}
		}
	}
	return catalog.SKU{
		ID:           skuID,
		SPUID:        "spu-unknown",
		Name:         "SKU " + skuID,
		UnitPriceFen: placeholderPriceFen,
		PriceTiers:   []catalog.PriceTier{{MinQty: 1, UnitPriceFen: placeholderPriceFen}},
		Stock:        999,
	}
}

// spuFromSKUID maps "sku-1001-3" to "spu-1001".
func spuFromSKUID(skuID string) (string, bool) {
	rest, ok := strings.CutPrefix(skuID, "sku-")
	if !ok {
		return "", false
	}
	base, _, ok := strings.Cut(rest, "-")
	if !ok || base == "" {
		return "", false
	}
	return "spu-" + base, true
}

// FixtureProducts returns the static catalog.
func FixtureProducts() []catalog.ProductDetail {
	fx := fixtures()
	return append([]catalog.ProductDetail(nil), fx.products...)
}

// FixtureProduct returns one static product by SPU id.
func FixtureProduct(spuID string) (catalog.ProductDetail, bool) {
	detail, ok := fixtures().bySPU[spuID]
	return detail, ok
}

// FixtureAddresses returns the static address book served in mock mode.
func FixtureAddresses() []address.Address {
	fx := fixtures()
	return append([]address.Address(nil), fx.addresses...)
}
