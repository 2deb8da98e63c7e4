package product

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name  string
		query BrowseQuery
		check func(t *testing.T, filter bson.M)
	}{
		{
			name:  "default hides inactive",
			query: BrowseQuery{},
			check: func(t *testing.T, f bson.M) {
				if f["is_active"] != true {
					t.Error("storefront filter must pin is_active")
				}
			},
		},
		{
			name:  "staff sees hidden",
			query: BrowseQuery{ShowHidden: true},
			check: func(t *testing.T, f bson.M) {
				if _, ok := f["is_active"]; ok {
					t.Error("hidden view should not constrain is_active")
				}
			},
		},
		{
			name:  "price band",
			query: BrowseQuery{MinPrice: 10, MaxPrice: 50},
			check: func(t *testing.T, f bson.M) {
				price, ok := f["price"].(bson.M)
				if !ok {
					t.Fatal("expected price filter")
				}
				if price["$gte"] != 10.0 || price["$lte"] != 50.0 {
					t.Errorf("price filter = %v", price)
				}
			},
		},
		{
			name:  "min price only leaves top open",
			query: BrowseQuery{MinPrice: 25},
			check: func(t *testing.T, f bson.M) {
				price := f["price"].(bson.M)
				if _, ok := price["$lte"]; ok {
					t.Error("unexpected upper bound")
				}
			},
		},
		{
			name:  "organic and stock flags",
			query: BrowseQuery{Organic: boolPtr(true), InStock: boolPtr(true)},
			check: func(t *testing.T, f bson.M) {
				if f["is_organic"] != true {
					t.Error("expected is_organic filter")
				}
				stock, ok := f["stock"].(bson.M)
				if !ok || stock["$gt"] != 0 {
					t.Errorf("stock filter = %v", f["stock"])
				}
			},
		},
		{
			name:  "in_stock false does not filter",
			query: BrowseQuery{InStock: boolPtr(false)},
			check: func(t *testing.T, f bson.M) {
				if _, ok := f["stock"]; ok {
					t.Error("in_stock=false should not constrain stock")
				}
			},
		},
		{
			name:  "text search",
			query: BrowseQuery{Search: "turmeric"},
			check: func(t *testing.T, f bson.M) {
				text, ok := f["$text"].(bson.M)
				if !ok || text["$search"] != "turmeric" {
					t.Errorf("text filter = %v", f["$text"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, buildFilter(tt.query))
		})
	}
}

func TestSortSpec(t *testing.T) {
	tests := []struct {
		sort     string
		wantKey  string
		wantDir  int
	}{
		{"price_asc", "price", 1},
		{"price_desc", "price", -1},
		{"rating", "rating_avg", -1},
		{"popular", "sold_count", -1},
		{"name", "name", 1},
		{"", "created_at", -1},
		{"bogus", "created_at", -1},
	}

	for _, tt := range tests {
		spec := sortSpec(tt.sort)
		if len(spec) == 0 {
			t.Fatalf("sortSpec(%q) empty", tt.sort)
		}
		if spec[0].Key != tt.wantKey || spec[0].Value != tt.wantDir {
			t.Errorf("sortSpec(%q)[0] = %v, want {%s %d}", tt.sort, spec[0], tt.wantKey, tt.wantDir)
		}
	}
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name string
		p    Product
		want float64
	}{
		{"no sale", Product{Price: 100}, 100},
		{"sale below price", Product{Price: 100, SalePrice: 80}, 80},
		{"sale above price ignored", Product{Price: 100, SalePrice: 120}, 100},
		{"zero sale ignored", Product{Price: 100, SalePrice: 0}, 100},
	}
	for _, tt := range tests {
		if got := tt.p.EffectivePrice(); got != tt.want {
			t.Errorf("%s: EffectivePrice() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLowStock(t *testing.T) {
	p := Product{Stock: 5, LowStockThreshold: 5}
	if !p.LowStock() {
		t.Error("stock at threshold should flag low")
	}
	p.Stock = 6
	if p.LowStock() {
		t.Error("stock above threshold should not flag low")
	}
}
