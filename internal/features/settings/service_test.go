package settings

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeSettingsRepo struct {
	doc StoreSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*StoreSettings, error) {
	doc := f.doc
	return &doc, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, set bson.M) (*StoreSettings, error) {
	doc := f.doc
	return &doc, nil
}

func (f *fakeSettingsRepo) EnsureDefaults(ctx context.Context) error { return nil }

func TestQuote(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{doc: StoreSettings{
		ShippingFee:       40,
		FreeShippingAbove: 500,
	}})

	tests := []struct {
		name     string
		subtotal float64
		want     float64
	}{
		{"below threshold pays the fee", 100, 40},
		{"exactly at threshold ships free", 500, 0},
		{"above threshold ships free", 1200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Quote(context.Background(), tt.subtotal)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Quote(%v) = %v, want %v", tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestQuoteNoFreeShippingConfigured(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{doc: StoreSettings{ShippingFee: 40}})

	got, err := svc.Quote(context.Background(), 10000)
	if err != nil {
		t.Fatal(err)
	}
	if got != 40 {
		t.Errorf("Quote = %v, want 40 when no threshold is set", got)
	}
}
