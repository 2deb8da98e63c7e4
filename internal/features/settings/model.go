package settings

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoreSettings is a single document keyed by a fixed slug. Admin edits
// update it in place; the storefront reads it on every quote.
type StoreSettings struct {
	ID   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Key  string             `json:"-" bson:"key"`

	StoreName    string `json:"store_name" bson:"store_name"`
	ContactEmail string `json:"contact_email" bson:"contact_email"`
	ContactPhone string `json:"contact_phone,omitempty" bson:"contact_phone,omitempty"`
	Address      string `json:"address,omitempty" bson:"address,omitempty"`

	Currency          string  `json:"currency" bson:"currency"`
	TaxRatePercent    float64 `json:"tax_rate_percent" bson:"tax_rate_percent"`
	ShippingFee       float64 `json:"shipping_fee" bson:"shipping_fee"`
	FreeShippingAbove float64 `json:"free_shipping_above" bson:"free_shipping_above"`

	LowStockAlerts  bool `json:"low_stock_alerts" bson:"low_stock_alerts"`
	MaintenanceMode bool `json:"maintenance_mode" bson:"maintenance_mode"`

	UpdatedBy *primitive.ObjectID `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}

// settingsKey pins the singleton document.
const settingsKey = "store"

// defaults are written once at startup if no settings document exists.
func defaults() *StoreSettings {
	return &StoreSettings{
		Key:               settingsKey,
		StoreName:         "GreenBasket",
		ContactEmail:      "hello@greenbasket.example",
		Currency:          "INR",
		ShippingFee:       40,
		FreeShippingAbove: 500,
		LowStockAlerts:    true,
	}
}

type UpdateSettingsRequest struct {
	StoreName         *string  `json:"store_name"`
	ContactEmail      *string  `json:"contact_email"`
	ContactPhone      *string  `json:"contact_phone"`
	Address           *string  `json:"address"`
	Currency          *string  `json:"currency"`
	TaxRatePercent    *float64 `json:"tax_rate_percent"`
	ShippingFee       *float64 `json:"shipping_fee"`
	FreeShippingAbove *float64 `json:"free_shipping_above"`
	LowStockAlerts    *bool    `json:"low_stock_alerts"`
	MaintenanceMode   *bool    `json:"maintenance_mode"`
}
