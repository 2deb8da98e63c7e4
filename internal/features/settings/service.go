package settings

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SettingsService interface {
	Get(ctx context.Context) (*StoreSettings, error)
	Update(ctx context.Context, req *UpdateSettingsRequest, updatedBy primitive.ObjectID) (*StoreSettings, error)

	// Quote implements the shipping policy used at checkout.
	Quote(ctx context.Context, subtotal float64) (float64, error)
}

type SettingsServiceImpl struct {
	repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) SettingsService {
	return &SettingsServiceImpl{repo: repo}
}

func (s *SettingsServiceImpl) Get(ctx context.Context) (*StoreSettings, error) {
	return s.repo.Get(ctx)
}

func (s *SettingsServiceImpl) Update(ctx context.Context, req *UpdateSettingsRequest, updatedBy primitive.ObjectID) (*StoreSettings, error) {
	set := bson.M{"updated_by": updatedBy}
	if req.StoreName != nil {
		set["store_name"] = *req.StoreName
	}
	if req.ContactEmail != nil {
		set["contact_email"] = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		set["contact_phone"] = *req.ContactPhone
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.Currency != nil {
		set["currency"] = *req.Currency
	}
	if req.TaxRatePercent != nil {
		set["tax_rate_percent"] = *req.TaxRatePercent
	}
	if req.ShippingFee != nil {
		set["shipping_fee"] = *req.ShippingFee
	}
	if req.FreeShippingAbove != nil {
		set["free_shipping_above"] = *req.FreeShippingAbove
	}
	if req.LowStockAlerts != nil {
		set["low_stock_alerts"] = *req.LowStockAlerts
	}
	if req.MaintenanceMode != nil {
		set["maintenance_mode"] = *req.MaintenanceMode
	}
	return s.repo.Update(ctx, set)
}

func (s *SettingsServiceImpl) Quote(ctx context.Context, subtotal float64) (float64, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return 0, err
	}
	if cfg.FreeShippingAbove > 0 && subtotal >= cfg.FreeShippingAbove {
		return 0, nil
	}
	return cfg.ShippingFee, nil
}
