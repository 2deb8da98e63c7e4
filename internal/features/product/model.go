package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Unit is the measure a product is sold in.
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitGram     Unit = "g"
	UnitLitre    Unit = "l"
	UnitMillilit Unit = "ml"
	UnitPiece    Unit = "piece"
	UnitPack     Unit = "pack"
	UnitDozen    Unit = "dozen"
)

// NutritionFacts per 100g/100ml, as printed on the label.
type NutritionFacts struct {
	Calories float64 `json:"calories,omitempty" bson:"calories,omitempty"`
	Protein  float64 `json:"protein,omitempty" bson:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty" bson:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty" bson:"fat,omitempty"`
	Fiber    float64 `json:"fiber,omitempty" bson:"fiber,omitempty"`
}

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug" bson:"slug"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Images      []string           `json:"images" bson:"images"`

	// Category and brand are always object references. Certifications carry
	// the organic labels the product is allowed to display.
	Category       primitive.ObjectID   `json:"category" bson:"category"`
	Brand          *primitive.ObjectID  `json:"brand,omitempty" bson:"brand,omitempty"`
	Certifications []primitive.ObjectID `json:"certifications" bson:"certifications"`

	Price     float64 `json:"price" bson:"price"`
	SalePrice float64 `json:"sale_price,omitempty" bson:"sale_price,omitempty"`
	Unit      Unit    `json:"unit" bson:"unit"`
	UnitValue float64 `json:"unit_value,omitempty" bson:"unit_value,omitempty"`
	SKU       string  `json:"sku,omitempty" bson:"sku,omitempty"`

	Stock             int `json:"stock" bson:"stock"`
	LowStockThreshold int `json:"low_stock_threshold" bson:"low_stock_threshold"`

	IsOrganic  bool            `json:"is_organic" bson:"is_organic"`
	IsFeatured bool            `json:"is_featured" bson:"is_featured"`
	Nutrition  *NutritionFacts `json:"nutrition,omitempty" bson:"nutrition,omitempty"`
	Tags       []string        `json:"tags" bson:"tags"`

	RatingAvg   float64 `json:"rating_avg" bson:"rating_avg"`
	RatingCount int     `json:"rating_count" bson:"rating_count"`
	SoldCount   int     `json:"sold_count" bson:"sold_count"`

	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// EffectivePrice is the price the storefront charges right now.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice > 0 && p.SalePrice < p.Price {
		return p.SalePrice
	}
	return p.Price
}

// InStock reports whether the product can currently be ordered.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// LowStock reports whether the product is at or below its alert threshold.
func (p *Product) LowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

type CreateProductRequest struct {
	Name              string          `json:"name"`
	Slug              string          `json:"slug"`
	Description       string          `json:"description"`
	Images            []string        `json:"images"`
	Category          string          `json:"category"`
	Brand             string          `json:"brand"`
	Certifications    []string        `json:"certifications"`
	Price             float64         `json:"price"`
	SalePrice         float64         `json:"sale_price"`
	Unit              Unit            `json:"unit"`
	UnitValue         float64         `json:"unit_value"`
	SKU               string          `json:"sku"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	IsOrganic         bool            `json:"is_organic"`
	IsFeatured        bool            `json:"is_featured"`
	Nutrition         *NutritionFacts `json:"nutrition"`
	Tags              []string        `json:"tags"`
}

type UpdateProductRequest struct {
	Name              *string         `json:"name"`
	Slug              *string         `json:"slug"`
	Description       *string         `json:"description"`
	Images            []string        `json:"images"`
	Category          *string         `json:"category"`
	Brand             *string         `json:"brand"`
	Certifications    []string        `json:"certifications"`
	Price             *float64        `json:"price"`
	SalePrice         *float64        `json:"sale_price"`
	Unit              *Unit           `json:"unit"`
	UnitValue         *float64        `json:"unit_value"`
	SKU               *string         `json:"sku"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
	IsOrganic         *bool           `json:"is_organic"`
	IsFeatured        *bool           `json:"is_featured"`
	Nutrition         *NutritionFacts `json:"nutrition"`
	Tags              []string        `json:"tags"`
	IsActive          *bool           `json:"is_active"`
}

// BrowseQuery is everything the storefront listing accepts.
type BrowseQuery struct {
	Search     string
	Category   string
	Brand      string
	MinPrice   float64
	MaxPrice   float64
	Organic    *bool
	Featured   *bool
	InStock    *bool
	Tags       []string
	Sort       string
	Page       int64
	PageSize   int64
	ShowHidden bool
}
