package certification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Certification is an organic/quality label products can carry, e.g. USDA
// Organic or India Organic.
type Certification struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug" bson:"slug"`
	Issuer      string             `json:"issuer,omitempty" bson:"issuer,omitempty"`
	Logo        string             `json:"logo,omitempty" bson:"logo,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

type UpsertCertificationRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Issuer      string `json:"issuer"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}
