package category

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Slug        string              `json:"slug" bson:"slug"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	Image       string              `json:"image,omitempty" bson:"image,omitempty"`
	Parent      *primitive.ObjectID `json:"parent,omitempty" bson:"parent,omitempty"`
	SortOrder   int                 `json:"sort_order" bson:"sort_order"`
	IsActive    bool                `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Parent      *string `json:"parent"`
	SortOrder   int     `json:"sort_order"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Parent      *string `json:"parent"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}
