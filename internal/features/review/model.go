package review

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is one customer's rating of a product. The user's name is
// snapshotted so deleted accounts keep their reviews readable.
type Review struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Product  primitive.ObjectID `json:"product" bson:"product"`
	User     primitive.ObjectID `json:"user" bson:"user"`
	UserName string             `json:"user_name" bson:"user_name"`

	Rating  int    `json:"rating" bson:"rating"`
	Title   string `json:"title,omitempty" bson:"title,omitempty"`
	Comment string `json:"comment,omitempty" bson:"comment,omitempty"`

	// Reviews publish immediately; moderation can pull one back.
	IsApproved bool `json:"is_approved" bson:"is_approved"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

type ListReviewsQuery struct {
	Product  string
	Approved *bool
	Page     int64
}
