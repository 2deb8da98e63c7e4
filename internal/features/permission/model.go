package permission

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Action is the fixed verb vocabulary for permissions
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
)

// Permission is a single grantable capability. Authorization checks key off
// the slug, never the ObjectID, so slugs are globally unique and stable.
type Permission struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug" bson:"slug"`
	Category    string             `json:"category" bson:"category"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Resource    string             `json:"resource" bson:"resource"`
	Action      Action             `json:"action" bson:"action"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
