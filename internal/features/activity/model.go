package activity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entry is one recorded admin or user action, e.g. "role.deleted" on a Role.
type Entry struct {
	ID          primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	User        primitive.ObjectID     `json:"user" bson:"user"`
	Action      string                 `json:"action" bson:"action"`
	Resource    string                 `json:"resource" bson:"resource"`
	ResourceID  *primitive.ObjectID    `json:"resource_id,omitempty" bson:"resource_id,omitempty"`
	Description string                 `json:"description,omitempty" bson:"description,omitempty"`
	IPAddress   string                 `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	UserAgent   string                 `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at" bson:"created_at"`
}
