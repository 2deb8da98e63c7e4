package role

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role groups permissions under an integer privilege level. Level 1 is the
// most privileged; the three built-in roles (super-admin 1, store-manager 2,
// customer 3) are flagged as system roles and protected from deletion and
// core-field edits.
type Role struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name"`
	Slug         string               `json:"slug" bson:"slug"`
	Description  string               `json:"description,omitempty" bson:"description,omitempty"`
	Level        int                  `json:"level" bson:"level"`
	Permissions  []primitive.ObjectID `json:"permissions" bson:"permissions"`
	IsSystemRole bool                 `json:"is_system_role" bson:"is_system_role"`
	IsActive     bool                 `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at" bson:"updated_at"`
}

// CreateRoleRequest is the admin payload for a new role. Level protection
// applies only on update, so any level in range is accepted here.
type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Level       int      `json:"level"`
	Permissions []string `json:"permissions"`
}

// UpdateRoleRequest carries optional fields; nil means unchanged.
type UpdateRoleRequest struct {
	Name        *string  `json:"name"`
	Slug        *string  `json:"slug"`
	Description *string  `json:"description"`
	Level       *int     `json:"level"`
	Permissions []string `json:"permissions"`
	IsActive    *bool    `json:"is_active"`
}
