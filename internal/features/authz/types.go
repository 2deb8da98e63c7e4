package authz

import "go.mongodb.org/mongo-driver/bson/primitive"

// Tier is the explicit privilege band derived from a role level. Call sites
// ask for the tier instead of comparing raw level integers.
type Tier int

const (
	// TierCustomer is the default band for any identity without elevated access
	TierCustomer Tier = iota
	// TierOperator covers store staff (role level 2) and anything above
	TierOperator
	// TierSuperAdmin is level 1: unconditionally all-permissioned
	TierSuperAdmin
)

const (
	levelSuperAdmin = 1
	levelOperator   = 2
)

// TierForLevel is the single source of truth for the level-to-tier mapping.
// Lower level means more privilege.
func TierForLevel(level int) Tier {
	switch {
	case level <= levelSuperAdmin:
		return TierSuperAdmin
	case level <= levelOperator:
		return TierOperator
	default:
		return TierCustomer
	}
}

// PermissionView is a permission as the evaluator sees it: fully loaded,
// keyed by slug.
type PermissionView struct {
	ID       primitive.ObjectID
	Name     string
	Slug     string
	Category string
	Resource string
	Action   string
	IsActive bool
}

// RoleView is a role with its permission set materialized.
type RoleView struct {
	ID          primitive.ObjectID
	Name        string
	Slug        string
	Level       int
	IsActive    bool
	Permissions []PermissionView
}

// Identity is the authenticated principal the evaluator decides over. The
// session gate builds it fresh per request; the evaluator never touches
// storage.
type Identity struct {
	ID       primitive.ObjectID
	Name     string
	Email    string
	IsActive bool
	IsAdmin  bool
	Role     *RoleView
	Direct   []PermissionView
}

// Tier returns the identity's privilege band. No role means customer tier.
func (id *Identity) Tier() Tier {
	if id == nil || id.Role == nil {
		return TierCustomer
	}
	return TierForLevel(id.Role.Level)
}
