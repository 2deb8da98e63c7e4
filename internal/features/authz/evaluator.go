package authz

import "go.mongodb.org/mongo-driver/bson/primitive"

// HasPermission decides whether the identity holds the permission named by
// slug. Missing or inactive identities are denied outright; a super-admin is
// granted without consulting the permission sets. Direct permissions are
// checked before role permissions, and an inactive permission record never
// grants access even when referenced. Unknown slugs simply fail to match.
func HasPermission(id *Identity, slug string) bool {
	if id == nil || !id.IsActive {
		return false
	}

	if id.Tier() == TierSuperAdmin {
		return true
	}

	for _, p := range id.Direct {
		if p.Slug == slug && p.IsActive {
			return true
		}
	}

	if id.Role != nil {
		for _, p := range id.Role.Permissions {
			if p.Slug == slug && p.IsActive {
				return true
			}
		}
	}

	return false
}

// HasAnyPermission is true when at least one slug is held. An empty list is
// vacuously true.
func HasAnyPermission(id *Identity, slugs []string) bool {
	if len(slugs) == 0 {
		return true
	}
	for _, slug := range slugs {
		if HasPermission(id, slug) {
			return true
		}
	}
	return false
}

// HasAllPermissions is true when every slug is held. An empty list is
// vacuously true.
func HasAllPermissions(id *Identity, slugs []string) bool {
	for _, slug := range slugs {
		if !HasPermission(id, slug) {
			return false
		}
	}
	return true
}

// HasMinimumRoleLevel is true when the identity has a role at least as
// privileged as minLevel. Levels grow downward: level <= minLevel passes.
func HasMinimumRoleLevel(id *Identity, minLevel int) bool {
	if id == nil || id.Role == nil {
		return false
	}
	return id.Role.Level <= minLevel
}

// HasRole matches the role slug exactly.
func HasRole(id *Identity, roleSlug string) bool {
	if id == nil || id.Role == nil {
		return false
	}
	return id.Role.Slug == roleSlug
}

// IsAdmin mirrors the legacy flag: explicitly flagged admins or anyone at
// operator tier and above.
func IsAdmin(id *Identity) bool {
	if id == nil {
		return false
	}
	return id.IsAdmin || id.Tier() >= TierOperator
}

// OwnsResource is true when the identity owns the record (by owner id) or
// sits at operator tier or above.
func OwnsResource(id *Identity, ownerID primitive.ObjectID) bool {
	if id == nil {
		return false
	}
	if id.Tier() >= TierOperator {
		return true
	}
	return id.ID == ownerID
}

// EffectivePermissions returns the union of active role permissions and
// active direct permissions, deduplicated by slug. Direct permissions win on
// metadata conflicts for the same slug.
func EffectivePermissions(id *Identity) []PermissionView {
	if id == nil || !id.IsActive {
		return nil
	}

	bySlug := make(map[string]PermissionView)
	var order []string

	if id.Role != nil {
		for _, p := range id.Role.Permissions {
			if !p.IsActive {
				continue
			}
			if _, seen := bySlug[p.Slug]; !seen {
				order = append(order, p.Slug)
			}
			bySlug[p.Slug] = p
		}
	}

	for _, p := range id.Direct {
		if !p.IsActive {
			continue
		}
		if _, seen := bySlug[p.Slug]; !seen {
			order = append(order, p.Slug)
		}
		bySlug[p.Slug] = p
	}

	perms := make([]PermissionView, 0, len(order))
	for _, slug := range order {
		perms = append(perms, bySlug[slug])
	}
	return perms
}
