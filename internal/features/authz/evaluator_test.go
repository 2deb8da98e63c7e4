package authz

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func perm(slug string, active bool) PermissionView {
	return PermissionView{ID: primitive.NewObjectID(), Slug: slug, IsActive: active}
}

func identity(level int, rolePerms, directPerms []PermissionView) *Identity {
	return &Identity{
		ID:       primitive.NewObjectID(),
		IsActive: true,
		Role: &RoleView{
			ID:          primitive.NewObjectID(),
			Slug:        "test-role",
			Level:       level,
			IsActive:    true,
			Permissions: rolePerms,
		},
		Direct: directPerms,
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name string
		id   *Identity
		slug string
		want bool
	}{
		{
			name: "nil identity denied",
			id:   nil,
			slug: "products.read",
			want: false,
		},
		{
			name: "inactive identity denied everywhere",
			id: func() *Identity {
				id := identity(3, []PermissionView{perm("products.read", true)}, nil)
				id.IsActive = false
				return id
			}(),
			slug: "products.read",
			want: false,
		},
		{
			name: "super admin granted without explicit grant",
			id:   identity(1, nil, nil),
			slug: "orders.refund",
			want: true,
		},
		{
			name: "role permission grants",
			id:   identity(2, []PermissionView{perm("orders.read", true)}, nil),
			slug: "orders.read",
			want: true,
		},
		{
			name: "direct permission additive over role",
			id:   identity(3, []PermissionView{perm("products.read", true)}, []PermissionView{perm("orders.refund", true)}),
			slug: "orders.refund",
			want: true,
		},
		{
			name: "inactive permission never grants",
			id:   identity(2, []PermissionView{perm("users.delete", false)}, []PermissionView{perm("users.delete", false)}),
			slug: "users.delete",
			want: false,
		},
		{
			name: "unknown slug denied",
			id:   identity(2, []PermissionView{perm("orders.read", true)}, nil),
			slug: "no.such.permission",
			want: false,
		},
		{
			name: "no role no direct denied",
			id:   &Identity{ID: primitive.NewObjectID(), IsActive: true},
			slug: "products.read",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPermission(tt.id, tt.slug); got != tt.want {
				t.Errorf("HasPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasAnyAndAllVacuous(t *testing.T) {
	id := identity(3, nil, nil)

	if !HasAnyPermission(id, nil) {
		t.Error("HasAnyPermission with empty list should be true")
	}
	if !HasAllPermissions(id, nil) {
		t.Error("HasAllPermissions with empty list should be true")
	}
	// Even for a nil identity the vacuous case holds
	if !HasAnyPermission(nil, []string{}) {
		t.Error("HasAnyPermission(nil, empty) should be true")
	}
}

func TestHasAnyPermission(t *testing.T) {
	id := identity(3, []PermissionView{perm("products.read", true)}, nil)

	if !HasAnyPermission(id, []string{"users.delete", "products.read"}) {
		t.Error("expected grant when one of the slugs is held")
	}
	if HasAnyPermission(id, []string{"users.delete", "orders.refund"}) {
		t.Error("expected deny when no slug is held")
	}
}

func TestHasAllPermissions(t *testing.T) {
	id := identity(3, []PermissionView{perm("products.read", true), perm("orders.read", true)}, nil)

	if !HasAllPermissions(id, []string{"products.read", "orders.read"}) {
		t.Error("expected grant when all slugs are held")
	}
	if HasAllPermissions(id, []string{"products.read", "users.delete"}) {
		t.Error("expected deny when one slug is missing")
	}
}

func TestHasMinimumRoleLevel(t *testing.T) {
	tests := []struct {
		name     string
		id       *Identity
		minLevel int
		want     bool
	}{
		{"level 1 passes level 2 gate", identity(1, nil, nil), 2, true},
		{"level 2 passes level 2 gate", identity(2, nil, nil), 2, true},
		{"level 3 fails level 2 gate", identity(3, nil, nil), 2, false},
		{"no role fails", &Identity{IsActive: true}, 5, false},
		{"nil identity fails", nil, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasMinimumRoleLevel(tt.id, tt.minLevel); got != tt.want {
				t.Errorf("HasMinimumRoleLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTierMapping(t *testing.T) {
	tests := []struct {
		level int
		want  Tier
	}{
		{1, TierSuperAdmin},
		{2, TierOperator},
		{3, TierCustomer},
		{10, TierCustomer},
	}

	for _, tt := range tests {
		if got := TierForLevel(tt.level); got != tt.want {
			t.Errorf("TierForLevel(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}

	var noRole *Identity
	if noRole.Tier() != TierCustomer {
		t.Error("nil identity should map to customer tier")
	}
}

func TestOwnsResource(t *testing.T) {
	owner := identity(3, nil, nil)
	other := identity(3, nil, nil)
	manager := identity(2, nil, nil)

	resourceOwner := owner.ID

	if !OwnsResource(owner, resourceOwner) {
		t.Error("owner should pass ownership check")
	}
	if OwnsResource(other, resourceOwner) {
		t.Error("non-owner customer should fail ownership check")
	}
	if !OwnsResource(manager, resourceOwner) {
		t.Error("operator tier should bypass ownership check")
	}
	if OwnsResource(nil, resourceOwner) {
		t.Error("nil identity should fail ownership check")
	}
}

func TestIsAdmin(t *testing.T) {
	legacy := &Identity{IsActive: true, IsAdmin: true}
	if !IsAdmin(legacy) {
		t.Error("legacy isAdmin flag should pass")
	}
	if !IsAdmin(identity(2, nil, nil)) {
		t.Error("operator tier should pass")
	}
	if IsAdmin(identity(3, nil, nil)) {
		t.Error("customer tier without flag should fail")
	}
}

func TestEffectivePermissions(t *testing.T) {
	shared := perm("orders.read", true)
	direct := PermissionView{ID: primitive.NewObjectID(), Slug: "orders.read", Name: "Direct Copy", IsActive: true}

	id := identity(3,
		[]PermissionView{shared, perm("products.read", true), perm("users.delete", false)},
		[]PermissionView{direct, perm("orders.refund", true), perm("reviews.read", false)},
	)

	perms := EffectivePermissions(id)

	bySlug := make(map[string]PermissionView)
	for _, p := range perms {
		if _, dup := bySlug[p.Slug]; dup {
			t.Errorf("duplicate slug %q in effective set", p.Slug)
		}
		bySlug[p.Slug] = p
	}

	if len(perms) != 3 {
		t.Fatalf("expected 3 effective permissions, got %d", len(perms))
	}
	for _, want := range []string{"orders.read", "products.read", "orders.refund"} {
		if _, ok := bySlug[want]; !ok {
			t.Errorf("missing %q in effective set", want)
		}
	}
	// Inactive records are filtered even when referenced
	for _, absent := range []string{"users.delete", "reviews.read"} {
		if _, ok := bySlug[absent]; ok {
			t.Errorf("inactive permission %q should not appear", absent)
		}
	}
	// Direct metadata wins for the shared slug
	if bySlug["orders.read"].Name != "Direct Copy" {
		t.Errorf("direct permission metadata should take precedence, got %q", bySlug["orders.read"].Name)
	}

	if got := EffectivePermissions(nil); got != nil {
		t.Error("nil identity should have no effective permissions")
	}
	inactive := identity(3, []PermissionView{shared}, nil)
	inactive.IsActive = false
	if got := EffectivePermissions(inactive); got != nil {
		t.Error("inactive identity should have no effective permissions")
	}
}
