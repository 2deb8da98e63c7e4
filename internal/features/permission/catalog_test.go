package permission

import "testing"

func catalogSlugs(t *testing.T) map[string]Definition {
	t.Helper()
	out := make(map[string]Definition, len(Catalog))
	for _, d := range Catalog {
		out[d.Slug] = d
	}
	return out
}

func TestCatalogSlugsUnique(t *testing.T) {
	seen := make(map[string]bool, len(Catalog))
	for _, d := range Catalog {
		if seen[d.Slug] {
			t.Errorf("duplicate slug %q", d.Slug)
		}
		seen[d.Slug] = true
	}
}

func TestCatalogDefinitionsComplete(t *testing.T) {
	for _, d := range Catalog {
		if d.Name == "" || d.Slug == "" || d.Category == "" || d.Resource == "" || d.Action == "" {
			t.Errorf("incomplete definition %+v", d)
		}
	}
}

func TestSystemRoleSeeds(t *testing.T) {
	byName := make(map[string]RoleSeed, len(SystemRoles))
	for _, r := range SystemRoles {
		byName[r.Slug] = r
	}

	super, ok := byName["super-admin"]
	if !ok {
		t.Fatal("super-admin seed missing")
	}
	if super.Level != 1 {
		t.Errorf("super-admin level = %d, want 1", super.Level)
	}
	if len(super.Permissions) != 0 {
		t.Errorf("super-admin lists %d permissions; level 1 bypasses checks and should list none", len(super.Permissions))
	}

	manager, ok := byName["store-manager"]
	if !ok {
		t.Fatal("store-manager seed missing")
	}
	if manager.Level != 2 {
		t.Errorf("store-manager level = %d, want 2", manager.Level)
	}
	managerHas := make(map[string]bool, len(manager.Permissions))
	for _, slug := range manager.Permissions {
		managerHas[slug] = true
	}
	if !managerHas["orders.read"] {
		t.Error("store-manager should carry orders.read")
	}
	if managerHas["users.delete"] {
		t.Error("store-manager must not carry users.delete")
	}

	customer, ok := byName["customer"]
	if !ok {
		t.Fatal("customer seed missing")
	}
	if customer.Level != 3 {
		t.Errorf("customer level = %d, want 3", customer.Level)
	}

	// Every seeded slug must resolve to a catalog entry.
	catalog := catalogSlugs(t)
	for _, r := range SystemRoles {
		for _, slug := range r.Permissions {
			if _, ok := catalog[slug]; !ok {
				t.Errorf("role %q references unknown permission %q", r.Slug, slug)
			}
		}
	}
}
