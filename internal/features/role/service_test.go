package role

import (
	"context"
	"errors"
	"testing"

	"greenbasket/internal/features/permission"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRoleRepo struct {
	roles map[primitive.ObjectID]*Role
}

func newFakeRoleRepo(roles ...*Role) *fakeRoleRepo {
	r := &fakeRoleRepo{roles: make(map[primitive.ObjectID]*Role)}
	for _, role := range roles {
		if role.ID.IsZero() {
			role.ID = primitive.NewObjectID()
		}
		r.roles[role.ID] = role
	}
	return r
}

func (r *fakeRoleRepo) Create(_ context.Context, role *Role) error {
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}
	r.roles[role.ID] = role
	return nil
}

func (r *fakeRoleRepo) FindByID(ctx context.Context, id string) (*Role, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	return r.FindByObjectID(ctx, oid)
}

func (r *fakeRoleRepo) FindByObjectID(_ context.Context, id primitive.ObjectID) (*Role, error) {
	if role, ok := r.roles[id]; ok {
		copied := *role
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeRoleRepo) FindBySlug(_ context.Context, slug string) (*Role, error) {
	for _, role := range r.roles {
		if role.Slug == slug {
			copied := *role
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeRoleRepo) List(_ context.Context) ([]Role, error) {
	var out []Role
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *fakeRoleRepo) Update(_ context.Context, id primitive.ObjectID, update bson.M) (*Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for k, v := range update {
		switch k {
		case "name":
			role.Name = v.(string)
		case "slug":
			role.Slug = v.(string)
		case "description":
			role.Description = v.(string)
		case "level":
			role.Level = v.(int)
		case "is_active":
			role.IsActive = v.(bool)
		case "permissions":
			role.Permissions = v.([]primitive.ObjectID)
		}
	}
	copied := *role
	return &copied, nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.roles[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.roles, id)
	return nil
}

func (r *fakeRoleRepo) EnsureIndexes(context.Context) error { return nil }

type fakePermRepo struct {
	perms map[primitive.ObjectID]permission.Permission
}

func newFakePermRepo(perms ...permission.Permission) *fakePermRepo {
	r := &fakePermRepo{perms: make(map[primitive.ObjectID]permission.Permission)}
	for _, p := range perms {
		r.perms[p.ID] = p
	}
	return r
}

func (r *fakePermRepo) FindBySlug(_ context.Context, slug string) (*permission.Permission, error) {
	for _, p := range r.perms {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakePermRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]permission.Permission, error) {
	var out []permission.Permission
	for _, id := range ids {
		if p, ok := r.perms[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePermRepo) ListActive(_ context.Context) ([]permission.Permission, error) {
	var out []permission.Permission
	for _, p := range r.perms {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePermRepo) List(_ context.Context) ([]permission.Permission, error) {
	var out []permission.Permission
	for _, p := range r.perms {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePermRepo) SetActive(context.Context, string, bool) error     { return nil }
func (r *fakePermRepo) UpsertBySlug(context.Context, *permission.Permission) error { return nil }
func (r *fakePermRepo) EnsureIndexes(context.Context) error               { return nil }

type fakeUserCounter struct {
	counts map[primitive.ObjectID]int64
}

func (c *fakeUserCounter) CountByRole(_ context.Context, roleID primitive.ObjectID) (int64, error) {
	return c.counts[roleID], nil
}

func TestDeleteRoleProtections(t *testing.T) {
	system := &Role{ID: primitive.NewObjectID(), Name: "Customer", Slug: "customer", Level: 3, IsSystemRole: true, IsActive: true}
	inUse := &Role{ID: primitive.NewObjectID(), Name: "Packer", Slug: "packer", Level: 4, IsActive: true}
	unused := &Role{ID: primitive.NewObjectID(), Name: "Auditor", Slug: "auditor", Level: 5, IsActive: true}

	repo := newFakeRoleRepo(system, inUse, unused)
	users := &fakeUserCounter{counts: map[primitive.ObjectID]int64{inUse.ID: 3}}
	svc := NewRoleService(repo, newFakePermRepo(), users)

	// System roles are never deletable, even with zero referencing users
	if err := svc.DeleteRole(context.Background(), system.ID.Hex()); !errors.Is(err, ErrSystemRoleDelete) {
		t.Errorf("expected ErrSystemRoleDelete, got %v", err)
	}

	// Referenced roles fail with a count-bearing error
	err := svc.DeleteRole(context.Background(), inUse.ID.Hex())
	var inUseErr *RoleInUseError
	if !errors.As(err, &inUseErr) {
		t.Fatalf("expected RoleInUseError, got %v", err)
	}
	if inUseErr.Count != 3 {
		t.Errorf("expected count 3, got %d", inUseErr.Count)
	}

	// Unreferenced custom roles delete cleanly
	if err := svc.DeleteRole(context.Background(), unused.ID.Hex()); err != nil {
		t.Errorf("expected delete to succeed, got %v", err)
	}

	if err := svc.DeleteRole(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestUpdateSystemRoleFieldProtection(t *testing.T) {
	system := &Role{ID: primitive.NewObjectID(), Name: "Store Manager", Slug: "store-manager", Level: 2, IsSystemRole: true, IsActive: true}
	perm := permission.Permission{ID: primitive.NewObjectID(), Slug: "orders.read", IsActive: true}

	repo := newFakeRoleRepo(system)
	svc := NewRoleService(repo, newFakePermRepo(perm), &fakeUserCounter{})

	name := "Renamed"
	if _, err := svc.UpdateRole(context.Background(), system.ID.Hex(), &UpdateRoleRequest{Name: &name}); !errors.Is(err, ErrSystemRoleFields) {
		t.Errorf("expected ErrSystemRoleFields for name change, got %v", err)
	}

	level := 5
	if _, err := svc.UpdateRole(context.Background(), system.ID.Hex(), &UpdateRoleRequest{Level: &level}); !errors.Is(err, ErrSystemRoleFields) {
		t.Errorf("expected ErrSystemRoleFields for level change, got %v", err)
	}

	// The permission set may still change through the same path
	updated, err := svc.UpdateRole(context.Background(), system.ID.Hex(), &UpdateRoleRequest{Permissions: []string{perm.ID.Hex()}})
	if err != nil {
		t.Fatalf("permission update on system role should succeed, got %v", err)
	}
	if len(updated.Permissions) != 1 || updated.Permissions[0] != perm.ID {
		t.Errorf("expected permission set to be replaced")
	}
}

func TestCreateRole(t *testing.T) {
	existing := &Role{ID: primitive.NewObjectID(), Name: "Customer", Slug: "customer", Level: 3, IsSystemRole: true}
	activePerm := permission.Permission{ID: primitive.NewObjectID(), Slug: "orders.read", IsActive: true}
	inactivePerm := permission.Permission{ID: primitive.NewObjectID(), Slug: "users.delete", IsActive: false}

	repo := newFakeRoleRepo(existing)
	svc := NewRoleService(repo, newFakePermRepo(activePerm, inactivePerm), &fakeUserCounter{})

	if _, err := svc.CreateRole(context.Background(), &CreateRoleRequest{Name: "Customer", Slug: "customer", Level: 3}); !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("expected ErrDuplicateSlug, got %v", err)
	}

	if _, err := svc.CreateRole(context.Background(), &CreateRoleRequest{Name: "Bad", Level: 0}); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}

	// Inactive permissions cannot be assigned
	if _, err := svc.CreateRole(context.Background(), &CreateRoleRequest{
		Name: "Support", Level: 4, Permissions: []string{inactivePerm.ID.Hex()},
	}); !errors.Is(err, ErrPermissionNotFound) {
		t.Errorf("expected ErrPermissionNotFound for inactive permission, got %v", err)
	}

	// Level protection applies only at the update boundary: creating a new
	// level-1 role is accepted here
	created, err := svc.CreateRole(context.Background(), &CreateRoleRequest{
		Name: "Owner", Level: 1, Permissions: []string{activePerm.ID.Hex()},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Slug != "owner" {
		t.Errorf("expected slug derived from name, got %q", created.Slug)
	}
	if created.IsSystemRole {
		t.Error("created roles must not be system roles")
	}
	if len(created.PermissionDocs) != 1 || created.PermissionDocs[0].Slug != "orders.read" {
		t.Error("expected resolved permission docs on response")
	}
}
