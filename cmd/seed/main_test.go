package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"greenbasket/internal/features/permission"
	"greenbasket/internal/features/role"
	"greenbasket/internal/features/user"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type memPermRepo struct {
	perms map[string]*permission.Permission
}

func newMemPermRepo() *memPermRepo {
	return &memPermRepo{perms: map[string]*permission.Permission{}}
}

func (r *memPermRepo) FindBySlug(ctx context.Context, slug string) (*permission.Permission, error) {
	if p, ok := r.perms[slug]; ok {
		return p, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memPermRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]permission.Permission, error) {
	return nil, nil
}

func (r *memPermRepo) ListActive(ctx context.Context) ([]permission.Permission, error) {
	return r.List(ctx)
}

func (r *memPermRepo) List(ctx context.Context) ([]permission.Permission, error) {
	out := make([]permission.Permission, 0, len(r.perms))
	for _, p := range r.perms {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memPermRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

func (r *memPermRepo) UpsertBySlug(ctx context.Context, p *permission.Permission) error {
	if existing, ok := r.perms[p.Slug]; ok {
		p.ID = existing.ID
		return nil
	}
	p.ID = primitive.NewObjectID()
	p.IsActive = true
	r.perms[p.Slug] = p
	return nil
}

func (r *memPermRepo) EnsureIndexes(ctx context.Context) error { return nil }

// memRoleRepo mimics the real repository's update contract: the document is
// wrapped in $set before hitting the database, so operator keys inside it
// are invalid.
type memRoleRepo struct {
	roles map[string]*role.Role
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{roles: map[string]*role.Role{}}
}

func (r *memRoleRepo) Create(ctx context.Context, rl *role.Role) error {
	if rl.ID.IsZero() {
		rl.ID = primitive.NewObjectID()
	}
	r.roles[rl.Slug] = rl
	return nil
}

func (r *memRoleRepo) FindByID(ctx context.Context, id string) (*role.Role, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *memRoleRepo) FindByObjectID(ctx context.Context, id primitive.ObjectID) (*role.Role, error) {
	for _, rl := range r.roles {
		if rl.ID == id {
			return rl, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memRoleRepo) FindBySlug(ctx context.Context, slug string) (*role.Role, error) {
	if rl, ok := r.roles[slug]; ok {
		return rl, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memRoleRepo) List(ctx context.Context) ([]role.Role, error) { return nil, nil }

func (r *memRoleRepo) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*role.Role, error) {
	for key := range update {
		if strings.HasPrefix(key, "$") {
			return nil, mongo.CommandError{
				Code:    52,
				Message: "The dollar ($) prefixed field '" + key + "' is not allowed",
			}
		}
	}
	rl, err := r.FindByObjectID(ctx, id)
	if err != nil {
		return nil, err
	}
	if grants, ok := update["permissions"].([]primitive.ObjectID); ok {
		rl.Permissions = grants
	}
	rl.UpdatedAt = time.Now()
	return rl, nil
}

func (r *memRoleRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (r *memRoleRepo) EnsureIndexes(ctx context.Context) error { return nil }

type memUserRepo struct {
	users map[string]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*user.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, u *user.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.Email] = u
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memUserRepo) List(ctx context.Context, filter bson.M, page, pageSize int64) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (r *memUserRepo) Update(ctx context.Context, id primitive.ObjectID, update bson.M) (*user.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *memUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (r *memUserRepo) CountByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (r *memUserRepo) SetFailedLogin(ctx context.Context, id primitive.ObjectID, attempts int, lockUntil *time.Time) error {
	return nil
}

func (r *memUserRepo) ResetLoginAttempts(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (r *memUserRepo) RecordSeen(ctx context.Context, id primitive.ObjectID, ip string, at time.Time) error {
	return nil
}

func (r *memUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

func TestRunSeedFreshDatabase(t *testing.T) {
	permRepo := newMemPermRepo()
	roleRepo := newMemRoleRepo()
	userRepo := newMemUserRepo()

	if err := runSeed(context.Background(), permRepo, roleRepo, userRepo, zap.NewNop()); err != nil {
		t.Fatalf("seeding a fresh database failed: %v", err)
	}

	if len(permRepo.perms) != len(permission.Catalog) {
		t.Errorf("expected %d permissions, got %d", len(permission.Catalog), len(permRepo.perms))
	}
	for _, seed := range permission.SystemRoles {
		rl, err := roleRepo.FindBySlug(context.Background(), seed.Slug)
		if err != nil {
			t.Fatalf("system role %s was not created", seed.Slug)
		}
		if len(rl.Permissions) != len(seed.Permissions) {
			t.Errorf("role %s: expected %d grants, got %d", seed.Slug, len(seed.Permissions), len(rl.Permissions))
		}
	}
	if _, err := userRepo.FindByEmail(context.Background(), "admin@greenbasket.local"); err != nil {
		t.Error("expected the initial admin user to be created")
	}
}

func TestRunSeedIsIdempotent(t *testing.T) {
	permRepo := newMemPermRepo()
	roleRepo := newMemRoleRepo()
	userRepo := newMemUserRepo()

	if err := runSeed(context.Background(), permRepo, roleRepo, userRepo, zap.NewNop()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	manager, _ := roleRepo.FindBySlug(context.Background(), "store-manager")
	firstID := manager.ID
	// Simulate an admin having pruned the role's grants between runs.
	manager.Permissions = nil

	if err := runSeed(context.Background(), permRepo, roleRepo, userRepo, zap.NewNop()); err != nil {
		t.Fatalf("rerun against an already seeded database failed: %v", err)
	}

	manager, err := roleRepo.FindBySlug(context.Background(), "store-manager")
	if err != nil {
		t.Fatal("store-manager disappeared on rerun")
	}
	if manager.ID != firstID {
		t.Error("rerun recreated the role instead of updating it")
	}
	if len(manager.Permissions) == 0 {
		t.Error("rerun did not refresh the role's grants")
	}
	if len(permRepo.perms) != len(permission.Catalog) {
		t.Errorf("rerun duplicated permissions: %d", len(permRepo.perms))
	}
}
