package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"greenbasket/internal/features/permission"
	"greenbasket/internal/features/role"
	"greenbasket/internal/features/user"
	"greenbasket/internal/middleware"
	"greenbasket/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[primitive.ObjectID]*user.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	u, ok := r.users[oid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) List(_ context.Context, _ bson.M, _, _ int64) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id primitive.ObjectID, update bson.M) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if set, ok := update["$set"].(bson.M); ok {
		if pw, ok := set["password"].(string); ok {
			u.Password = pw
		}
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (r *fakeUserRepo) SetFailedLogin(_ context.Context, id primitive.ObjectID, attempts int, lockUntil *time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.LoginAttempts = attempts
	u.LockUntil = lockUntil
	return nil
}

func (r *fakeUserRepo) ResetLoginAttempts(_ context.Context, id primitive.ObjectID) error {
	u, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.LoginAttempts = 0
	u.LockUntil = nil
	return nil
}

func (r *fakeUserRepo) RecordSeen(_ context.Context, id primitive.ObjectID, ip string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.LastLogin = &at
	u.LastLoginIP = ip
	return nil
}

func (r *fakeUserRepo) EnsureIndexes(_ context.Context) error { return nil }

type fakeRoleRepo struct {
	roles map[primitive.ObjectID]*role.Role
}

func newFakeRoleRepo(roles ...*role.Role) *fakeRoleRepo {
	r := &fakeRoleRepo{roles: map[primitive.ObjectID]*role.Role{}}
	for _, x := range roles {
		if x.ID.IsZero() {
			x.ID = primitive.NewObjectID()
		}
		r.roles[x.ID] = x
	}
	return r
}

func (r *fakeRoleRepo) Create(_ context.Context, x *role.Role) error {
	if x.ID.IsZero() {
		x.ID = primitive.NewObjectID()
	}
	r.roles[x.ID] = x
	return nil
}

func (r *fakeRoleRepo) FindByID(_ context.Context, id string) (*role.Role, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	return r.FindByObjectID(context.Background(), oid)
}

func (r *fakeRoleRepo) FindByObjectID(_ context.Context, id primitive.ObjectID) (*role.Role, error) {
	x, ok := r.roles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *x
	return &cp, nil
}

func (r *fakeRoleRepo) FindBySlug(_ context.Context, slug string) (*role.Role, error) {
	for _, x := range r.roles {
		if x.Slug == slug {
			cp := *x
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeRoleRepo) List(_ context.Context) ([]role.Role, error) { return nil, nil }

func (r *fakeRoleRepo) Update(_ context.Context, id primitive.ObjectID, _ bson.M) (*role.Role, error) {
	return r.FindByObjectID(context.Background(), id)
}

func (r *fakeRoleRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.roles, id)
	return nil
}

func (r *fakeRoleRepo) EnsureIndexes(_ context.Context) error { return nil }

type fakePermRepo struct {
	perms map[primitive.ObjectID]permission.Permission
}

func newFakePermRepo(perms ...permission.Permission) *fakePermRepo {
	r := &fakePermRepo{perms: map[primitive.ObjectID]permission.Permission{}}
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

func (r *fakePermRepo) ListActive(_ context.Context) ([]permission.Permission, error) { return nil, nil }
func (r *fakePermRepo) List(_ context.Context) ([]permission.Permission, error)       { return nil, nil }
func (r *fakePermRepo) SetActive(_ context.Context, _ string, _ bool) error           { return nil }
func (r *fakePermRepo) UpsertBySlug(_ context.Context, _ *permission.Permission) error {
	return nil
}
func (r *fakePermRepo) EnsureIndexes(_ context.Context) error { return nil }

func newTestService(users *fakeUserRepo, roles *fakeRoleRepo, perms *fakePermRepo) AuthService {
	utils.Configure("test-secret", time.Hour)
	return NewAuthService(users, roles, perms, zap.NewNop())
}

func TestLoginLockout(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse")
	if err != nil {
		t.Fatal(err)
	}
	u := &user.User{Email: "shopper@example.com", Password: hash, IsActive: true}
	repo := newFakeUserRepo(u)
	svc := newTestService(repo, newFakeRoleRepo(), newFakePermRepo())
	ctx := context.Background()

	bad := &LoginRequest{Email: "shopper@example.com", Password: "wrong"}

	for i := 1; i <= user.MaxLoginAttempts-1; i++ {
		_, err := svc.Login(ctx, bad, "127.0.0.1")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: err = %v, want ErrInvalidCredentials", i, err)
		}
	}
	if repo.users[u.ID].LockUntil != nil {
		t.Fatal("account locked before the final allowed attempt")
	}

	_, err = svc.Login(ctx, bad, "127.0.0.1")
	var locked *middleware.AccountLockedError
	if !errors.As(err, &locked) {
		t.Fatalf("final attempt: err = %v, want AccountLockedError", err)
	}
	if locked.RetryAfter() <= 0 {
		t.Error("lock should report a positive retry window")
	}

	// The right password is also refused while the lock holds.
	_, err = svc.Login(ctx, &LoginRequest{Email: "shopper@example.com", Password: "correct-horse"}, "127.0.0.1")
	if !errors.As(err, &locked) {
		t.Fatalf("login while locked: err = %v, want AccountLockedError", err)
	}
}

func TestLoginSuccessResetsAttempts(t *testing.T) {
	hash, _ := utils.HashPassword("correct-horse")
	u := &user.User{Email: "shopper@example.com", Password: hash, IsActive: true, LoginAttempts: 3}
	repo := newFakeUserRepo(u)
	svc := newTestService(repo, newFakeRoleRepo(), newFakePermRepo())

	resp, err := svc.Login(context.Background(),
		&LoginRequest{Email: "shopper@example.com", Password: "correct-horse"}, "10.0.0.1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a signed token")
	}
	if got := repo.users[u.ID].LoginAttempts; got != 0 {
		t.Errorf("attempts after success = %d, want 0", got)
	}
	if repo.users[u.ID].LastLoginIP != "10.0.0.1" {
		t.Errorf("last login ip = %q", repo.users[u.ID].LastLoginIP)
	}
}

func TestLoginExpiredLockRestartsCounter(t *testing.T) {
	hash, _ := utils.HashPassword("correct-horse")
	past := time.Now().Add(-time.Minute)
	u := &user.User{
		Email: "shopper@example.com", Password: hash, IsActive: true,
		LoginAttempts: user.MaxLoginAttempts, LockUntil: &past,
	}
	repo := newFakeUserRepo(u)
	svc := newTestService(repo, newFakeRoleRepo(), newFakePermRepo())

	_, err := svc.Login(context.Background(),
		&LoginRequest{Email: "shopper@example.com", Password: "wrong"}, "127.0.0.1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if got := repo.users[u.ID].LoginAttempts; got != 1 {
		t.Errorf("attempts after expired lock = %d, want 1", got)
	}
	if repo.users[u.ID].LockUntil != nil {
		t.Error("expired lock should be cleared on the next failure")
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	hash, _ := utils.HashPassword("correct-horse")
	u := &user.User{Email: "blocked@example.com", Password: hash, IsActive: false}
	svc := newTestService(newFakeUserRepo(u), newFakeRoleRepo(), newFakePermRepo())

	_, err := svc.Login(context.Background(),
		&LoginRequest{Email: "blocked@example.com", Password: "correct-horse"}, "127.0.0.1")
	if !errors.Is(err, middleware.ErrAccountInactive) {
		t.Fatalf("err = %v, want ErrAccountInactive", err)
	}
}

func TestLoadIdentityMaterialization(t *testing.T) {
	readPerm := permission.Permission{
		ID: primitive.NewObjectID(), Name: "View Orders", Slug: "orders.read",
		Category: "orders", IsActive: true,
	}
	refundPerm := permission.Permission{
		ID: primitive.NewObjectID(), Name: "Process Refunds", Slug: "orders.refund",
		Category: "orders", IsActive: true,
	}
	perms := newFakePermRepo(readPerm, refundPerm)

	manager := &role.Role{
		Name: "Store Manager", Slug: "store-manager", Level: 2, IsActive: true,
		Permissions: []primitive.ObjectID{readPerm.ID},
	}
	roles := newFakeRoleRepo(manager)

	u := &user.User{
		Name: "Pat", Email: "pat@example.com", IsActive: true,
		Role:        &manager.ID,
		Permissions: []primitive.ObjectID{refundPerm.ID},
	}
	users := newFakeUserRepo(u)
	svc := newTestService(users, roles, perms)

	id, err := svc.LoadIdentity(context.Background(), u.ID.Hex())
	if err != nil {
		t.Fatalf("LoadIdentity: %v", err)
	}
	if id.Role == nil || id.Role.Slug != "store-manager" {
		t.Fatal("role was not materialized")
	}
	if len(id.Role.Permissions) != 1 || id.Role.Permissions[0].Slug != "orders.read" {
		t.Errorf("role permissions = %+v", id.Role.Permissions)
	}
	if len(id.Direct) != 1 || id.Direct[0].Slug != "orders.refund" {
		t.Errorf("direct permissions = %+v", id.Direct)
	}
}

func TestLoadIdentityInactiveRoleConfersNothing(t *testing.T) {
	retired := &role.Role{Name: "Old Staff", Slug: "old-staff", Level: 2, IsActive: false}
	roles := newFakeRoleRepo(retired)

	u := &user.User{Name: "Sam", Email: "sam@example.com", IsActive: true, Role: &retired.ID}
	svc := newTestService(newFakeUserRepo(u), roles, newFakePermRepo())

	id, err := svc.LoadIdentity(context.Background(), u.ID.Hex())
	if err != nil {
		t.Fatalf("LoadIdentity: %v", err)
	}
	if id.Role != nil {
		t.Error("inactive role should not be attached to the identity")
	}
}

func TestLoadIdentityLockedAccount(t *testing.T) {
	until := time.Now().Add(time.Hour)
	u := &user.User{Email: "locked@example.com", IsActive: true, LockUntil: &until}
	svc := newTestService(newFakeUserRepo(u), newFakeRoleRepo(), newFakePermRepo())

	_, err := svc.LoadIdentity(context.Background(), u.ID.Hex())
	var locked *middleware.AccountLockedError
	if !errors.As(err, &locked) {
		t.Fatalf("err = %v, want AccountLockedError", err)
	}
}
