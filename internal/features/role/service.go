package role

import (
	"context"
	"errors"
	"fmt"

	"greenbasket/internal/features/permission"
	"greenbasket/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrRoleNotFound       = errors.New("role not found")
	ErrDuplicateSlug      = errors.New("role with this slug already exists")
	ErrSystemRoleDelete   = errors.New("cannot delete system role")
	ErrSystemRoleFields   = errors.New("cannot modify system role properties")
	ErrPermissionNotFound = errors.New("one or more invalid permissions")
	ErrInvalidLevel       = errors.New("role level must be between 1 and 10")
)

// RoleInUseError rejects deletion of a role that users still reference.
type RoleInUseError struct {
	Count int64
}

func (e *RoleInUseError) Error() string {
	return fmt.Sprintf("cannot delete role: it is assigned to %d user(s)", e.Count)
}

// UserCounter reports how many users reference a role. Implemented by the
// user repository; injected as an interface to avoid a feature cycle.
type UserCounter interface {
	CountByRole(ctx context.Context, roleID primitive.ObjectID) (int64, error)
}

// RoleWithPermissions is a role with its permission references materialized.
type RoleWithPermissions struct {
	Role
	PermissionDocs []permission.Permission `json:"permission_docs"`
}

type RoleService interface {
	ListRoles(ctx context.Context) ([]RoleWithPermissions, error)
	GetRole(ctx context.Context, id string) (*RoleWithPermissions, error)
	CreateRole(ctx context.Context, req *CreateRoleRequest) (*RoleWithPermissions, error)
	UpdateRole(ctx context.Context, id string, req *UpdateRoleRequest) (*RoleWithPermissions, error)
	DeleteRole(ctx context.Context, id string) error
	AssignPermissions(ctx context.Context, id string, permissionIDs []string) (*RoleWithPermissions, error)
}

type RoleServiceImpl struct {
	repo     RoleRepository
	permRepo permission.PermissionRepository
	users    UserCounter
}

func NewRoleService(repo RoleRepository, permRepo permission.PermissionRepository, users UserCounter) RoleService {
	return &RoleServiceImpl{repo: repo, permRepo: permRepo, users: users}
}

func (s *RoleServiceImpl) ListRoles(ctx context.Context) ([]RoleWithPermissions, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]RoleWithPermissions, 0, len(roles))
	for _, r := range roles {
		resolved, err := s.resolve(ctx, &r)
		if err != nil {
			return nil, err
		}
		out = append(out, *resolved)
	}
	return out, nil
}

func (s *RoleServiceImpl) GetRole(ctx context.Context, id string) (*RoleWithPermissions, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return s.resolve(ctx, r)
}

func (s *RoleServiceImpl) CreateRole(ctx context.Context, req *CreateRoleRequest) (*RoleWithPermissions, error) {
	if req.Level < 1 || req.Level > 10 {
		return nil, ErrInvalidLevel
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	if _, err := s.repo.FindBySlug(ctx, slug); err == nil {
		return nil, ErrDuplicateSlug
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	permIDs, err := s.validatePermissions(ctx, req.Permissions)
	if err != nil {
		return nil, err
	}

	role := &Role{
		Name:         req.Name,
		Slug:         slug,
		Description:  req.Description,
		Level:        req.Level,
		Permissions:  permIDs,
		IsSystemRole: false,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return s.resolve(ctx, role)
}

func (s *RoleServiceImpl) UpdateRole(ctx context.Context, id string, req *UpdateRoleRequest) (*RoleWithPermissions, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	// System role identity fields are frozen; only the permission set and
	// active flag may change through this path.
	if existing.IsSystemRole && (req.Name != nil || req.Slug != nil || req.Level != nil || req.Description != nil) {
		return nil, ErrSystemRoleFields
	}

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Slug != nil {
		update["slug"] = *req.Slug
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Level != nil {
		if *req.Level < 1 || *req.Level > 10 {
			return nil, ErrInvalidLevel
		}
		update["level"] = *req.Level
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if req.Permissions != nil {
		permIDs, err := s.validatePermissions(ctx, req.Permissions)
		if err != nil {
			return nil, err
		}
		update["permissions"] = permIDs
	}

	updated, err := s.repo.Update(ctx, existing.ID, update)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, updated)
}

func (s *RoleServiceImpl) DeleteRole(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrRoleNotFound
		}
		return err
	}

	if existing.IsSystemRole {
		return ErrSystemRoleDelete
	}

	count, err := s.users.CountByRole(ctx, existing.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return &RoleInUseError{Count: count}
	}

	return s.repo.Delete(ctx, existing.ID)
}

func (s *RoleServiceImpl) AssignPermissions(ctx context.Context, id string, permissionIDs []string) (*RoleWithPermissions, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	permIDs, err := s.validatePermissions(ctx, permissionIDs)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, existing.ID, bson.M{"permissions": permIDs})
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, updated)
}

// validatePermissions converts hex ids and checks that each references an
// existing, active permission record.
func (s *RoleServiceImpl) validatePermissions(ctx context.Context, ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, ErrPermissionNotFound
		}
		oids = append(oids, oid)
	}

	if len(oids) == 0 {
		return oids, nil
	}

	perms, err := s.permRepo.FindByIDs(ctx, oids)
	if err != nil {
		return nil, err
	}

	active := 0
	for _, p := range perms {
		if p.IsActive {
			active++
		}
	}
	if active != len(oids) {
		return nil, ErrPermissionNotFound
	}
	return oids, nil
}

func (s *RoleServiceImpl) resolve(ctx context.Context, r *Role) (*RoleWithPermissions, error) {
	perms, err := s.permRepo.FindByIDs(ctx, r.Permissions)
	if err != nil {
		return nil, err
	}
	if perms == nil {
		perms = []permission.Permission{}
	}
	return &RoleWithPermissions{Role: *r, PermissionDocs: perms}, nil
}
