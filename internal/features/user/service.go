package user

import (
	"context"
	"errors"
	"time"

	"greenbasket/internal/common/models"
	"greenbasket/internal/features/authz"
	"greenbasket/internal/features/permission"
	"greenbasket/internal/features/role"
	"greenbasket/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrUnknownRole  = errors.New("role not found")
	ErrSelfDelete   = errors.New("cannot delete your own account")
	ErrSelfBlock    = errors.New("cannot deactivate your own account")

	// ErrProtectedUser guards super admin accounts from lower tier actors.
	ErrProtectedUser = errors.New("only a super admin can delete a super admin")
)

// DefaultRoleSlug is assigned when a new account names no role.
const DefaultRoleSlug = "customer"

type ListUsersQuery struct {
	Search   string
	RoleSlug string
	IsActive *bool
	Page     int64
	PageSize int64
}

type CreateUserRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Phone       string   `json:"phone"`
	RoleSlug    string   `json:"role"`
	Permissions []string `json:"permissions"`
	IsAdmin     bool     `json:"is_admin"`
}

type UpdateUserRequest struct {
	Name        *string  `json:"name"`
	Phone       *string  `json:"phone"`
	Address     *Address `json:"address"`
	RoleSlug    *string  `json:"role"`
	Permissions []string `json:"permissions"`
	IsActive    *bool    `json:"is_active"`
	IsAdmin     *bool    `json:"is_admin"`
}

// UserView is a user with role and direct permissions materialized for
// admin screens. The password hash never leaves the service.
type UserView struct {
	User
	RoleDoc        *role.Role              `json:"role_doc,omitempty"`
	PermissionDocs []permission.Permission `json:"permission_docs"`
	Locked         bool                    `json:"locked"`
}

type UserService interface {
	ListUsers(ctx context.Context, q ListUsersQuery) (*models.Paged[UserView], error)
	GetUser(ctx context.Context, id string) (*UserView, error)
	CreateUser(ctx context.Context, req *CreateUserRequest, createdBy *primitive.ObjectID) (*UserView, error)
	UpdateUser(ctx context.Context, id string, req *UpdateUserRequest, actorID primitive.ObjectID) (*UserView, error)
	DeleteUser(ctx context.Context, id string, actor *authz.Identity) error
	ResetLock(ctx context.Context, id string) (*UserView, error)
}

type UserServiceImpl struct {
	repo     UserRepository
	roles    role.RoleRepository
	permRepo permission.PermissionRepository
}

func NewUserService(repo UserRepository, roles role.RoleRepository, permRepo permission.PermissionRepository) UserService {
	return &UserServiceImpl{repo: repo, roles: roles, permRepo: permRepo}
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, q ListUsersQuery) (*models.Paged[UserView], error) {
	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": q.Search, "$options": "i"}},
			{"email": bson.M{"$regex": q.Search, "$options": "i"}},
		}
	}
	if q.RoleSlug != "" {
		r, err := s.roles.FindBySlug(ctx, q.RoleSlug)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrUnknownRole
			}
			return nil, err
		}
		filter["role"] = r.ID
	}
	if q.IsActive != nil {
		filter["is_active"] = *q.IsActive
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = models.AdminPageSize
	}

	users, total, err := s.repo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		v, err := s.resolve(ctx, &u)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}

	paged := models.NewPaged(views, page, total, pageSize)
	return &paged, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*UserView, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.resolve(ctx, u)
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, req *CreateUserRequest, createdBy *primitive.ObjectID) (*UserView, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	roleSlug := req.RoleSlug
	if roleSlug == "" {
		roleSlug = DefaultRoleSlug
	}
	r, err := s.roles.FindBySlug(ctx, roleSlug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUnknownRole
		}
		return nil, err
	}

	permIDs, err := s.validatePermissions(ctx, req.Permissions)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hash,
		Phone:       req.Phone,
		IsAdmin:     req.IsAdmin,
		Role:        &r.ID,
		Permissions: permIDs,
		IsActive:    true,
		CreatedBy:   createdBy,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.resolve(ctx, u)
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, id string, req *UpdateUserRequest, actorID primitive.ObjectID) (*UserView, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive && existing.ID == actorID {
		return nil, ErrSelfBlock
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.IsActive != nil {
		set["is_active"] = *req.IsActive
	}
	if req.IsAdmin != nil {
		set["is_admin"] = *req.IsAdmin
	}
	if req.RoleSlug != nil {
		r, err := s.roles.FindBySlug(ctx, *req.RoleSlug)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrUnknownRole
			}
			return nil, err
		}
		set["role"] = r.ID
	}
	if req.Permissions != nil {
		permIDs, err := s.validatePermissions(ctx, req.Permissions)
		if err != nil {
			return nil, err
		}
		set["permissions"] = permIDs
	}

	updated, err := s.repo.Update(ctx, existing.ID, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, updated)
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string, actor *authz.Identity) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}
	if existing.ID == actor.ID {
		return ErrSelfDelete
	}

	if existing.Role != nil && actor.Tier() != authz.TierSuperAdmin {
		targetRole, err := s.roles.FindByObjectID(ctx, *existing.Role)
		if err == nil && authz.TierForLevel(targetRole.Level) == authz.TierSuperAdmin {
			return ErrProtectedUser
		}
	}

	return s.repo.Delete(ctx, existing.ID)
}

func (s *UserServiceImpl) ResetLock(ctx context.Context, id string) (*UserView, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := s.repo.ResetLoginAttempts(ctx, existing.ID); err != nil {
		return nil, err
	}
	existing.LoginAttempts = 0
	existing.LockUntil = nil
	return s.resolve(ctx, existing)
}

func (s *UserServiceImpl) validatePermissions(ctx context.Context, ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, role.ErrPermissionNotFound
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
		return nil, role.ErrPermissionNotFound
	}
	return oids, nil
}

func (s *UserServiceImpl) resolve(ctx context.Context, u *User) (*UserView, error) {
	view := &UserView{User: *u, PermissionDocs: []permission.Permission{}, Locked: u.IsLocked(time.Now())}
	view.Password = ""

	if u.Role != nil {
		r, err := s.roles.FindByObjectID(ctx, *u.Role)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		view.RoleDoc = r
	}

	if len(u.Permissions) > 0 {
		perms, err := s.permRepo.FindByIDs(ctx, u.Permissions)
		if err != nil {
			return nil, err
		}
		view.PermissionDocs = perms
	}
	return view, nil
}
