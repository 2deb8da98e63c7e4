package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"greenbasket/internal/features/authz"
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

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest, ip string) (*AuthResponse, error)
	Me(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error)
	ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error

	// middleware.IdentityLoader
	LoadIdentity(ctx context.Context, userID string) (*authz.Identity, error)
	RecordSeen(ctx context.Context, userID, ip string) error
}

type AuthServiceImpl struct {
	users    user.UserRepository
	roles    role.RoleRepository
	permRepo permission.PermissionRepository
	logger   *zap.Logger
}

func NewAuthService(users user.UserRepository, roles role.RoleRepository, permRepo permission.PermissionRepository, logger *zap.Logger) AuthService {
	return &AuthServiceImpl{users: users, roles: roles, permRepo: permRepo, logger: logger}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: true,
	}

	// Self-registered accounts always start as customers.
	if r, err := s.roles.FindBySlug(ctx, user.DefaultRoleSlug); err == nil {
		u.Role = &r.ID
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.respond(ctx, u)
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *LoginRequest, ip string) (*AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now()
	if u.IsLocked(now) {
		return nil, &middleware.AccountLockedError{Until: *u.LockUntil}
	}
	if !u.IsActive {
		return nil, middleware.ErrAccountInactive
	}

	if !utils.CheckPassword(u.Password, req.Password) {
		attempts, lockUntil := user.NextFailedLogin(u.LoginAttempts, u.LockUntil, now)
		if err := s.users.SetFailedLogin(ctx, u.ID, attempts, lockUntil); err != nil {
			s.logger.Warn("failed to record login attempt",
				zap.String("user_id", u.ID.Hex()), zap.Error(err))
		}
		if lockUntil != nil && lockUntil.After(now) {
			return nil, &middleware.AccountLockedError{Until: *lockUntil}
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.users.ResetLoginAttempts(ctx, u.ID); err != nil {
		s.logger.Warn("failed to reset login attempts",
			zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}
	if err := s.users.RecordSeen(ctx, u.ID, ip, now); err != nil {
		s.logger.Warn("failed to record login",
			zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}

	return s.respond(ctx, u)
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, middleware.ErrUnauthenticated
		}
		return nil, err
	}
	identity, err := s.materialize(ctx, u)
	if err != nil {
		return nil, err
	}
	return s.profile(u, identity), nil
}

func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, middleware.ErrUnauthenticated
		}
		return nil, err
	}

	set := bson.M{}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Address != nil {
		set["address"] = req.Address
	}
	if len(set) > 0 {
		if u, err = s.users.Update(ctx, u.ID, bson.M{"$set": set}); err != nil {
			return nil, err
		}
	}

	identity, err := s.materialize(ctx, u)
	if err != nil {
		return nil, err
	}
	return s.profile(u, identity), nil
}

func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return middleware.ErrUnauthenticated
		}
		return err
	}
	if !utils.CheckPassword(u.Password, req.CurrentPassword) {
		return ErrWrongPassword
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	_, err = s.users.Update(ctx, u.ID, bson.M{"$set": bson.M{"password": hash}})
	return err
}

// LoadIdentity is the session gate's view of an account: the stored user with
// role, role permissions and direct permissions resolved. Lock and active
// checks happen here so every protected request sees current account state,
// not the state at token issue time.
func (s *AuthServiceImpl) LoadIdentity(ctx context.Context, userID string) (*authz.Identity, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, middleware.ErrUnauthenticated
		}
		return nil, err
	}

	if u.IsLocked(time.Now()) {
		return nil, &middleware.AccountLockedError{Until: *u.LockUntil}
	}
	if !u.IsActive {
		return nil, middleware.ErrAccountInactive
	}

	return s.materialize(ctx, u)
}

func (s *AuthServiceImpl) RecordSeen(ctx context.Context, userID, ip string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}
	return s.users.RecordSeen(ctx, oid, ip, time.Now())
}

func (s *AuthServiceImpl) materialize(ctx context.Context, u *user.User) (*authz.Identity, error) {
	identity := &authz.Identity{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		IsActive: u.IsActive,
		IsAdmin:  u.IsAdmin,
	}

	if u.Role != nil {
		r, err := s.roles.FindByObjectID(ctx, *u.Role)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		// An inactive role confers nothing, same as having no role.
		if r != nil && r.IsActive {
			rolePerms, err := s.views(ctx, r.Permissions)
			if err != nil {
				return nil, err
			}
			identity.Role = &authz.RoleView{
				ID:          r.ID,
				Name:        r.Name,
				Slug:        r.Slug,
				Level:       r.Level,
				IsActive:    r.IsActive,
				Permissions: rolePerms,
			}
		}
	}

	direct, err := s.views(ctx, u.Permissions)
	if err != nil {
		return nil, err
	}
	identity.Direct = direct

	return identity, nil
}

func (s *AuthServiceImpl) views(ctx context.Context, ids []primitive.ObjectID) ([]authz.PermissionView, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	perms, err := s.permRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]authz.PermissionView, 0, len(perms))
	for _, p := range perms {
		out = append(out, authz.PermissionView{
			ID:       p.ID,
			Name:     p.Name,
			Slug:     p.Slug,
			Category: p.Category,
			Resource: p.Resource,
			Action:   string(p.Action),
			IsActive: p.IsActive,
		})
	}
	return out, nil
}

func (s *AuthServiceImpl) respond(ctx context.Context, u *user.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID)
	if err != nil {
		return nil, err
	}
	identity, err := s.materialize(ctx, u)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: s.profile(u, identity)}, nil
}

func (s *AuthServiceImpl) profile(u *user.User, identity *authz.Identity) *Profile {
	slugs := []string{}
	for _, p := range authz.EffectivePermissions(identity) {
		slugs = append(slugs, p.Slug)
	}

	p := &Profile{
		ID:            u.ID.Hex(),
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Address:       u.Address,
		IsAdmin:       authz.IsAdmin(identity),
		LoyaltyPoints: u.LoyaltyPoints,
		Permissions:   slugs,
	}
	if identity.Role != nil {
		p.Role = identity.Role.Slug
	}
	return p
}
