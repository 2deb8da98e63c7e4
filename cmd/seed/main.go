package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"greenbasket/internal/config"
	"greenbasket/internal/database"
	"greenbasket/internal/features/permission"
	"greenbasket/internal/features/role"
	"greenbasket/internal/features/user"
	"greenbasket/internal/logger"
	"greenbasket/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Seed runs the database seeding
func Seed(
	lc fx.Lifecycle,
	permRepo permission.PermissionRepository,
	roleRepo role.RoleRepository,
	userRepo user.UserRepository,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
				defer cancel()

				if err := runSeed(ctx, permRepo, roleRepo, userRepo, logger); err != nil {
					logger.Error("Seeding failed", zap.Error(err))
				}
			}()
			return nil
		},
	})
}

func runSeed(
	ctx context.Context,
	permRepo permission.PermissionRepository,
	roleRepo role.RoleRepository,
	userRepo user.UserRepository,
	logger *zap.Logger,
) error {
	logger.Info("Starting database seeding...")

	// 1. Permission catalog. Upserts are keyed by slug so re-running the
	// seeder never duplicates or reactivates permissions an admin has
	// toggled off.
	for i := range permission.Catalog {
		def := permission.Catalog[i]
		p := &permission.Permission{
			Name:     def.Name,
			Slug:     def.Slug,
			Category: def.Category,
			Resource: def.Resource,
			Action:   def.Action,
		}
		if err := permRepo.UpsertBySlug(ctx, p); err != nil {
			return fmt.Errorf("seed permission %s: %w", def.Slug, err)
		}
	}
	logger.Info("Seeded permission catalog", zap.Int("count", len(permission.Catalog)))

	// Resolve slug -> id for role grants.
	allPerms, err := permRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("load permissions: %w", err)
	}
	permsBySlug := make(map[string]primitive.ObjectID, len(allPerms))
	for _, p := range allPerms {
		permsBySlug[p.Slug] = p.ID
	}

	// 2. System roles.
	roleIDs := make(map[string]primitive.ObjectID)
	for _, seed := range permission.SystemRoles {
		grants := make([]primitive.ObjectID, 0, len(seed.Permissions))
		for _, slug := range seed.Permissions {
			id, ok := permsBySlug[slug]
			if !ok {
				logger.Warn("Role grant references unknown permission",
					zap.String("role", seed.Slug), zap.String("permission", slug))
				continue
			}
			grants = append(grants, id)
		}

		existing, err := roleRepo.FindBySlug(ctx, seed.Slug)
		if err == nil {
			roleIDs[seed.Slug] = existing.ID
			// The repository wraps the document in $set itself, so the
			// fields go in bare.
			if _, err := roleRepo.Update(ctx, existing.ID, bson.M{
				"permissions": grants,
			}); err != nil {
				return fmt.Errorf("refresh role %s: %w", seed.Slug, err)
			}
			logger.Info("Role exists, refreshed grants", zap.String("role", seed.Slug))
			continue
		}

		r := &role.Role{
			Name:         seed.Name,
			Slug:         seed.Slug,
			Description:  seed.Description,
			Level:        seed.Level,
			Permissions:  grants,
			IsSystemRole: true,
			IsActive:     true,
		}
		if err := roleRepo.Create(ctx, r); err != nil {
			return fmt.Errorf("seed role %s: %w", seed.Slug, err)
		}
		roleIDs[seed.Slug] = r.ID
		logger.Info("Created system role", zap.String("role", seed.Slug), zap.Int("grants", len(grants)))
	}

	// 3. Initial super admin.
	adminEmail := getEnv("ADMIN_EMAIL", "admin@greenbasket.local")
	if _, err := userRepo.FindByEmail(ctx, adminEmail); err == nil {
		logger.Info("Admin user exists, skipping", zap.String("email", adminEmail))
		return nil
	}

	hash, err := utils.HashPassword(getEnv("ADMIN_PASSWORD", "changeme123"))
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	superAdminRole := roleIDs["super-admin"]
	admin := &user.User{
		Name:     "Administrator",
		Email:    adminEmail,
		Password: hash,
		IsAdmin:  true,
		Role:     &superAdminRole,
		IsActive: true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	logger.Info("Seeding complete", zap.String("admin", adminEmail))
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			permission.NewPermissionRepository,
			role.NewRoleRepository,
			user.NewUserRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
