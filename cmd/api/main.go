package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "greenbasket/internal/common/api"
	"greenbasket/internal/config"
	"greenbasket/internal/database"
	"greenbasket/internal/features/activity"
	"greenbasket/internal/features/analytics"
	"greenbasket/internal/features/auth"
	"greenbasket/internal/features/brand"
	"greenbasket/internal/features/category"
	"greenbasket/internal/features/certification"
	"greenbasket/internal/features/inventory"
	"greenbasket/internal/features/order"
	"greenbasket/internal/features/permission"
	"greenbasket/internal/features/product"
	"greenbasket/internal/features/review"
	"greenbasket/internal/features/role"
	"greenbasket/internal/features/settings"
	"greenbasket/internal/features/system"
	"greenbasket/internal/features/user"
	"greenbasket/internal/logger"
	"greenbasket/internal/middleware"
	"greenbasket/internal/scheduler"
	"greenbasket/pkg/utils"

	_ "greenbasket/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags a Route constructor so Fx collects it into the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for _, route := range routes {
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// ConfigureTokens wires the JWT signer from config before any request is served.
func ConfigureTokens(cfg *config.Config) {
	utils.Configure(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
}

// InitializeIndexes ensures database indexes and the settings document exist
func InitializeIndexes(
	lc fx.Lifecycle,
	users user.UserRepository,
	roles role.RoleRepository,
	perms permission.PermissionRepository,
	activities activity.ActivityRepository,
	categories category.CategoryRepository,
	brands brand.BrandRepository,
	certs certification.CertificationRepository,
	products product.ProductRepository,
	reviews review.ReviewRepository,
	orders order.OrderRepository,
	movements inventory.InventoryRepository,
	store settings.SettingsRepository,
	zlog *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				type indexer struct {
					name string
					fn   func(context.Context) error
				}
				for _, ix := range []indexer{
					{"users", users.EnsureIndexes},
					{"roles", roles.EnsureIndexes},
					{"permissions", perms.EnsureIndexes},
					{"activity", activities.EnsureIndexes},
					{"categories", categories.EnsureIndexes},
					{"brands", brands.EnsureIndexes},
					{"certifications", certs.EnsureIndexes},
					{"products", products.EnsureIndexes},
					{"reviews", reviews.EnsureIndexes},
					{"orders", orders.EnsureIndexes},
					{"stock_movements", movements.EnsureIndexes},
				} {
					if err := ix.fn(ctx); err != nil {
						zlog.Error("failed to ensure indexes", zap.String("collection", ix.name), zap.Error(err))
					}
				}

				if err := store.EnsureDefaults(ctx); err != nil {
					zlog.Error("failed to seed store settings", zap.Error(err))
				}
			}()
			return nil
		},
	})
}

// StartScheduler hooks the background job runner into the app lifecycle.
func StartScheduler(lc fx.Lifecycle, sched *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sched.Start()
		},
		OnStop: func(ctx context.Context) error {
			sched.Stop()
			return nil
		},
	})
}

// @title           GreenBasket API
// @version         1.0
// @description     Storefront and admin API for the GreenBasket organic grocery.

// @contact.name    API Support
// @contact.email   support@greenbasket.example

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			user.NewUserRepository,
			role.NewRoleRepository,
			permission.NewPermissionRepository,
			activity.NewActivityRepository,
			category.NewCategoryRepository,
			brand.NewBrandRepository,
			certification.NewCertificationRepository,
			product.NewProductRepository,
			review.NewReviewRepository,
			order.NewOrderRepository,
			inventory.NewInventoryRepository,
			settings.NewSettingsRepository,
			analytics.NewAnalyticsRepository,

			// Initialize Service
			auth.NewAuthService,
			user.NewUserService,
			role.NewRoleService,
			permission.NewPermissionService,
			activity.NewActivityService,
			category.NewCategoryService,
			brand.NewBrandService,
			certification.NewCertificationService,
			product.NewProductService,
			review.NewReviewService,
			order.NewOrderService,
			inventory.NewHub,
			inventory.NewInventoryService,
			settings.NewSettingsService,
			analytics.NewAnalyticsService,

			// Background jobs
			scheduler.NewScheduler,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(s auth.AuthService) middleware.IdentityLoader { return s },
			func(r user.UserRepository) role.UserCounter { return r },
			func(r product.ProductRepository) category.ProductCounter { return r },
			func(r product.ProductRepository) brand.ProductCounter { return r },
			func(s settings.SettingsService) order.ShippingPolicy { return s },

			// Initialize Controller
			auth.NewAuthController,
			user.NewUserController,
			role.NewRoleController,
			permission.NewPermissionController,
			activity.NewActivityController,
			category.NewCategoryController,
			brand.NewBrandController,
			certification.NewCertificationController,
			product.NewProductController,
			review.NewReviewController,
			order.NewOrderController,
			inventory.NewInventoryController,
			settings.NewSettingsController,
			analytics.NewAnalyticsController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(role.NewRoleApi),
			AsRoute(permission.NewPermissionApi),
			AsRoute(activity.NewActivityApi),
			AsRoute(category.NewCategoryApi),
			AsRoute(brand.NewBrandApi),
			AsRoute(certification.NewCertificationApi),
			AsRoute(product.NewProductApi),
			AsRoute(review.NewReviewApi),
			AsRoute(order.NewOrderApi),
			AsRoute(inventory.NewInventoryApi),
			AsRoute(settings.NewSettingsApi),
			AsRoute(analytics.NewAnalyticsApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			ConfigureTokens,
			RegisterAllRoutesWithAnnotation,
			StartServer,
			StartScheduler,
			InitializeIndexes,
		),
	)

	app.Run()
}
