package permission

// Definition is a seed-time permission record, keyed by slug.
type Definition struct {
	Name     string
	Slug     string
	Category string
	Resource string
	Action   Action
}

// Catalog is the full set of permissions the store knows about. Seeded once
// by cmd/seed; at runtime permissions are only ever toggled, never removed.
var Catalog = []Definition{
	// Authentication
	{Name: "Login", Slug: "auth.login", Category: "authentication", Resource: "auth", Action: ActionRead},
	{Name: "Logout", Slug: "auth.logout", Category: "authentication", Resource: "auth", Action: ActionRead},
	{Name: "Password Reset", Slug: "auth.password-reset", Category: "authentication", Resource: "auth", Action: ActionUpdate},
	{Name: "2FA Management", Slug: "auth.2fa", Category: "authentication", Resource: "auth", Action: ActionManage},

	// Store management
	{Name: "View Store Profile", Slug: "store.profile.read", Category: "store", Resource: "store", Action: ActionRead},
	{Name: "Update Store Profile", Slug: "store.profile.update", Category: "store", Resource: "store", Action: ActionUpdate},
	{Name: "View Store Settings", Slug: "store.settings.read", Category: "store", Resource: "store", Action: ActionRead},
	{Name: "Update Store Settings", Slug: "store.settings.update", Category: "store", Resource: "store", Action: ActionUpdate},
	{Name: "Manage Banners", Slug: "store.banners.manage", Category: "store", Resource: "banner", Action: ActionManage},
	{Name: "Manage Homepage", Slug: "store.homepage.manage", Category: "store", Resource: "homepage", Action: ActionManage},
	{Name: "Manage Payment Methods", Slug: "store.payment.manage", Category: "store", Resource: "payment", Action: ActionManage},
	{Name: "Manage Shipping Zones", Slug: "store.shipping.manage", Category: "store", Resource: "shipping", Action: ActionManage},

	// Products
	{Name: "View Products", Slug: "products.read", Category: "products", Resource: "product", Action: ActionRead},
	{Name: "Create Products", Slug: "products.create", Category: "products", Resource: "product", Action: ActionCreate},
	{Name: "Update Products", Slug: "products.update", Category: "products", Resource: "product", Action: ActionUpdate},
	{Name: "Delete Products", Slug: "products.delete", Category: "products", Resource: "product", Action: ActionDelete},
	{Name: "Bulk Upload Products", Slug: "products.bulk-upload", Category: "products", Resource: "product", Action: ActionCreate},
	{Name: "Manage Categories", Slug: "products.categories.manage", Category: "products", Resource: "category", Action: ActionManage},

	// Inventory
	{Name: "View Inventory", Slug: "inventory.read", Category: "inventory", Resource: "inventory", Action: ActionRead},
	{Name: "Update Inventory", Slug: "inventory.update", Category: "inventory", Resource: "inventory", Action: ActionUpdate},
	{Name: "View Stock Alerts", Slug: "inventory.alerts.read", Category: "inventory", Resource: "inventory", Action: ActionRead},
	{Name: "Manage Suppliers", Slug: "inventory.suppliers.manage", Category: "inventory", Resource: "supplier", Action: ActionManage},
	{Name: "Manage Batches", Slug: "inventory.batches.manage", Category: "inventory", Resource: "batch", Action: ActionManage},

	// Orders
	{Name: "View Orders", Slug: "orders.read", Category: "orders", Resource: "order", Action: ActionRead},
	{Name: "Update Order Status", Slug: "orders.update", Category: "orders", Resource: "order", Action: ActionUpdate},
	{Name: "Assign Delivery Partner", Slug: "orders.assign-delivery", Category: "orders", Resource: "order", Action: ActionUpdate},
	{Name: "Cancel Orders", Slug: "orders.cancel", Category: "orders", Resource: "order", Action: ActionUpdate},
	{Name: "Process Refunds", Slug: "orders.refund", Category: "orders", Resource: "order", Action: ActionUpdate},
	{Name: "Generate Invoices", Slug: "orders.invoice", Category: "orders", Resource: "order", Action: ActionRead},

	// Users
	{Name: "View Users", Slug: "users.read", Category: "users", Resource: "user", Action: ActionRead},
	{Name: "Create Users", Slug: "users.create", Category: "users", Resource: "user", Action: ActionCreate},
	{Name: "Update Users", Slug: "users.update", Category: "users", Resource: "user", Action: ActionUpdate},
	{Name: "Delete Users", Slug: "users.delete", Category: "users", Resource: "user", Action: ActionDelete},
	{Name: "Block/Unblock Users", Slug: "users.block", Category: "users", Resource: "user", Action: ActionUpdate},
	{Name: "Create Sub-Admins", Slug: "users.sub-admins.create", Category: "users", Resource: "user", Action: ActionCreate},
	{Name: "Manage Sub-Admins", Slug: "users.sub-admins.manage", Category: "users", Resource: "user", Action: ActionManage},

	// Reviews
	{Name: "View Reviews", Slug: "reviews.read", Category: "reviews", Resource: "review", Action: ActionRead},
	{Name: "Moderate Reviews", Slug: "reviews.moderate", Category: "reviews", Resource: "review", Action: ActionUpdate},
	{Name: "Approve Reviews", Slug: "reviews.approve", Category: "reviews", Resource: "review", Action: ActionUpdate},
	{Name: "Delete Reviews", Slug: "reviews.delete", Category: "reviews", Resource: "review", Action: ActionDelete},

	// Content
	{Name: "Manage Blog Posts", Slug: "content.blog.manage", Category: "content", Resource: "blog", Action: ActionManage},
	{Name: "Manage FAQs", Slug: "content.faq.manage", Category: "content", Resource: "faq", Action: ActionManage},

	// Promotions
	{Name: "Manage Coupons", Slug: "promotions.coupons.manage", Category: "promotions", Resource: "coupon", Action: ActionManage},
	{Name: "Manage Flash Sales", Slug: "promotions.flash-sales.manage", Category: "promotions", Resource: "flash-sale", Action: ActionManage},
	{Name: "Manage Loyalty Program", Slug: "promotions.loyalty.manage", Category: "promotions", Resource: "loyalty", Action: ActionManage},
	{Name: "Manage Campaigns", Slug: "promotions.campaigns.manage", Category: "promotions", Resource: "campaign", Action: ActionManage},

	// Analytics
	{Name: "View Dashboard", Slug: "analytics.dashboard.read", Category: "analytics", Resource: "dashboard", Action: ActionRead},
	{Name: "View Sales Reports", Slug: "analytics.sales.read", Category: "analytics", Resource: "report", Action: ActionRead},
	{Name: "View Product Analytics", Slug: "analytics.products.read", Category: "analytics", Resource: "report", Action: ActionRead},
	{Name: "View Customer Analytics", Slug: "analytics.customers.read", Category: "analytics", Resource: "report", Action: ActionRead},
	{Name: "Export Reports", Slug: "analytics.export", Category: "analytics", Resource: "report", Action: ActionRead},

	// Settings
	{Name: "Manage Roles", Slug: "settings.roles.manage", Category: "settings", Resource: "role", Action: ActionManage},
	{Name: "Manage Permissions", Slug: "settings.permissions.manage", Category: "settings", Resource: "permission", Action: ActionManage},
	{Name: "View Activity Logs", Slug: "settings.activity.read", Category: "settings", Resource: "activity", Action: ActionRead},
	{Name: "Manage Support Tickets", Slug: "settings.support.manage", Category: "settings", Resource: "support", Action: ActionManage},
}

// RoleSeed describes a built-in role. Permissions lists explicit grants by
// slug; super-admin carries none because level 1 bypasses permission checks.
type RoleSeed struct {
	Name        string
	Slug        string
	Description string
	Level       int
	Permissions []string
}

var SystemRoles = []RoleSeed{
	{
		Name:        "Super Admin",
		Slug:        "super-admin",
		Description: "Full system access with all permissions",
		Level:       1,
	},
	{
		Name:        "Store Manager",
		Slug:        "store-manager",
		Description: "Store operations and management",
		Level:       2,
		Permissions: []string{
			"store.profile.read", "store.profile.update",
			"store.settings.read", "store.settings.update",
			"store.banners.manage", "store.homepage.manage",
			"store.payment.manage", "store.shipping.manage",
			"products.read", "products.create", "products.update",
			"products.delete", "products.bulk-upload", "products.categories.manage",
			"inventory.read", "inventory.update", "inventory.alerts.read",
			"inventory.suppliers.manage", "inventory.batches.manage",
			"orders.read", "orders.update", "orders.assign-delivery",
			"orders.cancel", "orders.refund", "orders.invoice",
			"users.read", "users.update", "users.block",
			"reviews.read", "reviews.moderate", "reviews.approve", "reviews.delete",
			"content.blog.manage", "content.faq.manage",
			"promotions.coupons.manage", "promotions.flash-sales.manage",
			"promotions.loyalty.manage", "promotions.campaigns.manage",
			"analytics.dashboard.read", "analytics.sales.read",
			"analytics.products.read", "analytics.customers.read", "analytics.export",
			"settings.activity.read", "settings.support.manage",
		},
	},
	{
		Name:        "Customer",
		Slug:        "customer",
		Description: "Regular customer with shopping and account management",
		Level:       3,
		Permissions: []string{
			"auth.login", "auth.logout", "auth.password-reset",
			"products.read",
			"orders.read", // own orders only, enforced by ownership checks
		},
	},
}
