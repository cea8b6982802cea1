package authz

// --- Права ---

const (
	// Global
	Superuser = "superuser"

	DashboardView = "dashboard:view"
	RevenueView   = "revenue:view"

	// Views
	ViewsTickets  = "views:tickets"
	ViewsReviews  = "views:reviews"
	ViewsBookings = "views:bookings"

	NotificationsSend = "notifications:send"
	ReportsExport     = "reports:export"
	MenuManage        = "menu:manage"
)

// --- Роли ---

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

var rolePermissions = map[string][]string{
	RoleAdmin: {Superuser},
	RoleManager: {
		DashboardView, RevenueView,
		ViewsTickets, ViewsReviews, ViewsBookings,
		NotificationsSend, ReportsExport,
	},
	RoleStaff: {
		DashboardView,
		ViewsTickets, ViewsBookings,
	},
}

// ViewPermission возвращает право, которое нужно для вида списка kind.
func ViewPermission(kind string) string {
	return "views:" + kind
}

// Roles перечисляет известные роли.
func Roles() []string {
	return []string{RoleAdmin, RoleManager, RoleStaff}
}
