package server

import (
	"context"
	"net/http"

	"alucam-admin/internal/audit"
	"alucam-admin/internal/auth"
	"alucam-admin/internal/handlers"
	"alucam-admin/internal/httpx"
	"alucam-admin/internal/models"
	"alucam-admin/internal/services"

	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth verifies the session still maps to an active user.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ? AND active = ?", uid, true).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})
	auth.SetRoleResolver(func(_ context.Context, uid uint) (string, bool) {
		var user models.User
		if err := db.Preload("Role").First(&user, uid).Error; err != nil {
			return "", false
		}
		return user.Role.Name, true
	})

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	sink := audit.NewDBSink(db)

	// Auth endpoints
	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)

	staff := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(auth.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleSeller)(h)))
	}
	managers := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(auth.RequireRole(models.RoleAdmin, models.RoleManager)(h)))
	}
	admins := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(auth.RequireRole(models.RoleAdmin)(h)))
	}

	// Order endpoints
	orderSvc := services.NewOrderService(db, sink)
	oh := handlers.NewOrderHandler(db, orderSvc)
	mux.Handle("/orders", staff(oh.List))
	mux.Handle("/orders/view", staff(oh.View))
	mux.Handle("/orders/update", staff(oh.Update))

	// Customer endpoints
	custSvc := services.NewCustomerService(db, sink)
	ch := handlers.NewCustomerHandler(custSvc)
	mux.Handle("/customers", staff(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))
	mux.Handle("/customers/update", staff(ch.Update))
	mux.Handle("/customers/delete", managers(ch.Delete))

	// Inventory endpoints
	invSvc := services.NewInventoryService(db, sink)
	ih := handlers.NewInventoryHandler(invSvc)
	mux.Handle("/inventory", staff(ih.List))
	mux.Handle("/inventory/adjust", managers(ih.Adjust))

	// Branch statistics and reporting
	statsSvc := services.NewStatsService(db)
	bh := handlers.NewBranchHandler(db, statsSvc)
	mux.Handle("/branches", staff(bh.List))
	mux.Handle("/branches/stats", managers(bh.StatsView))
	rh := handlers.NewReportHandler(statsSvc)
	mux.Handle("/reports/orders.csv", managers(rh.OrdersCSV))

	// System settings (admin only)
	sh := handlers.NewSettingsHandler(db, sink)
	mux.Handle("/settings", admins(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sh.List(w, r)
		case http.MethodPost:
			sh.Upsert(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}))

	return withRequestID(withRecover(mux))
}
