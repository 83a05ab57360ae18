package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/cristhianfss97/Controle-de-Produtos/internal/auth"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/handlers"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/httpx"
	"github.com/cristhianfss97/Controle-de-Produtos/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, sessions *auth.Sessions, log zerolog.Logger) http.Handler {
	auditSvc := services.NewAuditService(db)
	productSvc := services.NewProductService(db, auditSvc)
	categorySvc := services.NewCategoryService(db, auditSvc)
	userSvc := services.NewUserService(db, auditSvc)
	dashboardSvc := services.NewDashboardService(db)
	exportSvc := services.NewExportService(productSvc, auditSvc)

	ph := handlers.NewProductHandler(productSvc, categorySvc)
	ch := handlers.NewCategoryHandler(categorySvc)
	ah := handlers.NewAuthHandler(userSvc, auditSvc, sessions)
	uh := handlers.NewUserHandler(userSvc)
	lh := handlers.NewAuditHandler(auditSvc)
	dh := handlers.NewDashboardHandler(dashboardSvc)
	eh := handlers.NewExportHandler(exportSvc)

	r := chi.NewRouter()
	r.Use(
		recoverer(log),
		requestLogger(log),
		loadUser(sessions, userSvc),
		bootstrapGate(userSvc),
	)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/setup", ah.SetupForm)
	r.Post("/setup", ah.Setup)
	r.Get("/login", ah.LoginForm)
	r.Post("/login", ah.Login)
	r.Get("/logout", ah.Logout)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/", ph.List)
		r.Post("/add", ph.Create)
		r.Post("/edit", ph.Update)
		r.Post("/delete/{id}", ph.Delete)
		r.Post("/stock/{id}", ph.AdjustStock)
		r.Post("/stock/{id}/set", ph.SetStock)

		r.Post("/categorias/add", ch.Create)
		r.Post("/categorias/delete/{id}", ch.Delete)

		r.Get("/dashboard", dh.Show)
		r.Get("/auditoria", lh.List)

		r.Get("/export/produtos", eh.Products)
		r.Get("/export/auditoria", eh.Audit)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)

		r.Get("/usuarios", uh.List)
		r.Post("/usuarios", uh.Create)
		r.Post("/usuarios/toggle/{id}", uh.Toggle)
	})

	return r
}
