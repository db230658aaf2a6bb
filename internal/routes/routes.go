package routes

import (
	"net/http"

	"github.com/fastopp/fastopp/internal/app"
	"github.com/fastopp/fastopp/internal/handler"
	"github.com/fastopp/fastopp/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	users := handler.NewUserHandler(app.UserService, app.AuditService)
	products := handler.NewProductHandler(app.ProductService)
	registrants := handler.NewRegistrantHandler(app.RegistrantService)
	health := handler.NewHealthHandler(app.DB, app.Cfg.AppName)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files. Uploads are mounted first so a custom UPLOAD_DIR
	// outside ./static still serves under /static/uploads/.
	mux.Handle("GET /static/uploads/", http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(app.Cfg.UploadDir))))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	mux.HandleFunc("GET /health", health.Health)

	// Marketing demo data
	mux.HandleFunc("GET /api/attendees", registrants.Attendees)
	mux.HandleFunc("GET /api/products", products.List)

	// Session
	mux.HandleFunc("POST /auth/login", auth.Login)
	mux.HandleFunc("POST /auth/logout", auth.Logout)
	mux.HandleFunc("GET /auth/me", middleware.RequireAuth(auth.Me))

	// ============================================================================
	// STAFF ROUTES
	// ============================================================================

	mux.HandleFunc("GET /api/registrants", middleware.RequireStaff(registrants.List))
	mux.HandleFunc("POST /api/registrants/{id}/photo", middleware.RequireStaff(registrants.UploadPhoto))
	mux.HandleFunc("DELETE /api/registrants/{id}/photo", middleware.RequireStaff(registrants.DeletePhoto))
	mux.HandleFunc("PATCH /api/registrants/{id}/notes", middleware.RequireStaff(registrants.UpdateNotes))

	// ============================================================================
	// ADMIN ROUTES
	// ============================================================================

	mux.HandleFunc("POST /admin/registrants", middleware.RequireStaff(registrants.Create))
	mux.HandleFunc("PUT /admin/registrants/{id}", middleware.RequireStaff(registrants.Update))
	mux.HandleFunc("DELETE /admin/registrants/{id}", middleware.RequireStaff(registrants.Delete))

	mux.HandleFunc("POST /admin/products", middleware.RequireStaff(products.Create))
	mux.HandleFunc("PUT /admin/products/{id}", middleware.RequireStaff(products.Update))
	mux.HandleFunc("DELETE /admin/products/{id}", middleware.RequireStaff(products.Delete))

	mux.HandleFunc("GET /admin/users", middleware.RequireSuperuser(users.List))
	mux.HandleFunc("POST /admin/users", middleware.RequireSuperuser(users.Create))
	mux.HandleFunc("PUT /admin/users/{id}", middleware.RequireSuperuser(users.Update))
	mux.HandleFunc("DELETE /admin/users/{id}", middleware.RequireSuperuser(users.Delete))

	// ============================================================================
	// DEBUG (development only)
	// ============================================================================

	if app.Cfg.EnableDebug {
		debug := handler.NewDebugHandler(app.DB, app.Cfg)
		mux.HandleFunc("GET /debug/simple", debug.Simple)
		mux.HandleFunc("GET /debug/database", debug.Database)
		mux.HandleFunc("GET /debug/database-data", debug.DatabaseData)
	}

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.ProxyHeaders,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)
}
