package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"simtracker/internal/auth"
	"simtracker/internal/httpserver/handlers"
	"simtracker/internal/sims"
	"simtracker/internal/sms"
)

type Deps struct {
	DB        *gorm.DB
	Store     *sims.Store
	Notifier  *sms.Client
	StaticDir string
	TokenTTL  time.Duration
}

func NewRouter(d Deps, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Post("/api/login", handlers.Login(d.DB, d.TokenTTL, lg))
	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(d.DB))
		protected.Post("/api/logout", handlers.Logout(d.DB, lg))
		protected.Get("/api/me", handlers.Me(d.DB, lg))
		protected.Get("/api/sims", handlers.ListSims(d.Store, lg))
		protected.Post("/api/sims", handlers.CreateSim(d.Store, lg))
		protected.Get("/api/sims/csv", handlers.ExportCSV(d.Store, lg))
		protected.Post("/api/sims/csv", handlers.ImportCSV(d.Store, lg))
		protected.Put("/api/sims/{id}", handlers.UpdateSim(d.Store, lg))
		protected.Delete("/api/sims/{id}", handlers.DeleteSim(d.Store, lg))
		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireAdmin())
			admin.Get("/api/users", handlers.ListUsers(d.DB, lg))
			admin.Post("/api/users", handlers.CreateUser(d.DB, lg))
			admin.Put("/api/users/{id}", handlers.UpdateUser(d.DB, lg))
			admin.Delete("/api/users/{id}", handlers.DeleteUser(d.DB, lg))
			admin.Post("/api/notify/sms", handlers.NotifySMS(d.Notifier, lg))
		})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	if d.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(d.StaticDir)))
	}
	return r
}
