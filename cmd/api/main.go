package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"simtracker/internal/auth"
	"simtracker/internal/config"
	"simtracker/internal/httpserver"
	"simtracker/internal/logger"
	"simtracker/internal/models"
	"simtracker/internal/sims"
	"simtracker/internal/sms"
)

func main() {
	cfg := config.Load()
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()

	db, err := openDB(cfg)
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Session{}, &models.Sim{}); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	seedDefaultAdmin(db, cfg, lg)

	store := sims.NewStore(db, cfg.Location())
	router := httpserver.NewRouter(httpserver.Deps{
		DB:        db,
		Store:     store,
		Notifier:  sms.New(cfg, lg),
		StaticDir: cfg.StaticDir,
		TokenTTL:  cfg.JWTExpiresIn,
	}, lg)

	lg.Infow("listening", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatal(err)
	}
}

// openDB connects to Postgres when DATABASE_URL is set, otherwise to a local
// SQLite file, the same split the deployments have always run with.
func openDB(cfg config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL != "" {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
}

func seedDefaultAdmin(db *gorm.DB, cfg config.Config, lg *zap.SugaredLogger) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	var count int64
	db.Model(&models.User{}).Where("LOWER(email) = ?", email).Count(&count)
	if count > 0 {
		return
	}
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		lg.Errorw("admin seed hash failed", "error", err)
		return
	}
	u := models.User{ID: uuid.NewString(), Email: email, PasswordHash: hash, IsAdmin: true}
	if err := db.Create(&u).Error; err != nil {
		lg.Errorw("admin seed failed", "error", err)
		return
	}
	lg.Infow("seeded default admin", "email", email)
}
