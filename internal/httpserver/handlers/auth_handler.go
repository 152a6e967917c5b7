package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"simtracker/internal/auth"
	"simtracker/internal/models"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(db *gorm.DB, ttl time.Duration, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var u models.User
		if err := db.First(&u, "email = ?", strings.ToLower(strings.TrimSpace(req.Email))).Error; err != nil {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		sess := models.Session{
			JTI:       uuid.NewString(),
			UserID:    u.ID,
			ExpiresAt: time.Now().Add(ttl),
			CreatedAt: time.Now(),
		}
		if err := db.Create(&sess).Error; err != nil {
			lg.Errorw("session create failed", "error", err)
			http.Error(w, "login failed", http.StatusInternalServerError)
			return
		}
		tok, err := auth.Sign(u.ID, u.IsAdmin, sess.JTI)
		if err != nil {
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}
		respondSuccess(w, map[string]any{"token": tok, "user": u})
	}
}

func Logout(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jti := auth.FromContext(r.Context()).JWTID
		now := time.Now()
		// The envelope stays success either way, but a session that failed
		// to revoke is still live and must not pass silently.
		if err := db.Model(&models.Session{}).Where("jti = ?", jti).Update("revoked_at", &now).Error; err != nil {
			lg.Errorw("session revoke failed", "jti", jti, "error", err)
		}
		respondJSON(w, map[string]any{"success": true})
	}
}

func Me(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.User
		if err := db.First(&u, "id = ?", auth.Subject(r.Context())).Error; err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		respondSuccess(w, u)
	}
}
