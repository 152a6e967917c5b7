package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"simtracker/internal/auth"
	"simtracker/internal/models"
)

// Handlers behind the admin gate for the Users screen.

func ListUsers(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var users []models.User
		if err := db.Order("created_at desc").Find(&users).Error; err != nil {
			lg.Errorw("list users failed", "error", err)
			respondError(w, err.Error())
			return
		}
		if users == nil {
			users = []models.User{}
		}
		respondSuccess(w, users)
	}
}

func CreateUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email     string `json:"email"`
			Password  string `json:"password"`
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
			IsAdmin   bool   `json:"isAdmin"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			respondError(w, "email and password are required")
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			http.Error(w, "hash error", http.StatusInternalServerError)
			return
		}
		u := models.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PasswordHash: hash,
			IsAdmin:      req.IsAdmin,
		}
		if err := db.Create(&u).Error; err != nil {
			lg.Errorw("create user failed", "email", req.Email, "error", err)
			respondError(w, err.Error())
			return
		}
		respondSuccess(w, u)
	}
}

func UpdateUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req struct {
			Email     *string `json:"email"`
			FirstName *string `json:"firstName"`
			LastName  *string `json:"lastName"`
			IsAdmin   *bool   `json:"isAdmin"`
			Password  *string `json:"password,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var u models.User
		if err := db.First(&u, "id = ?", id).Error; err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if req.Email != nil {
			u.Email = strings.TrimSpace(strings.ToLower(*req.Email))
		}
		if req.FirstName != nil {
			u.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			u.LastName = *req.LastName
		}
		if req.IsAdmin != nil {
			u.IsAdmin = *req.IsAdmin
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				http.Error(w, "hash error", http.StatusInternalServerError)
				return
			}
			u.PasswordHash = hash
		}
		if err := db.Save(&u).Error; err != nil {
			lg.Errorw("update user failed", "id", id, "error", err)
			respondError(w, err.Error())
			return
		}
		respondSuccess(w, u)
	}
}

func DeleteUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := db.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			lg.Errorw("delete user failed", "id", id, "error", err)
			respondError(w, err.Error())
			return
		}
		respondJSON(w, map[string]any{"success": true})
	}
}
