package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"simtracker/internal/auth"
	"simtracker/internal/models"
)

func TestLogoutRevokesSession(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Session{}))
	require.NoError(t, db.Create(&models.Session{
		JTI:       "jti-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}).Error)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req = req.WithContext(auth.WithClaims(req.Context(), auth.Claims{Subject: "user-1", JWTID: "jti-1"}))
	rec := httptest.NewRecorder()
	Logout(db, zap.NewNop().Sugar())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decodeEnvelope(t, rec).Success)

	var sess models.Session
	require.NoError(t, db.First(&sess, "jti = ?", "jti-1").Error)
	require.NotNil(t, sess.RevokedAt)
}
