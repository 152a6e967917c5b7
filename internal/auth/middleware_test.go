package auth

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"simtracker/internal/models"
)

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Session{}))
	return db
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func authedRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/sims", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestJWTAuthRejectsMissingBearer(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	h := JWTAuth(newAuthTestDB(t))(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(""))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsUnknownSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	h := JWTAuth(newAuthTestDB(t))(okHandler())

	// Valid signature, but no session row backs the jti.
	tok, err := Sign("user-1", false, "jti-ghost")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(tok))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthSessionLifecycle(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)
	require.NoError(t, db.Create(&models.Session{
		JTI:       "jti-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}).Error)

	tok, err := Sign("user-1", false, "jti-1")
	require.NoError(t, err)

	var gotSubject string
	h := JWTAuth(db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = Subject(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(tok))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-1", gotSubject)

	// Revoking the session kills the same, still-valid token.
	now := time.Now()
	require.NoError(t, db.Model(&models.Session{}).Where("jti = ?", "jti-1").Update("revoked_at", &now).Error)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest(tok))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsExpiredSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)
	require.NoError(t, db.Create(&models.Session{
		JTI:       "jti-old",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-25 * time.Hour),
	}).Error)

	tok, err := Sign("user-1", false, "jti-old")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	JWTAuth(db)(okHandler()).ServeHTTP(rec, authedRequest(tok))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req = req.WithContext(WithClaims(req.Context(), Claims{Subject: "user-1"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req = req.WithContext(WithClaims(req.Context(), Claims{Subject: "user-1", IsAdmin: true}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
