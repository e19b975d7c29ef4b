package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/auth"
	dashboardHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/dashboard"
	healthHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/health"
	prometheusHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/prometheus"
	"github.com/BangJepp56/ini-dashboard-admin/internal/middleware"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository/memory"
	authService "github.com/BangJepp56/ini-dashboard-admin/internal/service/auth"
	dashboardService "github.com/BangJepp56/ini-dashboard-admin/internal/service/dashboard"
	patientService "github.com/BangJepp56/ini-dashboard-admin/internal/service/patient"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/auth"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/logger"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/security"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := time.Now
	store := memory.NewStore()
	jwtSvc := auth.NewJWTService("router-secret", time.Hour, now)
	authSvc := authService.NewService(store.Admins, jwtSvc, security.NewBcryptHasher(bcrypt.MinCost), logger.Nop(), now)
	_, err := authSvc.CreateAdmin(context.Background(), "admin@rsia.id", "Admin", "rahasia123")
	require.NoError(t, err)

	patients := patientService.NewService(store.Patients, now)
	authH := authHandler.NewHandler(authSvc)

	r := NewRouter(
		RouterConfig{
			CORS:      middleware.DefaultCORSConfig(),
			Security:  middleware.DefaultSecurityConfig(),
			Timeout:   middleware.DefaultTimeoutConfig(),
			SizeLimit: middleware.DefaultSizeLimitConfig(),
		},
		middleware.NewAuthMiddleware(jwtSvc),
		healthHandler.NewHandler(nil),
		prometheusHandler.New(prometheus.NewRegistry(), "test"),
		[]PublicHandler{authH},
		authH,
		dashboardHandler.NewHandler(dashboardService.NewService(patients, store.Doctors, store.Schedules)),
	)
	r.Setup()
	return r.Engine()
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	body := `{"email":"admin@rsia.id","password":"rahasia123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestPublicRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "test_http_requests_total"))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, r)
	for _, path := range []string{"/api/v1/dashboard", "/api/v1/auth/me"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"), path)
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID), path)
	}

	// the query form is reserved for the notification stream
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?"+middleware.QueryAccessToken+"="+token, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFailure(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		bytes.NewBufferString(`{"email":"admin@rsia.id","password":"salah"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Email atau password salah", resp.Message)
}
