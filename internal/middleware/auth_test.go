package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"workshop_hub_backend/internal/config"
	"workshop_hub_backend/internal/model"
	"workshop_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	guarded := router.Group("/api")
	guarded.Use(AuthMiddleware(cfg))
	guarded.POST("/workshops", CapabilityMiddleware(model.CapManageWorkshops), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	guarded.POST("/learners/enroll", CapabilityMiddleware(model.CapEnroll), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func tokenFor(t *testing.T, cfg *config.Config, role model.UserRole) string {
	t.Helper()
	user := &model.User{Role: role, Email: "user@test.local"}
	user.ID = 1
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	cfg := testConfig()
	router := newGuardedRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workshops", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	cfg := testConfig()
	router := newGuardedRouter(cfg)

	forged := tokenFor(t, testConfig(), model.Mentor)
	cfg.JWT.Secret = "rotated-secret"

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workshops", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCapabilityMiddlewareForbidsLearnerManagingWorkshops(t *testing.T) {
	cfg := testConfig()
	router := newGuardedRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workshops", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, model.Learner))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCapabilityMiddlewareAllowsMentorManagingWorkshops(t *testing.T) {
	cfg := testConfig()
	router := newGuardedRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workshops", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, model.Mentor))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCapabilityMiddlewareForbidsMentorEnrolling(t *testing.T) {
	cfg := testConfig()
	router := newGuardedRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/learners/enroll", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, model.Mentor))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddlewareAcceptsQueryToken(t *testing.T) {
	cfg := testConfig()
	router := newGuardedRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/learners/enroll?token="+tokenFor(t, cfg, model.Learner), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
