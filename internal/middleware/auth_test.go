package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobsdoor_backend/internal/config"
	"jobsdoor_backend/internal/model"
	"jobsdoor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "middleware-test-secret"
	return cfg
}

func tokenFor(t *testing.T, role model.UserRole, cfg *config.Config) string {
	t.Helper()
	u := &model.User{Email: "u@example.com", Role: role}
	u.ID = "u-1"
	token, err := util.GenerateJWT(u, cfg.JWT.Secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return token
}

func newRouter(cfg *config.Config, roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", AuthMiddleware(cfg))
	if len(roles) > 0 {
		group.Use(RoleMiddleware(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.String(http.StatusOK, string(claims.Role))
	})
	return r
}

func TestAuthMiddlewareNoToken(t *testing.T) {
	r := newRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareBearerHeader(t *testing.T) {
	cfg := testConfig()
	r := newRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, model.Candidate, cfg))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "candidate" {
		t.Errorf("body = %q, want candidate", w.Body.String())
	}
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	cfg := testConfig()
	r := newRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping?token="+tokenFor(t, model.Candidate, cfg), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	r := newRouter(testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		role       model.UserRole
		allowed    []model.UserRole
		wantStatus int
	}{
		{"listed role passes", model.Employer, []model.UserRole{model.Employer}, http.StatusOK},
		{"unlisted role rejected", model.Candidate, []model.UserRole{model.Employer}, http.StatusForbidden},
		{"admin bypasses the list", model.Admin, []model.UserRole{model.Employer}, http.StatusOK},
		{"master admin bypasses the list", model.MasterAdmin, []model.UserRole{model.Employer}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			r := newRouter(cfg, tt.allowed...)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, tt.role, cfg))
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
