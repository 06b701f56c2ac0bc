package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"syncpad/internal/pkg/jwtutil"
)

func protectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireModerator(secret), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireModeratorAcceptsValidToken(t *testing.T) {
	token, err := jwtutil.GenerateToken("secret", time.Hour, jwtutil.RoleModerator)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := doRequest(protectedRouter("secret"), "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRequireModeratorRejectsMissingHeader(t *testing.T) {
	w := doRequest(protectedRouter("secret"), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireModeratorRejectsWrongScheme(t *testing.T) {
	w := doRequest(protectedRouter("secret"), "Basic abc")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireModeratorRejectsForgedToken(t *testing.T) {
	token, err := jwtutil.GenerateToken("other-secret", time.Hour, jwtutil.RoleModerator)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := doRequest(protectedRouter("secret"), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireModeratorRejectsWrongRole(t *testing.T) {
	token, err := jwtutil.GenerateToken("secret", time.Hour, "viewer")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := doRequest(protectedRouter("secret"), "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
