package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/venuehub/backend/internal/service"
)

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignupHandlerValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var svc *service.AuthService
	r.POST("/api/auth/signup", NewAuthHandler(svc).Signup)

	cases := []struct {
		name string
		body string
	}{
		{"empty", `{}`},
		{"short username", `{"username":"ab","email":"a@example.com","password":"password123"}`},
		{"bad email", `{"username":"alice","email":"not-an-email","password":"password123"}`},
		{"short password", `{"username":"alice","email":"a@example.com","password":"short"}`},
	}
	for _, tc := range cases {
		if w := postJSON(r, "/api/auth/signup", tc.body); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, w.Code)
		}
	}
}

func TestSigninHandlerValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var svc *service.AuthService
	r.POST("/api/auth/signin", NewAuthHandler(svc).Signin)

	if w := postJSON(r, "/api/auth/signin", `{"username":"alice"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRefreshTokenHandlerValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var svc *service.AuthService
	r.POST("/api/auth/refreshtoken", NewAuthHandler(svc).RefreshToken)

	if w := postJSON(r, "/api/auth/refreshtoken", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
