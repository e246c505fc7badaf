package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/venuehub/backend/internal/service"
)

func TestVenueHandlerBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var svc *service.VenueService
	r.GET("/api/venues/:id", NewVenueHandler(svc).GetVenue)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/venues/abc", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestVenueHandlerValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var svc *service.VenueService
	r.POST("/api/venues", NewVenueHandler(svc).CreateVenue)

	if w := postJSON(r, "/api/venues", `{"name":"","address":"","capacity":0}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
