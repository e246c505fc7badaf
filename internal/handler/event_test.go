package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/venuehub/backend/internal/service"
)

func newEventTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var svc *service.EventService
	h := NewEventHandler(svc)
	r.GET("/api/events", h.GetEvents)
	r.POST("/api/events", h.CreateEvent)
	return r
}

func TestEventHandlerMissingVenueID(t *testing.T) {
	r := newEventTestRouter()
	if w := postJSON(r, "/api/events", `{"name":"Jazz Night","eventDate":"2026-07-04"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestEventHandlerBadDate(t *testing.T) {
	r := newEventTestRouter()
	if w := postJSON(r, "/api/events?venueId=1", `{"name":"Jazz Night","eventDate":"July 4th"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestEventHandlerBadFilterParams(t *testing.T) {
	r := newEventTestRouter()

	for _, path := range []string{
		"/api/events?venueId=abc",
		"/api/events?after=tomorrow",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, w.Code)
		}
	}
}
