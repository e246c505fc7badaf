package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/venuehub/backend/internal/model"
	"github.com/venuehub/backend/internal/service"
)

type EventHandler struct {
	svc *service.EventService
}

func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// GetEvents godoc
// @Summary List events
// @Description Optional filters: name (case-insensitive), venueId, after (YYYY-MM-DD), venue (venue name, sorts by date descending).
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param name query string false "Event name"
// @Param venueId query int false "Venue ID"
// @Param after query string false "Events after this date (YYYY-MM-DD)"
// @Param venue query string false "Venue name"
// @Success 200 {array} model.Event
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/events [get]
func (h *EventHandler) GetEvents(c *gin.Context) {
	filter := model.EventFilter{
		Name:      c.Query("name"),
		VenueName: c.Query("venue"),
	}

	if raw := c.Query("venueId"); raw != "" {
		venueID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid venueId"})
			return
		}
		filter.VenueID = venueID
	}
	if raw := c.Query("after"); raw != "" {
		after, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid after date, want YYYY-MM-DD"})
			return
		}
		filter.After = after
	}

	events, err := h.svc.GetEventList(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get event by id
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} model.Event
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	event, err := h.svc.GetEvent(c.Request.Context(), id)
	if err != nil {
		writeEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venueId query int true "Venue ID"
// @Param request body model.EventRequest true "Event payload"
// @Success 201 {object} model.Event
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	venueID, ok := venueIDQuery(c)
	if !ok {
		return
	}

	var req model.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	event, err := h.svc.CreateEvent(c.Request.Context(), req, venueID)
	if err != nil {
		writeEventError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param venueId query int true "Venue ID"
// @Param request body model.EventRequest true "Event payload"
// @Success 200 {object} model.Event
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	venueID, ok := venueIDQuery(c)
	if !ok {
		return
	}

	var req model.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	event, err := h.svc.UpdateEvent(c.Request.Context(), id, req, venueID)
	if err != nil {
		writeEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteEvent(c.Request.Context(), id); err != nil {
		writeEventError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case errors.Is(err, service.ErrVenueNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

func venueIDQuery(c *gin.Context) (int64, bool) {
	venueID, err := strconv.ParseInt(c.Query("venueId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid venueId"})
		return 0, false
	}
	return venueID, true
}
