package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/venuehub/backend/internal/model"
	"github.com/venuehub/backend/internal/service"
)

type VenueHandler struct {
	svc *service.VenueService
}

func NewVenueHandler(svc *service.VenueService) *VenueHandler {
	return &VenueHandler{svc: svc}
}

// GetVenues godoc
// @Summary List venues
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Venue
// @Failure 500 {object} model.ErrorResponse
// @Router /api/venues [get]
func (h *VenueHandler) GetVenues(c *gin.Context) {
	venues, err := h.svc.GetVenueList(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, venues)
}

// GetVenue godoc
// @Summary Get venue by id
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param id path int true "Venue ID"
// @Success 200 {object} model.Venue
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/venues/{id} [get]
func (h *VenueHandler) GetVenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	venue, err := h.svc.GetVenue(c.Request.Context(), id)
	if err != nil {
		writeVenueError(c, err)
		return
	}
	c.JSON(http.StatusOK, venue)
}

// CreateVenue godoc
// @Summary Create venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.VenueRequest true "Venue payload"
// @Success 201 {object} model.Venue
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/venues [post]
func (h *VenueHandler) CreateVenue(c *gin.Context) {
	var req model.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	venue, err := h.svc.CreateVenue(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusCreated, venue)
}

// UpdateVenue godoc
// @Summary Update venue
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Venue ID"
// @Param request body model.VenueRequest true "Venue payload"
// @Success 200 {object} model.Venue
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/venues/{id} [put]
func (h *VenueHandler) UpdateVenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	venue, err := h.svc.UpdateVenue(c.Request.Context(), id, req)
	if err != nil {
		writeVenueError(c, err)
		return
	}
	c.JSON(http.StatusOK, venue)
}

// DeleteVenue godoc
// @Summary Delete venue
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param id path int true "Venue ID"
// @Success 204
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/venues/{id} [delete]
func (h *VenueHandler) DeleteVenue(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteVenue(c.Request.Context(), id); err != nil {
		writeVenueError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeVenueError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrVenueNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
