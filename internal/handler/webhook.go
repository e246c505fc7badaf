package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/venuehub/backend/internal/model"
	"github.com/venuehub/backend/internal/service"
)

type WebhookHandler struct {
	svc *service.WebhookService
}

func NewWebhookHandler(svc *service.WebhookService) *WebhookHandler {
	return &WebhookHandler{svc: svc}
}

// ListWebhookConfigs godoc
// @Summary List webhook configs
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.WebhookConfig
// @Failure 500 {object} model.ErrorResponse
// @Router /api/admin/webhooks [get]
func (h *WebhookHandler) ListWebhookConfigs(c *gin.Context) {
	configs, err := h.svc.ListWebhookConfigs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, configs)
}

// GetWebhookConfig godoc
// @Summary Get webhook config by id
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Webhook config ID"
// @Success 200 {object} model.WebhookConfig
// @Failure 404 {object} model.ErrorResponse
// @Router /api/admin/webhooks/{id} [get]
func (h *WebhookHandler) GetWebhookConfig(c *gin.Context) {
	id, ok := webhookID(c)
	if !ok {
		return
	}

	cfg, err := h.svc.GetWebhookConfig(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "webhook config not found"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// CreateWebhookConfig godoc
// @Summary Create webhook config
// @Tags webhooks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.WebhookConfigRequest true "Webhook config"
// @Success 201 {object} model.WebhookConfigMutationResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/admin/webhooks [post]
func (h *WebhookHandler) CreateWebhookConfig(c *gin.Context) {
	var req model.WebhookConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id, err := h.svc.CreateWebhookConfig(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusCreated, model.WebhookConfigMutationResponse{
		Status:  "success",
		Message: "webhook config created",
		ID:      id,
	})
}

// UpdateWebhookConfig godoc
// @Summary Update webhook config
// @Tags webhooks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Webhook config ID"
// @Param request body model.WebhookConfigRequest true "Webhook config"
// @Success 200 {object} model.WebhookConfigMutationResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/admin/webhooks/{id} [put]
func (h *WebhookHandler) UpdateWebhookConfig(c *gin.Context) {
	id, ok := webhookID(c)
	if !ok {
		return
	}

	var req model.WebhookConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.svc.UpdateWebhookConfig(c.Request.Context(), id, req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, model.WebhookConfigMutationResponse{
		Status:  "success",
		Message: "webhook config updated",
		ID:      id,
	})
}

// DeleteWebhookConfig godoc
// @Summary Delete webhook config
// @Tags webhooks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Webhook config ID"
// @Success 200 {object} model.WebhookConfigMutationResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/admin/webhooks/{id} [delete]
func (h *WebhookHandler) DeleteWebhookConfig(c *gin.Context) {
	id, ok := webhookID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteWebhookConfig(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, model.WebhookConfigMutationResponse{
		Status:  "success",
		Message: "webhook config deleted",
	})
}

func webhookID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
