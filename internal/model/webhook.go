package model

import "time"

type WebhookHeader struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// WebhookConfig is an admin-managed HTTP callback fired on event changes.
// Body is a template; see internal/template for the variable syntax.
type WebhookConfig struct {
	ID        int             `json:"id"`
	URL       string          `json:"url"`
	Method    string          `json:"method"`
	Headers   []WebhookHeader `json:"headers"`
	Body      string          `json:"body"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type WebhookConfigRequest struct {
	URL     string          `json:"url" binding:"required,url"`
	Method  string          `json:"method"`
	Headers []WebhookHeader `json:"headers"`
	Body    string          `json:"body"`
}

type WebhookConfigMutationResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      int    `json:"id,omitempty"`
}
