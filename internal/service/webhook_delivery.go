package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/venuehub/backend/internal/model"
	tmpl "github.com/venuehub/backend/internal/template"
)

type webhookConfigReader interface {
	GetWebhookConfigs(ctx context.Context) ([]model.WebhookConfig, error)
}

type deliveryVenueReader interface {
	GetVenueByID(ctx context.Context, id int64) (*model.Venue, error)
}

// WebhookDeliveryService pushes event changes to every configured webhook.
// It satisfies the eventNotifier interface consumed by EventService.
type WebhookDeliveryService struct {
	configDB   webhookConfigReader
	venueDB    deliveryVenueReader
	httpClient *http.Client
}

func NewWebhookDeliveryService(configDB webhookConfigReader, venueDB deliveryVenueReader) *WebhookDeliveryService {
	return &WebhookDeliveryService{
		configDB: configDB,
		venueDB:  venueDB,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// EventChanged delivers in the background; a config failure is logged and
// never surfaces to the request that triggered it.
func (s *WebhookDeliveryService) EventChanged(event *model.Event, action string) {
	go s.deliver(event, action)
}

func (s *WebhookDeliveryService) deliver(event *model.Event, action string) {
	ctx := context.Background()

	configs, err := s.configDB.GetWebhookConfigs(ctx)
	if err != nil {
		log.Printf("[WebhookDelivery] Failed to load webhook configs: %v", err)
		return
	}
	if len(configs) == 0 {
		return
	}

	eventData := tmpl.EventDataFromModel(event, action)

	// Venue lookup is best-effort; its variables render empty on failure.
	var venueData *tmpl.VenueData
	if venue, err := s.venueDB.GetVenueByID(ctx, event.VenueID); err != nil {
		log.Printf("[WebhookDelivery] Failed to load venue (id=%d): %v", event.VenueID, err)
	} else {
		d := tmpl.VenueDataFromModel(venue)
		venueData = &d
	}

	for _, cfg := range configs {
		if cfg.URL == "" {
			log.Printf("[WebhookDelivery] Skipping config id=%d: URL is empty", cfg.ID)
			continue
		}

		rendered := tmpl.RenderBody(cfg.Body, &eventData, venueData)

		if err := s.sendHTTP(cfg, rendered); err != nil {
			log.Printf("[WebhookDelivery] Failed to deliver to %s (config id=%d): %v", cfg.URL, cfg.ID, err)
		} else {
			log.Printf("[WebhookDelivery] Delivered to %s (config id=%d)", cfg.URL, cfg.ID)
		}
	}
}

func (s *WebhookDeliveryService) sendHTTP(cfg model.WebhookConfig, body string) error {
	method := cfg.Method
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequest(method, cfg.URL, bytes.NewBufferString(body))
	if err != nil {
		return err
	}

	hasContentType := false
	for _, h := range cfg.Headers {
		if h.Key != "" {
			req.Header.Set(h.Key, h.Value)
		}
		if http.CanonicalHeaderKey(h.Key) == "Content-Type" {
			hasContentType = true
		}
	}
	if !hasContentType {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
