// Package template renders webhook body templates.
//
// Supported variables:
//
//	{{event.id}}, {{event.name}}, {{event.date}}, {{event.action}},
//	{{event.created_at}}
//
//	{{venue.id}}, {{venue.name}}, {{venue.address}}, {{venue.capacity}}
package template

import (
	"strconv"
	"strings"
	"time"

	"github.com/venuehub/backend/internal/model"
)

// EventData carries the event fields available to templates.
type EventData struct {
	ID        int64
	Name      string
	Date      time.Time
	Action    string
	CreatedAt time.Time
}

// VenueData carries the venue fields available to templates.
type VenueData struct {
	ID       int64
	Name     string
	Address  string
	Capacity int
}

func EventDataFromModel(event *model.Event, action string) EventData {
	return EventData{
		ID:        event.ID,
		Name:      event.Name,
		Date:      event.EventDate,
		Action:    action,
		CreatedAt: event.CreatedAt,
	}
}

func VenueDataFromModel(venue *model.Venue) VenueData {
	return VenueData{
		ID:       venue.ID,
		Name:     venue.Name,
		Address:  venue.Address,
		Capacity: venue.Capacity,
	}
}

// RenderBody substitutes template variables with actual values. Either
// argument may be nil; its variables are then replaced with empty strings.
func RenderBody(body string, event *EventData, venue *VenueData) string {
	pairs := make([]string, 0, 18)

	if event != nil {
		pairs = append(pairs,
			"{{event.id}}", strconv.FormatInt(event.ID, 10),
			"{{event.name}}", event.Name,
			"{{event.date}}", event.Date.Format("2006-01-02"),
			"{{event.action}}", event.Action,
			"{{event.created_at}}", event.CreatedAt.Format(time.RFC3339),
		)
	} else {
		pairs = append(pairs,
			"{{event.id}}", "",
			"{{event.name}}", "",
			"{{event.date}}", "",
			"{{event.action}}", "",
			"{{event.created_at}}", "",
		)
	}

	if venue != nil {
		pairs = append(pairs,
			"{{venue.id}}", strconv.FormatInt(venue.ID, 10),
			"{{venue.name}}", venue.Name,
			"{{venue.address}}", venue.Address,
			"{{venue.capacity}}", strconv.Itoa(venue.Capacity),
		)
	} else {
		pairs = append(pairs,
			"{{venue.id}}", "",
			"{{venue.name}}", "",
			"{{venue.address}}", "",
			"{{venue.capacity}}", "",
		)
	}

	return strings.NewReplacer(pairs...).Replace(body)
}
