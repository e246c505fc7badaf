package model

import "time"

type Event struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	EventDate time.Time `json:"eventDate"`
	VenueID   int64     `json:"venueId"`
	VenueName string    `json:"venueName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type EventRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	EventDate string `json:"eventDate" binding:"required,datetime=2006-01-02"`
}

// EventFilter narrows the event list query. Zero values mean "no filter".
// VenueName additionally orders the result by event_date DESC.
type EventFilter struct {
	Name      string
	VenueID   int64
	After     time.Time
	VenueName string
}
