package service

import (
	"context"

	"github.com/venuehub/backend/internal/db"
	"github.com/venuehub/backend/internal/model"
)

type eventStore interface {
	GetEventList(ctx context.Context, filter model.EventFilter) ([]model.Event, error)
	GetEventByID(ctx context.Context, id int64) (*model.Event, error)
	CreateEvent(ctx context.Context, name string, eventDate string, venueID int64) (int64, error)
	UpdateEvent(ctx context.Context, id int64, name string, eventDate string, venueID int64) (bool, error)
	DeleteEvent(ctx context.Context, id int64) (bool, error)
}

type venueReader interface {
	GetVenueByID(ctx context.Context, id int64) (*model.Venue, error)
}

// eventNotifier is told about event changes after they are committed.
// Delivery failures are the notifier's problem, never the caller's.
type eventNotifier interface {
	EventChanged(event *model.Event, action string)
}

type EventService struct {
	events   eventStore
	venues   venueReader
	notifier eventNotifier
}

func NewEventService(events eventStore, venues venueReader, notifier eventNotifier) *EventService {
	return &EventService{events: events, venues: venues, notifier: notifier}
}

func (s *EventService) GetEventList(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	return s.events.GetEventList(ctx, filter)
}

func (s *EventService) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	event, err := s.events.GetEventByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) CreateEvent(ctx context.Context, req model.EventRequest, venueID int64) (*model.Event, error) {
	if _, err := s.venues.GetVenueByID(ctx, venueID); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	id, err := s.events.CreateEvent(ctx, req.Name, req.EventDate, venueID)
	if err != nil {
		return nil, err
	}

	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.EventChanged(event, "created")
	}
	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id int64, req model.EventRequest, venueID int64) (*model.Event, error) {
	if _, err := s.venues.GetVenueByID(ctx, venueID); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	updated, err := s.events.UpdateEvent(ctx, id, req.Name, req.EventDate, venueID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrEventNotFound
	}

	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.EventChanged(event, "updated")
	}
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	deleted, err := s.events.DeleteEvent(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEventNotFound
	}
	return nil
}
