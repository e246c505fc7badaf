package template

import (
	"testing"
	"time"
)

func TestRenderBody(t *testing.T) {
	event := &EventData{
		ID:     7,
		Name:   "Summer Jazz Night",
		Date:   time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
		Action: "created",
	}
	venue := &VenueData{ID: 3, Name: "Blue Note", Address: "131 W 3rd St", Capacity: 250}

	body := `{"text":"{{event.name}} ({{event.action}}) on {{event.date}} at {{venue.name}}, cap {{venue.capacity}}"}`
	got := RenderBody(body, event, venue)
	want := `{"text":"Summer Jazz Night (created) on 2026-07-04 at Blue Note, cap 250"}`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestRenderBodyNilVenue(t *testing.T) {
	event := &EventData{ID: 7, Name: "Summer Jazz Night", Action: "deleted"}
	got := RenderBody("{{event.id}}/{{venue.name}}/{{event.action}}", event, nil)
	if got != "7//deleted" {
		t.Fatalf("got %s", got)
	}
}

func TestRenderBodyUnknownVariableLeftAsIs(t *testing.T) {
	got := RenderBody("{{event.id}} {{something.else}}", &EventData{ID: 1}, nil)
	if got != "1 {{something.else}}" {
		t.Fatalf("got %s", got)
	}
}
