package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventMeetup    EventType = "meetup"
	EventPlaydate  EventType = "playdate"
	EventFieldTrip EventType = "field_trip"
	EventCoop      EventType = "co-op"
	EventWorkshop  EventType = "workshop"
	EventSports    EventType = "sports"
)

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventConfirmed EventStatus = "confirmed"
)

// Event is a scheduled gathering. Attendees is a set of family ids; the host
// is added at creation time and never duplicated. MaxAttendees == 0 means
// unlimited.
type Event struct {
	ID           uuid.UUID   `bson:"event_id" json:"event_id"`
	HostFamilyID uuid.UUID   `bson:"host_family_id" json:"host_family_id"`
	Title        string      `bson:"title" json:"title" validate:"required"`
	Description  string      `bson:"description,omitempty" json:"description,omitempty"`
	EventType    EventType   `bson:"event_type" json:"event_type" validate:"required,oneof=meetup playdate field_trip co-op workshop sports"`
	Date         string      `bson:"event_date" json:"event_date" validate:"required"` // YYYY-MM-DD
	Time         string      `bson:"event_time" json:"event_time" validate:"required"` // HH:MM
	Location     string      `bson:"location" json:"location" validate:"required"`
	City         string      `bson:"city,omitempty" json:"city,omitempty"`
	State        string      `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode      string      `bson:"zip_code,omitempty" json:"zip_code,omitempty"`
	MaxAttendees int         `bson:"max_attendees,omitempty" json:"max_attendees,omitempty" validate:"gte=0"`
	AgeRange     string      `bson:"age_range,omitempty" json:"age_range,omitempty"`
	Attendees    []uuid.UUID `bson:"attendees" json:"attendees"`
	Status       EventStatus `bson:"status" json:"status"`
	CreatedAt    time.Time   `bson:"created_at" json:"created_at"`
}

func (e *Event) BeforeCreate() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = EventUpcoming
	}
	e.CreatedAt = time.Now().UTC()
	// Host is implicitly attending.
	if !e.HasAttendee(e.HostFamilyID) {
		e.Attendees = append(e.Attendees, e.HostFamilyID)
	}
}

func (e *Event) HasAttendee(familyID uuid.UUID) bool {
	for _, id := range e.Attendees {
		if id == familyID {
			return true
		}
	}
	return false
}

func (e *Event) ValidateEvent() error {
	if err := Validate.Struct(e); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return fmt.Errorf("invalid event date %q: %w", e.Date, err)
	}
	if _, err := time.Parse("15:04", e.Time); err != nil {
		return fmt.Errorf("invalid event time %q: %w", e.Time, err)
	}
	if e.MaxAttendees > 0 && len(e.Attendees) > e.MaxAttendees {
		return fmt.Errorf("event has %d attendees, exceeding the limit of %d", len(e.Attendees), e.MaxAttendees)
	}
	return nil
}
