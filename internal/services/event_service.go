package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yleanad/village-homeschool-app/internal/helpers"
	"github.com/yleanad/village-homeschool-app/internal/models"
)

type EventService struct {
	eventRepo models.EventRepo
}

func NewEventService(eventRepo models.EventRepo) *EventService {
	return &EventService{
		eventRepo: eventRepo,
	}
}

func (es *EventService) CreateEvent(ctx context.Context, session *helpers.Session, event *models.Event) (*models.Event, error) {
	event.HostFamilyID = session.FamilyID
	if event.EventType == "" {
		event.EventType = models.EventMeetup
	}
	if err := event.ValidateEvent(); err != nil {
		return nil, err
	}
	return es.eventRepo.CreateEvent(ctx, event)
}

func (es *EventService) GetEvent(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	if eventID == uuid.Nil {
		return nil, fmt.Errorf("invalid event ID")
	}
	return es.eventRepo.GetEvent(ctx, eventID)
}

// ListEvents returns one page of upcoming events, optionally narrowed by
// city and type, along with the total match count. limit <= 0 disables
// paging and returns everything.
func (es *EventService) ListEvents(ctx context.Context, city string, eventType models.EventType, upcomingOnly bool, offset, limit int) ([]*models.Event, int, error) {
	filter := models.EventFilter{
		City:      city,
		EventType: eventType,
	}
	if upcomingOnly {
		filter.UpcomingFrom = time.Now().UTC().Format("2006-01-02")
	}

	events, err := es.eventRepo.ListEvents(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total := len(events)
	if limit <= 0 {
		return events, total, nil
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []*models.Event{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return events[offset:end], total, nil
}

// MyEvents returns the events the session family hosts and those it attends.
func (es *EventService) MyEvents(ctx context.Context, session *helpers.Session) (hosted, attending []*models.Event, err error) {
	hosted, err = es.eventRepo.ListHostedBy(ctx, session.FamilyID)
	if err != nil {
		return nil, nil, err
	}
	attending, err = es.eventRepo.ListAttending(ctx, session.FamilyID)
	if err != nil {
		return nil, nil, err
	}
	return hosted, attending, nil
}

// CalendarEvents returns the family's hosted and attended events for one
// calendar month. Zero month/year default to the current month.
func (es *EventService) CalendarEvents(ctx context.Context, session *helpers.Session, year int, month time.Month) ([]*models.Event, error) {
	now := time.Now().UTC()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	return es.eventRepo.ListCalendar(ctx, session.FamilyID,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// Rsvp commits the session family to the event. The capacity and duplicate
// checks are enforced atomically by the repo so the last slot is granted at
// most once.
func (es *EventService) Rsvp(ctx context.Context, session *helpers.Session, eventID uuid.UUID) error {
	if eventID == uuid.Nil {
		return fmt.Errorf("invalid event ID")
	}
	return es.eventRepo.AddAttendee(ctx, eventID, session.FamilyID)
}

// CancelRsvp withdraws the session family. The host's attendance represents
// the hosting role itself and cannot be cancelled here.
func (es *EventService) CancelRsvp(ctx context.Context, session *helpers.Session, eventID uuid.UUID) error {
	if eventID == uuid.Nil {
		return fmt.Errorf("invalid event ID")
	}

	event, err := es.eventRepo.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.HostFamilyID == session.FamilyID {
		return models.ErrHostCannotLeave
	}

	return es.eventRepo.RemoveAttendee(ctx, eventID, session.FamilyID)
}
