package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yleanad/village-homeschool-app/internal/helpers"
	"github.com/yleanad/village-homeschool-app/internal/models"
)

// MeetupService runs the proposal lifecycle between two families:
// pending -> accepted (which creates a confirmed meetup event) or
// pending -> declined. Terminal states are immutable.
type MeetupService struct {
	meetupRepo models.MeetupRepo
	familyRepo models.FamilyRepo
}

func NewMeetupService(meetupRepo models.MeetupRepo, familyRepo models.FamilyRepo) *MeetupService {
	return &MeetupService{
		meetupRepo: meetupRepo,
		familyRepo: familyRepo,
	}
}

// CreateRequest proposes a meetup from the session family to the target.
// Multiple pending requests between the same pair are allowed.
func (ms *MeetupService) CreateRequest(ctx context.Context, session *helpers.Session, request *models.MeetupRequest) (*models.MeetupRequest, error) {
	request.RequesterFamilyID = session.FamilyID

	if err := request.ValidateRequest(); err != nil {
		return nil, err
	}

	if _, err := ms.familyRepo.GetProfileByID(ctx, request.TargetFamilyID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrTargetNotFound
		}
		return nil, err
	}

	return ms.meetupRepo.CreateRequest(ctx, request)
}

// Accept resolves a pending request and creates the meetup event in the same
// transaction. Only the target family may accept; a second resolution
// observes ErrAlreadyResolved.
func (ms *MeetupService) Accept(ctx context.Context, session *helpers.Session, requestID uuid.UUID) (*models.MeetupRequest, error) {
	request, err := ms.meetupRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.TargetFamilyID != session.FamilyID {
		return nil, models.ErrNotAuthorized
	}

	event, err := ms.buildMeetupEvent(ctx, request)
	if err != nil {
		return nil, err
	}

	if err := ms.meetupRepo.AcceptRequestWithEvent(ctx, requestID, event); err != nil {
		return nil, err
	}

	request.Status = models.MeetupAccepted
	return request, nil
}

// Decline resolves a pending request with no side effects.
func (ms *MeetupService) Decline(ctx context.Context, session *helpers.Session, requestID uuid.UUID) (*models.MeetupRequest, error) {
	request, err := ms.meetupRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.TargetFamilyID != session.FamilyID {
		return nil, models.ErrNotAuthorized
	}

	if err := ms.meetupRepo.DeclineRequest(ctx, requestID); err != nil {
		return nil, err
	}

	request.Status = models.MeetupDeclined
	return request, nil
}

// ListRequests returns requests sent to and by the session family.
func (ms *MeetupService) ListRequests(ctx context.Context, session *helpers.Session) (incoming, outgoing []*models.MeetupRequest, err error) {
	incoming, err = ms.meetupRepo.ListIncoming(ctx, session.FamilyID)
	if err != nil {
		return nil, nil, err
	}
	outgoing, err = ms.meetupRepo.ListOutgoing(ctx, session.FamilyID)
	if err != nil {
		return nil, nil, err
	}
	return incoming, outgoing, nil
}

// buildMeetupEvent constructs the event an acceptance creates: hosted by the
// target family, attended by both parties, capped at the pair.
func (ms *MeetupService) buildMeetupEvent(ctx context.Context, request *models.MeetupRequest) (*models.Event, error) {
	requester, err := ms.familyRepo.GetProfileByID(ctx, request.RequesterFamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requester profile: %w", err)
	}
	target, err := ms.familyRepo.GetProfileByID(ctx, request.TargetFamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load target profile: %w", err)
	}

	description := request.Message
	if description == "" {
		description = "Scheduled meetup"
	}

	event := &models.Event{
		HostFamilyID: target.ID,
		Title:        fmt.Sprintf("Meetup with %s", requester.FamilyName),
		Description:  description,
		EventType:    models.EventMeetup,
		Date:         request.ProposedDate,
		Time:         request.ProposedTime,
		Location:     request.Location,
		MaxAttendees: 2,
		Attendees:    []uuid.UUID{request.RequesterFamilyID, request.TargetFamilyID},
		Status:       models.EventConfirmed,
	}
	if target.Location != nil {
		event.City = target.Location.City
		event.State = target.Location.State
		event.ZipCode = target.Location.ZipCode
	}
	return event, nil
}
