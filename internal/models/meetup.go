package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MeetupStatus string

// pending is the only non-terminal state; accepted and declined are
// immutable once set.
const (
	MeetupPending  MeetupStatus = "pending"
	MeetupAccepted MeetupStatus = "accepted"
	MeetupDeclined MeetupStatus = "declined"
)

// MeetupRequest is the proposal object mediating the handshake before an
// Event is created.
type MeetupRequest struct {
	ID                uuid.UUID    `bson:"request_id" json:"request_id"`
	RequesterFamilyID uuid.UUID    `bson:"requester_family_id" json:"requester_family_id"`
	TargetFamilyID    uuid.UUID    `bson:"target_family_id" json:"target_family_id"`
	ProposedDate      string       `bson:"proposed_date" json:"proposed_date" validate:"required"` // YYYY-MM-DD
	ProposedTime      string       `bson:"proposed_time" json:"proposed_time" validate:"required"` // HH:MM
	Location          string       `bson:"location" json:"location" validate:"required"`
	Message           string       `bson:"message,omitempty" json:"message,omitempty"`
	Status            MeetupStatus `bson:"status" json:"status"`
	CreatedAt         time.Time    `bson:"created_at" json:"created_at"`
}

func (mr *MeetupRequest) BeforeCreate() {
	if mr.ID == uuid.Nil {
		mr.ID = uuid.New()
	}
	mr.Status = MeetupPending
	mr.CreatedAt = time.Now().UTC()
}

func (mr *MeetupRequest) ValidateRequest() error {
	if err := Validate.Struct(mr); err != nil {
		return fmt.Errorf("invalid meetup request: %w", err)
	}
	if _, err := time.Parse("2006-01-02", mr.ProposedDate); err != nil {
		return fmt.Errorf("invalid proposed date %q: %w", mr.ProposedDate, err)
	}
	if _, err := time.Parse("15:04", mr.ProposedTime); err != nil {
		return fmt.Errorf("invalid proposed time %q: %w", mr.ProposedTime, err)
	}
	if mr.RequesterFamilyID == mr.TargetFamilyID {
		return ErrSelfRequest
	}
	return nil
}
