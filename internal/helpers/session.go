package helpers

import "github.com/google/uuid"

// Session is the explicit per-request identity passed into the core services.
// Nothing in the core reads ambient auth state; middleware builds one of
// these from the validated token and the family profile lookup.
type Session struct {
	UserID   uuid.UUID
	Email    string
	FamilyID uuid.UUID
}

// HasFamily reports whether the user has completed onboarding. Discovery,
// meetups, events, and groups all require a family profile.
func (s *Session) HasFamily() bool {
	return s.FamilyID != uuid.Nil
}
