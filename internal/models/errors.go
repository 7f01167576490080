package models

import (
	"errors"
	"net/http"
)

// Typed failures returned by the core services. Handlers map these to HTTP
// status codes with StatusCode; nothing here is fatal to the process.
var (
	// Not found
	ErrNotFound       = errors.New("not found")
	ErrTargetNotFound = errors.New("target family not found")

	// Authorization
	ErrNotAuthorized = errors.New("not authorized")
	ErrSelfRequest   = errors.New("cannot send a meetup request to your own family")

	// Preconditions
	ErrLocationRequired = errors.New("family profile has no location set")

	// State conflicts
	ErrAlreadyResolved  = errors.New("meetup request already resolved")
	ErrEventFull        = errors.New("event is full")
	ErrAlreadyAttending = errors.New("already attending this event")
	ErrNotAttending     = errors.New("not attending this event")
	ErrHostCannotLeave  = errors.New("host cannot cancel their own hosting role")
	ErrProfileExists    = errors.New("family profile already exists")
	ErrGroupFull        = errors.New("group is full")
	ErrAlreadyMember    = errors.New("already a member of this group")
	ErrNotMember        = errors.New("not a member of this group")
	ErrOwnerCannotLeave = errors.New("owner cannot leave the group")
)

// StatusCode maps a service failure to an HTTP status. Unrecognized errors
// are treated as internal.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrTargetNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotAuthorized), errors.Is(err, ErrSelfRequest):
		return http.StatusForbidden
	case errors.Is(err, ErrLocationRequired):
		return http.StatusPreconditionFailed
	case errors.Is(err, ErrAlreadyResolved),
		errors.Is(err, ErrEventFull),
		errors.Is(err, ErrAlreadyAttending),
		errors.Is(err, ErrNotAttending),
		errors.Is(err, ErrHostCannotLeave),
		errors.Is(err, ErrProfileExists),
		errors.Is(err, ErrGroupFull),
		errors.Is(err, ErrAlreadyMember),
		errors.Is(err, ErrNotMember),
		errors.Is(err, ErrOwnerCannotLeave):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
