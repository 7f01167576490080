package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record behind a family profile. Authentication is
// delegated wholesale to Supabase; this repo never touches passwords.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email" validate:"required,email"`
	Name      string    `json:"name" validate:"required"`
	Password  string    `json:"password,omitempty" validate:"required,min=8"`
	CreatedAt time.Time `json:"created_at"`
}
