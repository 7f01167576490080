package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FamilyLocation is set once geocoding succeeds. A profile without one is
// excluded from discovery.
type FamilyLocation struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	City      string  `bson:"city" json:"city"`
	State     string  `bson:"state" json:"state"`
	ZipCode   string  `bson:"zip_code" json:"zip_code"`
}

type Child struct {
	Name string `bson:"name" json:"name" validate:"required"`
	Age  int    `bson:"age" json:"age" validate:"gte=0"`
}

// FamilyProfile is the unit of identity for discovery: one household, not
// one user. One profile per user, created at onboarding.
type FamilyProfile struct {
	ID             uuid.UUID       `bson:"family_id" json:"family_id"`
	UserID         uuid.UUID       `bson:"user_id" json:"user_id"`
	FamilyName     string          `bson:"family_name" json:"family_name" validate:"required"`
	Bio            string          `bson:"bio,omitempty" json:"bio,omitempty"`
	Location       *FamilyLocation `bson:"location,omitempty" json:"location,omitempty"`
	Children       []Child         `bson:"kids" json:"kids" validate:"dive"`
	Interests      []string        `bson:"interests" json:"interests"`
	SearchRadius   int             `bson:"search_radius" json:"search_radius" validate:"gt=0"`
	ProfilePicture string          `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`
	CreatedAt      time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `bson:"updated_at" json:"updated_at"`
}

// DiscoveryResult is ephemeral, produced fresh per query and never persisted.
// DistanceMiles is rounded to one decimal for display.
type DiscoveryResult struct {
	Family        *FamilyProfile `json:"family"`
	DistanceMiles float64        `json:"distance_miles"`
}

// NormalizeInterests deduplicates interest tags case-insensitively,
// preserving first-seen casing and order.
func (fp *FamilyProfile) NormalizeInterests() {
	seen := make(map[string]bool, len(fp.Interests))
	out := fp.Interests[:0]
	for _, tag := range fp.Interests {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	fp.Interests = out
}

// ValidateProfile checks the struct tags plus the coordinate-range invariant
// the distance calculator relies on.
func (fp *FamilyProfile) ValidateProfile() error {
	if err := Validate.Struct(fp); err != nil {
		return fmt.Errorf("invalid family profile: %w", err)
	}
	if loc := fp.Location; loc != nil {
		if loc.Latitude < -90 || loc.Latitude > 90 {
			return fmt.Errorf("latitude %f out of range [-90, 90]", loc.Latitude)
		}
		if loc.Longitude < -180 || loc.Longitude > 180 {
			return fmt.Errorf("longitude %f out of range [-180, 180]", loc.Longitude)
		}
	}
	return nil
}

func (fp *FamilyProfile) BeforeCreate() {
	if fp.ID == uuid.Nil {
		fp.ID = uuid.New()
	}
	now := time.Now().UTC()
	fp.CreatedAt = now
	fp.UpdatedAt = now
}
