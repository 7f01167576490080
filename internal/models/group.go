package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type GroupType string

const (
	GroupCoop         GroupType = "co-op"
	GroupSupportGroup GroupType = "support_group"
	GroupActivityClub GroupType = "activity_club"
)

type GroupRole string

const (
	RoleOwner  GroupRole = "owner"
	RoleAdmin  GroupRole = "admin"
	RoleMember GroupRole = "member"
)

type GroupMember struct {
	FamilyID uuid.UUID `bson:"family_id" json:"family_id"`
	Role     GroupRole `bson:"role" json:"role"`
	JoinedAt time.Time `bson:"joined_at" json:"joined_at"`
}

type JoinRequest struct {
	FamilyID    uuid.UUID `bson:"family_id" json:"family_id"`
	RequestedAt time.Time `bson:"requested_at" json:"requested_at"`
}

// CoopGroup is a homeschool co-op, support group, or activity club. The owner
// is always the first member. MaxMembers == 0 means unlimited.
type CoopGroup struct {
	ID               uuid.UUID     `bson:"group_id" json:"group_id"`
	OwnerFamilyID    uuid.UUID     `bson:"owner_family_id" json:"owner_family_id"`
	Name             string        `bson:"name" json:"name" validate:"required"`
	Description      string        `bson:"description,omitempty" json:"description,omitempty"`
	City             string        `bson:"city" json:"city" validate:"required"`
	State            string        `bson:"state" json:"state" validate:"required"`
	ZipCode          string        `bson:"zip_code" json:"zip_code"`
	GroupType        GroupType     `bson:"group_type" json:"group_type" validate:"required,oneof=co-op support_group activity_club"`
	FocusAreas       []string      `bson:"focus_areas,omitempty" json:"focus_areas,omitempty"`
	AgeRange         string        `bson:"age_range,omitempty" json:"age_range,omitempty"`
	MeetingFrequency string        `bson:"meeting_frequency,omitempty" json:"meeting_frequency,omitempty"`
	MaxMembers       int           `bson:"max_members,omitempty" json:"max_members,omitempty" validate:"gte=0"`
	IsPrivate        bool          `bson:"is_private" json:"is_private"`
	Members          []GroupMember `bson:"members" json:"members"`
	JoinRequests     []JoinRequest `bson:"join_requests,omitempty" json:"join_requests,omitempty"`
	CreatedAt        time.Time     `bson:"created_at" json:"created_at"`
}

func (g *CoopGroup) BeforeCreate() {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	g.CreatedAt = time.Now().UTC()
	if !g.HasMember(g.OwnerFamilyID) {
		g.Members = append(g.Members, GroupMember{
			FamilyID: g.OwnerFamilyID,
			Role:     RoleOwner,
			JoinedAt: g.CreatedAt,
		})
	}
}

func (g *CoopGroup) HasMember(familyID uuid.UUID) bool {
	return g.MemberRole(familyID) != ""
}

// MemberRole returns the family's role, or "" when it is not a member.
func (g *CoopGroup) MemberRole(familyID uuid.UUID) GroupRole {
	for _, m := range g.Members {
		if m.FamilyID == familyID {
			return m.Role
		}
	}
	return ""
}

func (g *CoopGroup) HasJoinRequest(familyID uuid.UUID) bool {
	for _, r := range g.JoinRequests {
		if r.FamilyID == familyID {
			return true
		}
	}
	return false
}

func (g *CoopGroup) ValidateGroup() error {
	if err := Validate.Struct(g); err != nil {
		return fmt.Errorf("invalid group: %w", err)
	}
	return nil
}
