package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yleanad/village-homeschool-app/internal/helpers"
	"github.com/yleanad/village-homeschool-app/internal/models"
)

type GroupService struct {
	groupRepo models.GroupRepo
}

func NewGroupService(groupRepo models.GroupRepo) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
	}
}

func (gs *GroupService) CreateGroup(ctx context.Context, session *helpers.Session, group *models.CoopGroup) (*models.CoopGroup, error) {
	group.OwnerFamilyID = session.FamilyID
	if err := group.ValidateGroup(); err != nil {
		return nil, err
	}
	return gs.groupRepo.CreateGroup(ctx, group)
}

// ListGroups returns public groups, optionally narrowed by city and type.
// Private groups are discoverable only through direct links.
func (gs *GroupService) ListGroups(ctx context.Context, city string, groupType models.GroupType) ([]*models.CoopGroup, error) {
	return gs.groupRepo.ListPublicGroups(ctx, city, groupType)
}

// MyGroups returns the groups the session family owns and belongs to.
func (gs *GroupService) MyGroups(ctx context.Context, session *helpers.Session) (owned, memberOf []*models.CoopGroup, err error) {
	owned, err = gs.groupRepo.ListOwnedBy(ctx, session.FamilyID)
	if err != nil {
		return nil, nil, err
	}
	memberOf, err = gs.groupRepo.ListMemberOf(ctx, session.FamilyID)
	if err != nil {
		return nil, nil, err
	}
	return owned, memberOf, nil
}

// GetGroup returns the group. Non-members of a private group see the listing
// but not its member roster or pending join requests.
func (gs *GroupService) GetGroup(ctx context.Context, session *helpers.Session, groupID uuid.UUID) (*models.CoopGroup, error) {
	if groupID == uuid.Nil {
		return nil, fmt.Errorf("invalid group ID")
	}

	group, err := gs.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.IsPrivate && !group.HasMember(session.FamilyID) {
		group.Members = nil
		group.JoinRequests = nil
	}
	return group, nil
}

// Join adds the family to a public group directly. For private groups it
// files a join request for the owner or an admin to approve.
func (gs *GroupService) Join(ctx context.Context, session *helpers.Session, groupID uuid.UUID) (pending bool, err error) {
	group, err := gs.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return false, err
	}
	if group.HasMember(session.FamilyID) {
		return false, models.ErrAlreadyMember
	}

	if group.IsPrivate {
		if err := gs.groupRepo.AddJoinRequest(ctx, groupID, session.FamilyID); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, gs.groupRepo.AddMember(ctx, groupID, session.FamilyID, models.RoleMember)
}

// Leave removes the family from the group. The owner cannot leave; they must
// delete the group instead.
func (gs *GroupService) Leave(ctx context.Context, session *helpers.Session, groupID uuid.UUID) error {
	group, err := gs.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.OwnerFamilyID == session.FamilyID {
		return models.ErrOwnerCannotLeave
	}
	return gs.groupRepo.RemoveMember(ctx, groupID, session.FamilyID)
}

// ApproveJoinRequest admits a pending requester. Owner or admin only.
func (gs *GroupService) ApproveJoinRequest(ctx context.Context, session *helpers.Session, groupID, familyID uuid.UUID) error {
	group, err := gs.requireManager(ctx, session, groupID)
	if err != nil {
		return err
	}
	if !group.HasJoinRequest(familyID) {
		return models.ErrNotFound
	}
	return gs.groupRepo.AddMember(ctx, groupID, familyID, models.RoleMember)
}

// RejectJoinRequest drops a pending request without admitting the family.
func (gs *GroupService) RejectJoinRequest(ctx context.Context, session *helpers.Session, groupID, familyID uuid.UUID) error {
	group, err := gs.requireManager(ctx, session, groupID)
	if err != nil {
		return err
	}
	if !group.HasJoinRequest(familyID) {
		return models.ErrNotFound
	}
	return gs.groupRepo.RemoveJoinRequest(ctx, groupID, familyID)
}

// DeleteGroup tears the group down entirely. Owner only.
func (gs *GroupService) DeleteGroup(ctx context.Context, session *helpers.Session, groupID uuid.UUID) error {
	group, err := gs.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.OwnerFamilyID != session.FamilyID {
		return models.ErrNotAuthorized
	}
	return gs.groupRepo.DeleteGroup(ctx, groupID)
}

func (gs *GroupService) requireManager(ctx context.Context, session *helpers.Session, groupID uuid.UUID) (*models.CoopGroup, error) {
	group, err := gs.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	role := group.MemberRole(session.FamilyID)
	if role != models.RoleOwner && role != models.RoleAdmin {
		return nil, models.ErrNotAuthorized
	}
	return group, nil
}
