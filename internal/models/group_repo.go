package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const GroupsColName = "coop_groups"

type GroupRepo interface {
	CreateGroup(ctx context.Context, group *CoopGroup) (*CoopGroup, error)
	GetGroup(ctx context.Context, groupID uuid.UUID) (*CoopGroup, error)
	ListPublicGroups(ctx context.Context, city string, groupType GroupType) ([]*CoopGroup, error)
	ListOwnedBy(ctx context.Context, familyID uuid.UUID) ([]*CoopGroup, error)
	ListMemberOf(ctx context.Context, familyID uuid.UUID) ([]*CoopGroup, error)
	// AddMember admits a family if it is not already a member and the group
	// is not full, using the same guarded-update pattern as event RSVPs.
	AddMember(ctx context.Context, groupID, familyID uuid.UUID, role GroupRole) error
	RemoveMember(ctx context.Context, groupID, familyID uuid.UUID) error
	AddJoinRequest(ctx context.Context, groupID, familyID uuid.UUID) error
	RemoveJoinRequest(ctx context.Context, groupID, familyID uuid.UUID) error
	DeleteGroup(ctx context.Context, groupID uuid.UUID) error
}

func (mdb *MongodbRepo) CreateGroup(ctx context.Context, group *CoopGroup) (*CoopGroup, error) {
	col, err := mdb.GetCollection(ctx, GroupsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	group.BeforeCreate()
	if _, err := col.InsertOne(ctx, group); err != nil {
		return nil, fmt.Errorf("error inserting group: %w", err)
	}
	return group, nil
}

func (mdb *MongodbRepo) GetGroup(ctx context.Context, groupID uuid.UUID) (*CoopGroup, error) {
	col, err := mdb.GetCollection(ctx, GroupsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var group CoopGroup
	err = col.FindOne(ctx, bson.M{"group_id": groupID}).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding group: %w", err)
	}
	return &group, nil
}

func (mdb *MongodbRepo) ListPublicGroups(ctx context.Context, city string, groupType GroupType) ([]*CoopGroup, error) {
	query := bson.M{"is_private": false}
	if city != "" {
		query["city"] = bson.M{"$regex": city, "$options": "i"}
	}
	if groupType != "" {
		query["group_type"] = groupType
	}
	return mdb.listGroups(ctx, query)
}

func (mdb *MongodbRepo) ListOwnedBy(ctx context.Context, familyID uuid.UUID) ([]*CoopGroup, error) {
	return mdb.listGroups(ctx, bson.M{"owner_family_id": familyID})
}

func (mdb *MongodbRepo) ListMemberOf(ctx context.Context, familyID uuid.UUID) ([]*CoopGroup, error) {
	return mdb.listGroups(ctx, bson.M{
		"members.family_id": familyID,
		"owner_family_id":   bson.M{"$ne": familyID},
	})
}

func (mdb *MongodbRepo) listGroups(ctx context.Context, query bson.M) ([]*CoopGroup, error) {
	col, err := mdb.GetCollection(ctx, GroupsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	cursor, err := col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing groups: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []*CoopGroup
	for cursor.Next(ctx) {
		var g CoopGroup
		if err := cursor.Decode(&g); err != nil {
			return nil, fmt.Errorf("error decoding group: %w", err)
		}
		groups = append(groups, &g)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return groups, nil
}

func (mdb *MongodbRepo) AddMember(ctx context.Context, groupID, familyID uuid.UUID, role GroupRole) error {
	col, err := mdb.GetCollection(ctx, GroupsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{
		"group_id":          groupID,
		"members.family_id": bson.M{"$ne": familyID},
		"$or": []bson.M{
			{"max_members": bson.M{"$exists": false}},
			{"max_members": 0},
			{"$expr": bson.M{"$lt": bson.A{bson.M{"$size": "$members"}, "$max_members"}}},
		},
	}
	update := bson.M{
		"$push": bson.M{"members": GroupMember{
			FamilyID: familyID,
			Role:     role,
			JoinedAt: time.Now().UTC(),
		}},
		"$pull": bson.M{"join_requests": bson.M{"family_id": familyID}},
	}

	res, err := col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error adding member: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	group, err := mdb.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.HasMember(familyID) {
		return ErrAlreadyMember
	}
	if group.MaxMembers > 0 && len(group.Members) >= group.MaxMembers {
		return ErrGroupFull
	}
	return fmt.Errorf("failed to add member to group %s", groupID)
}

func (mdb *MongodbRepo) RemoveMember(ctx context.Context, groupID, familyID uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, GroupsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{"group_id": groupID, "members.family_id": familyID}
	res, err := col.UpdateOne(ctx, filter, bson.M{"$pull": bson.M{"members": bson.M{"family_id": familyID}}})
	if err != nil {
		return fmt.Errorf("error removing member: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	if _, err := mdb.GetGroup(ctx, groupID); err != nil {
		return err
	}
	return ErrNotMember
}

func (mdb *MongodbRepo) AddJoinRequest(ctx context.Context, groupID, familyID uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, GroupsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{
		"group_id":               groupID,
		"members.family_id":      bson.M{"$ne": familyID},
		"join_requests.family_id": bson.M{"$ne": familyID},
	}
	update := bson.M{"$push": bson.M{"join_requests": JoinRequest{
		FamilyID:    familyID,
		RequestedAt: time.Now().UTC(),
	}}}

	res, err := col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error adding join request: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	group, err := mdb.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.HasMember(familyID) {
		return ErrAlreadyMember
	}
	// A duplicate join request is a no-op.
	return nil
}

func (mdb *MongodbRepo) RemoveJoinRequest(ctx context.Context, groupID, familyID uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, GroupsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	_, err = col.UpdateOne(ctx,
		bson.M{"group_id": groupID},
		bson.M{"$pull": bson.M{"join_requests": bson.M{"family_id": familyID}}},
	)
	if err != nil {
		return fmt.Errorf("error removing join request: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) DeleteGroup(ctx context.Context, groupID uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, GroupsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return fmt.Errorf("error deleting group: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
