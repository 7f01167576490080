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

const FamiliesColName = "family_profiles"

type FamilyRepo interface {
	CreateProfile(ctx context.Context, profile *FamilyProfile) (*FamilyProfile, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*FamilyProfile, error)
	GetProfileByID(ctx context.Context, familyID uuid.UUID) (*FamilyProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update map[string]interface{}) (*FamilyProfile, error)
	// ListCandidates returns every profile except the given family and except
	// profiles whose location has not been geocoded yet.
	ListCandidates(ctx context.Context, excludeFamilyID uuid.UUID) ([]*FamilyProfile, error)
	// ListOthers returns every profile except the given family, regardless of
	// location state. Used by text search.
	ListOthers(ctx context.Context, excludeFamilyID uuid.UUID) ([]*FamilyProfile, error)
}

func (mdb *MongodbRepo) CreateProfile(ctx context.Context, profile *FamilyProfile) (*FamilyProfile, error) {
	col, err := mdb.GetCollection(ctx, FamiliesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	existing := col.FindOne(ctx, bson.M{"user_id": profile.UserID})
	if existing.Err() == nil {
		return nil, ErrProfileExists
	}
	if !errors.Is(existing.Err(), mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error checking for existing profile: %w", existing.Err())
	}

	profile.BeforeCreate()
	if _, err := col.InsertOne(ctx, profile); err != nil {
		return nil, fmt.Errorf("error inserting family profile: %w", err)
	}
	return profile, nil
}

func (mdb *MongodbRepo) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*FamilyProfile, error) {
	col, err := mdb.GetCollection(ctx, FamiliesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var profile FamilyProfile
	err = col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding family profile: %w", err)
	}
	return &profile, nil
}

func (mdb *MongodbRepo) GetProfileByID(ctx context.Context, familyID uuid.UUID) (*FamilyProfile, error) {
	col, err := mdb.GetCollection(ctx, FamiliesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var profile FamilyProfile
	err = col.FindOne(ctx, bson.M{"family_id": familyID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding family profile: %w", err)
	}
	return &profile, nil
}

func (mdb *MongodbRepo) UpdateProfile(ctx context.Context, userID uuid.UUID, update map[string]interface{}) (*FamilyProfile, error) {
	col, err := mdb.GetCollection(ctx, FamiliesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	update["updated_at"] = time.Now().UTC()

	res, err := col.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": update})
	if err != nil {
		return nil, fmt.Errorf("error updating family profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	return mdb.GetProfileByUserID(ctx, userID)
}

func (mdb *MongodbRepo) ListCandidates(ctx context.Context, excludeFamilyID uuid.UUID) ([]*FamilyProfile, error) {
	filter := bson.M{
		"family_id": bson.M{"$ne": excludeFamilyID},
		"location":  bson.M{"$ne": nil},
	}
	return mdb.listProfiles(ctx, filter)
}

func (mdb *MongodbRepo) ListOthers(ctx context.Context, excludeFamilyID uuid.UUID) ([]*FamilyProfile, error) {
	return mdb.listProfiles(ctx, bson.M{"family_id": bson.M{"$ne": excludeFamilyID}})
}

func (mdb *MongodbRepo) listProfiles(ctx context.Context, filter bson.M) ([]*FamilyProfile, error) {
	col, err := mdb.GetCollection(ctx, FamiliesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing family profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*FamilyProfile
	for cursor.Next(ctx) {
		var p FamilyProfile
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("error decoding family profile: %w", err)
		}
		profiles = append(profiles, &p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return profiles, nil
}
