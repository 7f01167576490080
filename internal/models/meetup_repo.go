package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MeetupRequestsColName = "meetup_requests"

type MeetupRepo interface {
	CreateRequest(ctx context.Context, request *MeetupRequest) (*MeetupRequest, error)
	GetRequest(ctx context.Context, requestID uuid.UUID) (*MeetupRequest, error)
	ListIncoming(ctx context.Context, familyID uuid.UUID) ([]*MeetupRequest, error)
	ListOutgoing(ctx context.Context, familyID uuid.UUID) ([]*MeetupRequest, error)
	// DeclineRequest transitions pending -> declined. Returns
	// ErrAlreadyResolved if the request is already terminal.
	DeclineRequest(ctx context.Context, requestID uuid.UUID) error
	// AcceptRequestWithEvent transitions pending -> accepted and inserts the
	// event in a single transaction: both succeed or neither does, and when
	// two resolutions race exactly one wins.
	AcceptRequestWithEvent(ctx context.Context, requestID uuid.UUID, event *Event) error
}

func (mdb *MongodbRepo) CreateRequest(ctx context.Context, request *MeetupRequest) (*MeetupRequest, error) {
	col, err := mdb.GetCollection(ctx, MeetupRequestsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	request.BeforeCreate()
	if _, err := col.InsertOne(ctx, request); err != nil {
		return nil, fmt.Errorf("error inserting meetup request: %w", err)
	}
	return request, nil
}

func (mdb *MongodbRepo) GetRequest(ctx context.Context, requestID uuid.UUID) (*MeetupRequest, error) {
	col, err := mdb.GetCollection(ctx, MeetupRequestsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var request MeetupRequest
	err = col.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding meetup request: %w", err)
	}
	return &request, nil
}

func (mdb *MongodbRepo) ListIncoming(ctx context.Context, familyID uuid.UUID) ([]*MeetupRequest, error) {
	return mdb.listRequests(ctx, bson.M{"target_family_id": familyID})
}

func (mdb *MongodbRepo) ListOutgoing(ctx context.Context, familyID uuid.UUID) ([]*MeetupRequest, error) {
	return mdb.listRequests(ctx, bson.M{"requester_family_id": familyID})
}

func (mdb *MongodbRepo) listRequests(ctx context.Context, filter bson.M) ([]*MeetupRequest, error) {
	col, err := mdb.GetCollection(ctx, MeetupRequestsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing meetup requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*MeetupRequest
	for cursor.Next(ctx) {
		var r MeetupRequest
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("error decoding meetup request: %w", err)
		}
		requests = append(requests, &r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return requests, nil
}

func (mdb *MongodbRepo) DeclineRequest(ctx context.Context, requestID uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, MeetupRequestsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	res, err := col.UpdateOne(ctx,
		bson.M{"request_id": requestID, "status": MeetupPending},
		bson.M{"$set": bson.M{"status": MeetupDeclined}},
	)
	if err != nil {
		return fmt.Errorf("error declining meetup request: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	if _, err := mdb.GetRequest(ctx, requestID); err != nil {
		return err
	}
	return ErrAlreadyResolved
}

func (mdb *MongodbRepo) AcceptRequestWithEvent(ctx context.Context, requestID uuid.UUID, event *Event) error {
	session, err := mdb.mongodbClient.StartSession()
	if err != nil {
		return fmt.Errorf("error starting session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		reqCol, err := mdb.GetCollection(sc, MeetupRequestsColName)
		if err != nil {
			return nil, fmt.Errorf("error getting collection: %w", err)
		}

		// Guarded on status so two concurrent resolutions cannot both win.
		res, err := reqCol.UpdateOne(sc,
			bson.M{"request_id": requestID, "status": MeetupPending},
			bson.M{"$set": bson.M{"status": MeetupAccepted}},
		)
		if err != nil {
			return nil, fmt.Errorf("error accepting meetup request: %w", err)
		}
		if res.MatchedCount == 0 {
			var request MeetupRequest
			findErr := reqCol.FindOne(sc, bson.M{"request_id": requestID}).Decode(&request)
			if errors.Is(findErr, mongo.ErrNoDocuments) {
				return nil, ErrNotFound
			}
			if findErr != nil {
				return nil, fmt.Errorf("error finding meetup request: %w", findErr)
			}
			return nil, ErrAlreadyResolved
		}

		eventCol, err := mdb.GetCollection(sc, EventsColName)
		if err != nil {
			return nil, fmt.Errorf("error getting collection: %w", err)
		}
		event.BeforeCreate()
		if _, err := eventCol.InsertOne(sc, event); err != nil {
			return nil, fmt.Errorf("error inserting meetup event: %w", err)
		}

		return nil, nil
	})
	return err
}
