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

const EventsColName = "events"

type EventFilter struct {
	City         string
	EventType    EventType
	UpcomingFrom string // YYYY-MM-DD; empty disables the cutoff
}

type EventRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	GetEvent(ctx context.Context, eventID uuid.UUID) (*Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	ListHostedBy(ctx context.Context, familyID uuid.UUID) ([]*Event, error)
	ListAttending(ctx context.Context, familyID uuid.UUID) ([]*Event, error)
	// ListCalendar returns events the family hosts or attends with a date in
	// [startDate, endDate).
	ListCalendar(ctx context.Context, familyID uuid.UUID, startDate, endDate string) ([]*Event, error)
	// AddAttendee admits a family if and only if it is not already attending
	// and the event is not full. The single conditional update serializes
	// concurrent RSVPs so the last slot cannot be granted twice.
	AddAttendee(ctx context.Context, eventID, familyID uuid.UUID) error
	RemoveAttendee(ctx context.Context, eventID, familyID uuid.UUID) error
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	event.BeforeCreate()
	if _, err := col.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("error inserting event: %w", err)
	}
	return event, nil
}

func (mdb *MongodbRepo) GetEvent(ctx context.Context, eventID uuid.UUID) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var event Event
	err = col.FindOne(ctx, bson.M{"event_id": eventID}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error finding event: %w", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error) {
	query := bson.M{}
	if filter.City != "" {
		query["city"] = bson.M{"$regex": filter.City, "$options": "i"}
	}
	if filter.EventType != "" {
		query["event_type"] = filter.EventType
	}
	if filter.UpcomingFrom != "" {
		query["event_date"] = bson.M{"$gte": filter.UpcomingFrom}
	}
	return mdb.listEvents(ctx, query)
}

func (mdb *MongodbRepo) ListHostedBy(ctx context.Context, familyID uuid.UUID) ([]*Event, error) {
	return mdb.listEvents(ctx, bson.M{"host_family_id": familyID})
}

func (mdb *MongodbRepo) ListAttending(ctx context.Context, familyID uuid.UUID) ([]*Event, error) {
	return mdb.listEvents(ctx, bson.M{
		"attendees":      familyID,
		"host_family_id": bson.M{"$ne": familyID},
	})
}

func (mdb *MongodbRepo) ListCalendar(ctx context.Context, familyID uuid.UUID, startDate, endDate string) ([]*Event, error) {
	return mdb.listEvents(ctx, bson.M{
		"$or": []bson.M{
			{"host_family_id": familyID},
			{"attendees": familyID},
		},
		"event_date": bson.M{"$gte": startDate, "$lt": endDate},
	})
}

func (mdb *MongodbRepo) listEvents(ctx context.Context, query bson.M) ([]*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "event_date", Value: 1}})
	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*Event
	for cursor.Next(ctx) {
		var e Event
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("error decoding event: %w", err)
		}
		events = append(events, &e)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return events, nil
}

func (mdb *MongodbRepo) AddAttendee(ctx context.Context, eventID, familyID uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{
		"event_id":  eventID,
		"attendees": bson.M{"$ne": familyID},
		"$or": []bson.M{
			{"max_attendees": bson.M{"$exists": false}},
			{"max_attendees": 0},
			{"$expr": bson.M{"$lt": bson.A{bson.M{"$size": "$attendees"}, "$max_attendees"}}},
		},
	}

	res, err := col.UpdateOne(ctx, filter, bson.M{"$addToSet": bson.M{"attendees": familyID}})
	if err != nil {
		return fmt.Errorf("error adding attendee: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	// The guarded update matched nothing; re-read to classify the conflict.
	event, err := mdb.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.HasAttendee(familyID) {
		return ErrAlreadyAttending
	}
	if event.MaxAttendees > 0 && len(event.Attendees) >= event.MaxAttendees {
		return ErrEventFull
	}
	return fmt.Errorf("failed to add attendee to event %s", eventID)
}

func (mdb *MongodbRepo) RemoveAttendee(ctx context.Context, eventID, familyID uuid.UUID) error {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{"event_id": eventID, "attendees": familyID}
	res, err := col.UpdateOne(ctx, filter, bson.M{"$pull": bson.M{"attendees": familyID}})
	if err != nil {
		return fmt.Errorf("error removing attendee: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	if _, err := mdb.GetEvent(ctx, eventID); err != nil {
		return err
	}
	return ErrNotAttending
}
