package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Drona-Balasara/ALUMNET/models"
)

// CreateEvent inserts a new event document.
func CreateEvent(ctx context.Context, ev *models.Event) error {
	if ev.ID.IsZero() {
		ev.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	ev.Version = 1
	if ev.Attendees == nil {
		ev.Attendees = []models.Attendee{}
	}
	if ev.Waitlist == nil {
		ev.Waitlist = []models.WaitlistEntry{}
	}
	_, err := eventsColl().InsertOne(ctx, ev)
	return err
}

// GetEvent loads one event by id.
func GetEvent(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var ev models.Event
	err := eventsColl().FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// UpdateEvent loads the event, applies fn, and saves with a version check.
// A business error from fn aborts without writing; a lost version race
// reloads and retries.
func UpdateEvent(ctx context.Context, id primitive.ObjectID, fn func(*models.Event) error) (*models.Event, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		ev, err := GetEvent(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := fn(ev); err != nil {
			return nil, err
		}

		expected := ev.Version
		ev.Version++
		ev.UpdatedAt = time.Now().UTC()

		res, err := eventsColl().ReplaceOne(ctx, bson.M{"_id": id, "version": expected}, ev)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 1 {
			return ev, nil
		}
	}
	return nil, ErrConflict
}

// EventListOptions filters the upcoming-events listing.
type EventListOptions struct {
	Type  string
	Page  int64
	Limit int64
}

// ListUpcomingEvents returns active public events with a future date, soonest
// first, plus the total match count for pagination.
func ListUpcomingEvents(ctx context.Context, opts EventListOptions) ([]models.Event, int64, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 || opts.Limit > 100 {
		opts.Limit = 20
	}

	filter := bson.M{
		"is_active": true,
		"is_public": true,
		"date":      bson.M{"$gt": time.Now().UTC()},
	}
	if opts.Type != "" {
		filter["type"] = opts.Type
	}

	total, err := eventsColl().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}}).
		SetSkip((opts.Page - 1) * opts.Limit).
		SetLimit(opts.Limit)

	cursor, err := eventsColl().Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// IncrementEventViews bumps the view counter. Plain $inc: the counter is not
// part of the aggregate's invariants, so no version check is needed.
func IncrementEventViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := eventsColl().UpdateByID(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// DeactivateExpiredEvents soft-retires events whose date has passed.
// Idempotent; safe to run from the periodic sweep.
func DeactivateExpiredEvents(ctx context.Context, now time.Time) (int64, error) {
	res, err := eventsColl().UpdateMany(ctx,
		bson.M{"is_active": true, "date": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": now}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
