package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/Drona-Balasara/ALUMNET/config"
	"github.com/Drona-Balasara/ALUMNET/models"
)

func eventDoc(id primitive.ObjectID, version int64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Alumni Meetup"},
		{Key: "type", Value: models.EventNetworking},
		{Key: "date", Value: primitive.NewDateTimeFromTime(time.Now().Add(24 * time.Hour))},
		{Key: "capacity", Value: 10},
		{Key: "organizer", Value: primitive.NewObjectID()},
		{Key: "attendees", Value: bson.A{}},
		{Key: "waitlist", Value: bson.A{}},
		{Key: "is_active", Value: true},
		{Key: "version", Value: version},
	}
}

func replaceResult(matched int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: matched},
		bson.E{Key: "nModified", Value: matched},
	)
}

func TestGetEvent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the decoded event", func(mt *mtest.T) {
		config.DB = mt.DB
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "alumnet.events", mtest.FirstBatch, eventDoc(id, 3)))

		ev, err := GetEvent(context.Background(), id)
		if err != nil {
			mt.Fatalf("GetEvent: %v", err)
		}
		if ev.ID != id {
			mt.Errorf("id = %s, want %s", ev.ID.Hex(), id.Hex())
		}
		if ev.Version != 3 {
			mt.Errorf("version = %d, want 3", ev.Version)
		}
	})

	mt.Run("maps a missing document to ErrNotFound", func(mt *mtest.T) {
		config.DB = mt.DB
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "alumnet.events", mtest.FirstBatch))

		_, err := GetEvent(context.Background(), primitive.NewObjectID())
		if !errors.Is(err, ErrNotFound) {
			mt.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestCreateEvent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id, version and timestamps", func(mt *mtest.T) {
		config.DB = mt.DB
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		ev := &models.Event{Title: "Career Fair", Type: models.EventCareerFair, Date: time.Now().Add(48 * time.Hour)}
		if err := CreateEvent(context.Background(), ev); err != nil {
			mt.Fatalf("CreateEvent: %v", err)
		}
		if ev.ID.IsZero() {
			mt.Error("id should be assigned")
		}
		if ev.Version != 1 {
			mt.Errorf("version = %d, want 1", ev.Version)
		}
		if ev.Attendees == nil || ev.Waitlist == nil {
			mt.Error("attendees and waitlist should be initialized")
		}
		if ev.CreatedAt.IsZero() || ev.UpdatedAt.IsZero() {
			mt.Error("timestamps should be set")
		}
	})
}

func TestUpdateEvent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("applies fn and bumps the version", func(mt *mtest.T) {
		config.DB = mt.DB
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "alumnet.events", mtest.FirstBatch, eventDoc(id, 1)),
			replaceResult(1),
		)

		ev, err := UpdateEvent(context.Background(), id, func(e *models.Event) error {
			e.Title = "Alumni Meetup (rescheduled)"
			return nil
		})
		if err != nil {
			mt.Fatalf("UpdateEvent: %v", err)
		}
		if ev.Title != "Alumni Meetup (rescheduled)" {
			mt.Errorf("title = %q", ev.Title)
		}
		if ev.Version != 2 {
			mt.Errorf("version = %d, want 2", ev.Version)
		}
	})

	mt.Run("retries once after a lost version race", func(mt *mtest.T) {
		config.DB = mt.DB
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "alumnet.events", mtest.FirstBatch, eventDoc(id, 1)),
			replaceResult(0),
			mtest.CreateCursorResponse(0, "alumnet.events", mtest.FirstBatch, eventDoc(id, 2)),
			replaceResult(1),
		)

		calls := 0
		ev, err := UpdateEvent(context.Background(), id, func(e *models.Event) error {
			calls++
			return nil
		})
		if err != nil {
			mt.Fatalf("UpdateEvent: %v", err)
		}
		if calls != 2 {
			mt.Errorf("fn ran %d times, want 2", calls)
		}
		if ev.Version != 3 {
			mt.Errorf("version = %d, want 3", ev.Version)
		}
	})

	mt.Run("gives up with ErrConflict after repeated races", func(mt *mtest.T) {
		config.DB = mt.DB
		id := primitive.NewObjectID()
		for i := 0; i < 5; i++ {
			mt.AddMockResponses(
				mtest.CreateCursorResponse(0, "alumnet.events", mtest.FirstBatch, eventDoc(id, int64(i+1))),
				replaceResult(0),
			)
		}

		_, err := UpdateEvent(context.Background(), id, func(e *models.Event) error { return nil })
		if !errors.Is(err, ErrConflict) {
			mt.Errorf("err = %v, want ErrConflict", err)
		}
	})

	mt.Run("a business error aborts without writing", func(mt *mtest.T) {
		config.DB = mt.DB
		id := primitive.NewObjectID()
		// Only the load is answered. A write attempt would fail the mock.
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "alumnet.events", mtest.FirstBatch, eventDoc(id, 1)))

		_, err := UpdateEvent(context.Background(), id, func(e *models.Event) error {
			return models.ErrRegistrationClosed
		})
		if !errors.Is(err, models.ErrRegistrationClosed) {
			mt.Errorf("err = %v, want ErrRegistrationClosed", err)
		}
	})
}

func TestDeactivateExpiredEvents(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reports the modified count", func(mt *mtest.T) {
		config.DB = mt.DB
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 4},
			bson.E{Key: "nModified", Value: 4},
		))

		n, err := DeactivateExpiredEvents(context.Background(), time.Now())
		if err != nil {
			mt.Fatalf("DeactivateExpiredEvents: %v", err)
		}
		if n != 4 {
			mt.Errorf("modified = %d, want 4", n)
		}
	})
}
