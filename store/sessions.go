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

// CreateSession inserts a new chat session.
func CreateSession(ctx context.Context, s *models.ChatSession) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	s.LastActivity = now
	s.Version = 1
	if s.Messages == nil {
		s.Messages = []models.ChatMessage{}
	}
	_, err := sessionsColl().InsertOne(ctx, s)
	return err
}

// GetSession loads a session by its public session id, scoped to its owner.
func GetSession(ctx context.Context, sessionID string, userID primitive.ObjectID) (*models.ChatSession, error) {
	var s models.ChatSession
	err := sessionsColl().FindOne(ctx, bson.M{"session_id": sessionID, "user": userID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSession mirrors UpdateEvent for the chat session aggregate.
func UpdateSession(ctx context.Context, sessionID string, userID primitive.ObjectID, fn func(*models.ChatSession) error) (*models.ChatSession, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		s, err := GetSession(ctx, sessionID, userID)
		if err != nil {
			return nil, err
		}

		if err := fn(s); err != nil {
			return nil, err
		}

		expected := s.Version
		s.Version++
		s.UpdatedAt = time.Now().UTC()

		res, err := sessionsColl().ReplaceOne(ctx, bson.M{"_id": s.ID, "version": expected}, s)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 1 {
			return s, nil
		}
	}
	return nil, ErrConflict
}

// ListUserSessions returns the user's most recent sessions.
func ListUserSessions(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.ChatSession, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "last_activity", Value: -1}}).
		SetLimit(limit)

	cursor, err := sessionsColl().Find(ctx, bson.M{"user": userID}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := []models.ChatSession{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CleanupInactiveSessions closes sessions idle past the timeout. Idempotent;
// run from the periodic sweep.
func CleanupInactiveSessions(ctx context.Context, timeout time.Duration, now time.Time) (int64, error) {
	cutoff := now.Add(-timeout)
	res, err := sessionsColl().UpdateMany(ctx,
		bson.M{"is_active": true, "last_activity": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{
			"is_active":  false,
			"ended_at":   now,
			"end_reason": "timeout",
			"updated_at": now,
		}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
