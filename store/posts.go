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

// CreatePost inserts a new community post.
func CreatePost(ctx context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.LastActivity = now
	p.Version = 1
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	if p.Likes == nil {
		p.Likes = []primitive.ObjectID{}
	}
	_, err := postsColl().InsertOne(ctx, p)
	return err
}

// GetPost loads one post by id.
func GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	err := postsColl().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePost mirrors UpdateEvent for the post aggregate.
func UpdatePost(ctx context.Context, id primitive.ObjectID, fn func(*models.Post) error) (*models.Post, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		p, err := GetPost(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := fn(p); err != nil {
			return nil, err
		}

		expected := p.Version
		p.Version++
		p.UpdatedAt = time.Now().UTC()

		res, err := postsColl().ReplaceOne(ctx, bson.M{"_id": id, "version": expected}, p)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 1 {
			return p, nil
		}
	}
	return nil, ErrConflict
}

// PostListOptions filters the community feed.
type PostListOptions struct {
	Category string
	Page     int64
	Limit    int64
}

// ListPosts returns active posts, most recently active first.
func ListPosts(ctx context.Context, opts PostListOptions) ([]models.Post, int64, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 || opts.Limit > 100 {
		opts.Limit = 20
	}

	filter := bson.M{"is_active": true}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}

	total, err := postsColl().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "last_activity", Value: -1}}).
		SetSkip((opts.Page - 1) * opts.Limit).
		SetLimit(opts.Limit)

	cursor, err := postsColl().Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// IncrementPostViews bumps the view counter.
func IncrementPostViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := postsColl().UpdateByID(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
	return err
}
