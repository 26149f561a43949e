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

// CreateJob inserts a new posting, defaulting the expiry when unset.
func CreateJob(ctx context.Context, job *models.Job) error {
	if job.ID.IsZero() {
		job.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	job.Version = 1
	if job.ExpiresAt.IsZero() {
		job.ExpiresAt = now.Add(models.DefaultJobLifetime)
	}
	if job.Applications == nil {
		job.Applications = []models.Application{}
	}
	_, err := jobsColl().InsertOne(ctx, job)
	return err
}

// GetJob loads one job by id.
func GetJob(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	var job models.Job
	err := jobsColl().FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob is the job counterpart of UpdateEvent: load, apply fn, save with
// a version check, retry on a lost race.
func UpdateJob(ctx context.Context, id primitive.ObjectID, fn func(*models.Job) error) (*models.Job, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		job, err := GetJob(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := fn(job); err != nil {
			return nil, err
		}

		expected := job.Version
		job.Version++
		job.UpdatedAt = time.Now().UTC()

		res, err := jobsColl().ReplaceOne(ctx, bson.M{"_id": id, "version": expected}, job)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 1 {
			return job, nil
		}
	}
	return nil, ErrConflict
}

// JobListOptions filters and sorts the active-jobs listing.
type JobListOptions struct {
	Type            string
	WorkMode        string
	ExperienceLevel string
	Location        string
	Company         string
	Search          string
	SalaryMin       int
	SalaryMax       int
	Sort            string // recent (default), salary, company, title
	Page            int64
	Limit           int64
}

// ListActiveJobs returns unexpired active postings matching the options,
// plus the total match count.
func ListActiveJobs(ctx context.Context, opts JobListOptions) ([]models.Job, int64, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 || opts.Limit > 100 {
		opts.Limit = 20
	}

	filter := bson.M{
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}
	if opts.Type != "" {
		filter["type"] = opts.Type
	}
	if opts.WorkMode != "" {
		filter["work_mode"] = opts.WorkMode
	}
	if opts.ExperienceLevel != "" {
		filter["experience_level"] = opts.ExperienceLevel
	}
	if opts.Location != "" {
		filter["location"] = bson.M{"$regex": opts.Location, "$options": "i"}
	}
	if opts.Company != "" {
		filter["company"] = bson.M{"$regex": opts.Company, "$options": "i"}
	}
	if opts.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": opts.Search, "$options": "i"}},
			bson.M{"company": bson.M{"$regex": opts.Search, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": opts.Search, "$options": "i"}},
		}
	}
	if opts.SalaryMin > 0 {
		filter["salary.min"] = bson.M{"$gte": opts.SalaryMin}
	}
	if opts.SalaryMax > 0 {
		filter["salary.max"] = bson.M{"$lte": opts.SalaryMax}
	}

	var sort bson.D
	switch opts.Sort {
	case "salary":
		sort = bson.D{{Key: "salary.max", Value: -1}, {Key: "salary.min", Value: -1}}
	case "company":
		sort = bson.D{{Key: "company", Value: 1}}
	case "title":
		sort = bson.D{{Key: "title", Value: 1}}
	default:
		sort = bson.D{{Key: "created_at", Value: -1}}
	}

	total, err := jobsColl().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(sort).
		SetSkip((opts.Page - 1) * opts.Limit).
		SetLimit(opts.Limit)

	cursor, err := jobsColl().Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	jobs := []models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListJobsByPoster returns all postings by one user, newest first.
func ListJobsByPoster(ctx context.Context, posterID primitive.ObjectID, page, limit int64) ([]models.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{"posted_by": posterID}
	total, err := jobsColl().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := jobsColl().Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	jobs := []models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListJobsAppliedBy returns active postings holding an application from the
// user, most recently applied first.
func ListJobsAppliedBy(ctx context.Context, applicantID primitive.ObjectID, page, limit int64) ([]models.Job, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{
		"applications.applicant": applicantID,
		"is_active":              true,
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "applications.applied_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := jobsColl().Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	jobs := []models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// IncrementJobViews bumps the view counter outside the version check.
func IncrementJobViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := jobsColl().UpdateByID(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// DeactivateExpiredJobs soft-retires postings past their expiry. Idempotent.
func DeactivateExpiredJobs(ctx context.Context, now time.Time) (int64, error) {
	res, err := jobsColl().UpdateMany(ctx,
		bson.M{"is_active": true, "expires_at": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": now}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
