package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Drona-Balasara/ALUMNET/models"
)

// CreateUser inserts a new user document.
func CreateUser(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := usersColl().InsertOne(ctx, u)
	return err
}

// GetUser loads one user by id.
func GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := usersColl().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail loads one user by email.
func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := usersColl().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetUserFields applies a partial $set update to a user document.
func SetUserFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC()
	res, err := usersColl().UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetResetOTP stores a hashed OTP with its expiry on the user.
func SetResetOTP(ctx context.Context, id primitive.ObjectID, hashedOTP string, expires time.Time) error {
	_, err := usersColl().UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"reset_otp":     hashedOTP,
		"reset_otp_exp": expires,
	}})
	return err
}

// ResetPassword swaps in the new password hash and clears the OTP fields.
func ResetPassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := usersColl().UpdateByID(ctx, id, bson.M{
		"$set":   bson.M{"password_hash": passwordHash, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"reset_otp": "", "reset_otp_exp": ""},
	})
	return err
}

// TouchLastLogin records a successful login.
func TouchLastLogin(ctx context.Context, id primitive.ObjectID, now time.Time) error {
	_, err := usersColl().UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login": now}})
	return err
}
