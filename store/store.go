// Package store persists aggregates in MongoDB. Mutations follow a
// load / apply / compare-and-swap pattern: the document is read, a pure
// transition runs against it in memory, and the save matches on the version
// read so concurrent writers on the same document cannot both win.
package store

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Drona-Balasara/ALUMNET/config"
)

var (
	// ErrNotFound covers missing documents and, where the caller filters on
	// it, soft-deleted ones.
	ErrNotFound = errors.New("document not found")
	// ErrConflict is returned when the version check keeps failing after
	// retries.
	ErrConflict = errors.New("document modified concurrently")
)

// casAttempts bounds the reload-and-retry loop on version conflicts.
const casAttempts = 5

func eventsColl() *mongo.Collection   { return config.DB.Collection("events") }
func jobsColl() *mongo.Collection     { return config.DB.Collection("jobs") }
func usersColl() *mongo.Collection    { return config.DB.Collection("users") }
func postsColl() *mongo.Collection    { return config.DB.Collection("posts") }
func sessionsColl() *mongo.Collection { return config.DB.Collection("chat_sessions") }
