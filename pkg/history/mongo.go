package history

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/cache"
	apperrors "github.com/dhananjayyy09/Deadlock-Prevention/pkg/errors"
)

// MongoConfig describes a MongoDB history backend.
type MongoConfig struct {
	URI        string // Connection string, e.g. mongodb://localhost:27017
	Database   string // Defaults to "deadlock"
	Collection string // Defaults to "history"
}

// MongoStore persists events to a MongoDB collection. Events are
// retained unbounded; Recent reads them back newest first via an
// indexed sort on the event time.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the configured MongoDB deployment and
// verifies it is reachable. Connection failures come back as a
// [apperrors.StoreUnavailableError] so callers can fall back to the
// in-memory backend.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo history: empty URI")
	}
	if cfg.Database == "" {
		cfg.Database = "deadlock"
	}
	if cfg.Collection == "" {
		cfg.Collection = "history"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, &apperrors.StoreUnavailableError{Backend: "mongo", Cause: err}
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, &apperrors.StoreUnavailableError{Backend: "mongo", Cause: err}
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Log records one event.
func (s *MongoStore) Log(ctx context.Context, ev Event) error {
	if _, err := s.coll.InsertOne(ctx, ev); err != nil {
		return fmt.Errorf("log event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (s *MongoStore) Recent(ctx context.Context, limit int) ([]Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

// Stats aggregates over all stored events server-side.
func (s *MongoStore) Stats(ctx context.Context) (Stats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "events", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "deadlocks", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$gt", Value: bson.A{"$cycles", 0}}}, 1, 0,
				}},
			}}}},
			{Key: "total_cycles", Value: bson.D{{Key: "$sum", Value: "$cycles"}}},
			{Key: "avg_detection", Value: bson.D{{Key: "$avg", Value: "$detection_time"}}},
		}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return Stats{}, fmt.Errorf("aggregate stats: %w", err)
	}
	var rows []struct {
		Events       int     `bson:"events"`
		Deadlocks    int     `bson:"deadlocks"`
		TotalCycles  int     `bson:"total_cycles"`
		AvgDetection float64 `bson:"avg_detection"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return Stats{}, fmt.Errorf("decode stats: %w", err)
	}
	if len(rows) == 0 {
		return Stats{}, nil
	}
	r := rows[0]
	return Stats{
		Events:       r.Events,
		Deadlocks:    r.Deadlocks,
		TotalCycles:  r.TotalCycles,
		AvgDetection: time.Duration(r.AvgDetection),
	}, nil
}

// Close disconnects from the deployment.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
