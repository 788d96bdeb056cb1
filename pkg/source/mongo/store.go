// Package mongo implements a MongoDB-backed store for saved snapshots.
//
// Snapshots pair a graph with the filter state and rendered artifact of one
// view-model generation, so an exploration can be shared or revisited later.
// The annotations themselves are not stored - they are ephemeral and are
// recomputed from the graph and filter on load.
package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	lenserrors "github.com/mkessler/graphlens/pkg/errors"
	"github.com/mkessler/graphlens/pkg/graph"
)

const (
	defaultDatabase   = "graphlens"
	defaultCollection = "snapshots"
)

// Snapshot is a saved exploration: the source graph, the filter state that
// produced the view, and the rendered SVG artifact.
type Snapshot struct {
	ID        string      `bson:"_id"`
	CreatedAt time.Time   `bson:"created_at"`
	Cluster   string      `bson:"cluster,omitempty"`
	Search    string      `bson:"search,omitempty"`
	Types     []string    `bson:"types,omitempty"`
	Graph     graph.Graph `bson:"graph"`
	SVG       []byte      `bson:"svg,omitempty"`
}

// Store persists snapshots in a MongoDB collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Config configures the MongoDB connection.
type Config struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// NewStore connects to MongoDB and verifies the connection with a ping.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Database == "" {
		cfg.Database = defaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = defaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save stores a snapshot and returns its generated ID.
func (s *Store) Save(ctx context.Context, snap Snapshot) (string, error) {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	if _, err := s.coll.InsertOne(ctx, snap); err != nil {
		return "", err
	}
	return snap.ID, nil
}

// Load retrieves a snapshot by ID.
func (s *Store) Load(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Snapshot{}, lenserrors.New(lenserrors.ErrCodeSnapshotNotFound, "snapshot %s not found", id)
	}
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// List returns the most recent snapshots, newest first.
func (s *Store) List(ctx context.Context, limit int64) ([]Snapshot, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Snapshot
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a snapshot by ID. Deleting a missing snapshot is not an
// error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
