// Package roadstore optionally persists finished Roads to MongoDB, one
// document per road, for downstream fitting jobs to consume
// out-of-process — an out-of-scope collaborator per the core design, given
// a concrete home here rather than left unimplemented.
package roadstore

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jlab-tracking/treesearch/pkg/errors"
	"github.com/jlab-tracking/treesearch/pkg/httpapi"
)

// RoadDocument is the persisted shape of one finished road.
type RoadDocument struct {
	ID       string                  `bson:"_id"`
	HitCount int                     `bson:"hitCount"`
	Patterns []httpapi.PatternResult `bson:"patterns"`
}

// Store wraps a MongoDB collection roads are written to.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewStore connects to uri and opens db.roads.
func NewStore(ctx context.Context, uri, db string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "ping mongo")
	}
	return &Store{client: client, coll: client.Database(db).Collection("roads")}, nil
}

// SaveAll persists every road in resp as its own document.
func (s *Store) SaveAll(ctx context.Context, resp httpapi.MatchResponse) error {
	docs := toDocuments(resp)
	if len(docs) == 0 {
		return nil
	}
	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "insert roads")
	}
	return nil
}

// toDocuments converts a MatchResponse's roads to their persisted document
// shape, split out from SaveAll so the mapping can be tested without a
// live Mongo connection.
func toDocuments(resp httpapi.MatchResponse) []any {
	docs := make([]any, 0, len(resp.Roads))
	for _, rd := range resp.Roads {
		docs = append(docs, RoadDocument{ID: rd.ID, HitCount: rd.HitCount, Patterns: rd.Patterns})
	}
	return docs
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
