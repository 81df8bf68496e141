package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/flowpack/pkg/errors"
	"github.com/matzehuels/flowpack/pkg/scene"
)

// Default MongoDB names.
const (
	DefaultDatabase   = "flowpack"
	DefaultCollection = "layouts"
)

// MongoStore keeps records in a MongoDB collection. The frame is stored as
// its JSON document so the stored shape matches the API response.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoOptions configures [NewMongoStore].
type MongoOptions struct {
	Database   string
	Collection string
	// TTL expires records this long after creation. Zero keeps them.
	TTL time.Duration
}

type mongoRecord struct {
	ID        string    `bson:"_id"`
	CreatedAt time.Time `bson:"created_at"`
	SceneHash string    `bson:"scene_hash"`
	Frame     []byte    `bson:"frame"`
}

// NewMongoStore connects to uri, pings the primary and ensures the TTL
// index when opts.TTL is set.
func NewMongoStore(ctx context.Context, uri string, opts MongoOptions) (*MongoStore, error) {
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	if opts.TTL > 0 {
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(opts.TTL.Seconds())),
		})
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("create ttl index: %w", err)
		}
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Save(ctx context.Context, rec *Record) error {
	if err := ValidateID(rec.ID); err != nil {
		return err
	}
	frame, err := json.Marshal(rec.Frame)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode frame")
	}
	doc := mongoRecord{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		SceneHash: rec.SceneHash,
		Frame:     frame,
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	var doc mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}

	var f scene.Frame
	if err := json.Unmarshal(doc.Frame, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode stored frame %s", id)
	}
	return &Record{
		ID:        doc.ID,
		CreatedAt: doc.CreatedAt,
		SceneHash: doc.SceneHash,
		Frame:     &f,
	}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
