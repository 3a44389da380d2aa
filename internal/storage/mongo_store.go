package storage

import (
	"context"
	"errors"
	"fmt"
	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const insertBatchSize = 1000

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	logger providers.Logger
}

func NewMongoStore(ctx context.Context, uri, database string, logger providers.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	logger.Infof(providers.TypeStorage, "Connected to mongo database %s", database)
	return &MongoStore{client: client, db: client.Database(database), logger: logger}, nil
}

func (s *MongoStore) ReadAll(ctx context.Context, collection string) ([]models.Document, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	for cursor.Next(ctx) {
		var raw bson.D
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", collection, err)
		}
		doc, err := models.NewDocument(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	s.logger.Debugf(providers.TypeStorage, "Read %d records from %s", len(docs), collection)
	return docs, nil
}

func (s *MongoStore) FindOne(ctx context.Context, collection string) (models.Document, error) {
	var raw bson.D
	err := s.db.Collection(collection).FindOne(ctx, bson.D{}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", collection, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}
	return models.NewDocument(raw)
}

func (s *MongoStore) DeleteAll(ctx context.Context, collection string) (int64, error) {
	res, err := s.db.Collection(collection).DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("clear %s: %w", collection, err)
	}
	s.logger.Infof(providers.TypeStorage, "Deleted %d records from %s", res.DeletedCount, collection)
	return res.DeletedCount, nil
}

func (s *MongoStore) InsertMany(ctx context.Context, collection string, docs []any) error {
	coll := s.db.Collection(collection)
	for start := 0; start < len(docs); start += insertBatchSize {
		end := min(start+insertBatchSize, len(docs))
		if _, err := coll.InsertMany(ctx, docs[start:end], options.InsertMany().SetOrdered(true)); err != nil {
			return fmt.Errorf("insert into %s: %w", collection, err)
		}
	}
	s.logger.Infof(providers.TypeStorage, "Inserted %d records into %s", len(docs), collection)
	return nil
}

func (s *MongoStore) ReplaceOne(ctx context.Context, collection string, id string, doc any) error {
	res, err := s.db.Collection(collection).ReplaceOne(ctx, bson.D{{Key: "id", Value: id}}, doc)
	if err != nil {
		return fmt.Errorf("replace %s %s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("replace %s %s: %w", collection, id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
