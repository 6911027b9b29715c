// Package mongo stores the game history in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/connect4-classic/internal/domain"
	"github.com/iamasit07/connect4-classic/internal/service/history"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "games"

type gameDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Winner string             `bson:"winner"`
	Moves  int                `bson:"moves"`
	Date   time.Time          `bson:"date"`
}

func (d gameDocument) record() domain.GameRecord {
	return domain.GameRecord{
		ID:     d.ID.Hex(),
		Winner: d.Winner,
		Moves:  d.Moves,
		Date:   d.Date.UTC(),
	}
}

type HistoryStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// Connect dials uri, pings the server and makes sure the date index exists
func Connect(ctx context.Context, uri, database string) (*HistoryStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	col := client.Database(database).Collection(collectionName)

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	}
	if _, err := col.Indexes().CreateOne(ctx, indexModel); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create index: %w", err)
	}

	log.Printf("[MONGO] Connected to %s.%s", database, collectionName)
	return &HistoryStore{client: client, col: col}, nil
}

func (s *HistoryStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *HistoryStore) Insert(ctx context.Context, rec domain.GameRecord) (domain.GameRecord, error) {
	doc := gameDocument{
		ID:     primitive.NewObjectID(),
		Winner: rec.Winner,
		Moves:  rec.Moves,
		// mongo keeps millisecond precision
		Date: rec.Date.UTC().Truncate(time.Millisecond),
	}

	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return domain.GameRecord{}, fmt.Errorf("insert: %w", err)
	}
	return doc.record(), nil
}

func (s *HistoryStore) List(ctx context.Context) ([]domain.GameRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := s.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	games := []domain.GameRecord{}
	for cur.Next(ctx) {
		var doc gameDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		games = append(games, doc.record())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return games, nil
}

func (s *HistoryStore) Get(ctx context.Context, id string) (domain.GameRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.GameRecord{}, history.ErrRecordNotFound
	}

	filter := bson.D{{Key: "_id", Value: oid}}
	res := s.col.FindOne(ctx, filter)
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.GameRecord{}, history.ErrRecordNotFound
		}
		return domain.GameRecord{}, fmt.Errorf("find one: %w", err)
	}

	var doc gameDocument
	if err := res.Decode(&doc); err != nil {
		return domain.GameRecord{}, fmt.Errorf("decode: %w", err)
	}
	return doc.record(), nil
}
