package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Aviv972/introgit-hub/internal/model"
)

// opTimeout bounds every session operation so a stuck database cannot
// hold a request open indefinitely.
const opTimeout = 5 * time.Second

type sessionDocument struct {
	ID      string          `bson:"_id"`
	History []model.Content `bson:"history"`
}

// MongoSessionRepository implements SessionRepository using MongoDB.
type MongoSessionRepository struct {
	collection *mongo.Collection
	log        *zap.Logger
}

// NewMongoSessionRepository creates a new MongoSessionRepository.
// collectionName defaults to "sessions" if empty.
func NewMongoSessionRepository(db *mongo.Database, collectionName string, log *zap.Logger) *MongoSessionRepository {
	if collectionName == "" {
		collectionName = "sessions"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MongoSessionRepository{
		collection: db.Collection(collectionName),
		log:        log,
	}
}

func (r *MongoSessionRepository) Save(ctx context.Context, sessionID string, history []model.Content) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := sessionDocument{
		ID:      sessionID,
		History: history,
	}

	filter := bson.M{"_id": sessionID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("repository: upsert session %q: %w", sessionID, err)
	}

	r.log.Debug("session saved", zap.String("session_id", sessionID), zap.Int("turns", len(history)))
	return nil
}

func (r *MongoSessionRepository) Load(ctx context.Context, sessionID string) ([]model.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc sessionDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository: find session %q: %w", sessionID, err)
	}

	return doc.History, nil
}

func (r *MongoSessionRepository) Delete(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": sessionID}); err != nil {
		return fmt.Errorf("repository: delete session %q: %w", sessionID, err)
	}

	return nil
}
