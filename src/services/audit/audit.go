package audit

import (
	"context"
	"log"
	"time"

	"Backend-Worklink-007/src/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sink accepts audit records. Implementations must never block the caller
// on failure.
type Sink interface {
	Record(action, entity, entityID string, details map[string]string)
}

// MongoSink writes audit entries to Mongo, fire-and-forget.
type MongoSink struct {
	collection *mongo.Collection
}

func NewMongoSink(collection *mongo.Collection) *MongoSink {
	return &MongoSink{collection: collection}
}

func (s *MongoSink) Record(action, entity, entityID string, details map[string]string) {
	entry := models.AuditEntry{
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		CreatedAt: time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := s.collection.InsertOne(ctx, entry); err != nil {
			log.Printf("⚠️ audit insert failed (%s %s): %v", action, entityID, err)
		}
	}()
}

// NopSink discards every record. Used in tests.
type NopSink struct{}

func (NopSink) Record(string, string, string, map[string]string) {}
