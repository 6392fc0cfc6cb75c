package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditEntry is a fire-and-forget operational record. Losing one is
// acceptable; blocking a guest request on it is not.
type AuditEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Action    string             `bson:"action" json:"action"`
	Entity    string             `bson:"entity" json:"entity"`
	EntityID  string             `bson:"entityId" json:"entityId"`
	Details   map[string]string  `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
