package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShareLink is the public entry to a form. The token is the only thing a
// guest ever sees; everything else stays server side.
type ShareLink struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Token     string             `bson:"token" json:"token"`
	FormID    primitive.ObjectID `bson:"formId" json:"formId"`
	SingleUse bool               `bson:"singleUse" json:"singleUse"`
	IsUsed    bool               `bson:"isUsed" json:"isUsed"`
	ExpiresAt *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
}

// IsExpired reports whether the link is past its expiry, if it has one.
func (l *ShareLink) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}
