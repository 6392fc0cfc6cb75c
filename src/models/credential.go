package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CmpCredential is one CMP OAuth client registration. The secret is stored
// sealed; only the credentials service hands out the decrypted pair.
type CmpCredential struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	ClientID     string             `bson:"clientId" json:"clientId"`
	SealedSecret []byte             `bson:"sealedSecret" json:"-"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}
