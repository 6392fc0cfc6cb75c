package credentials

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"Backend-Worklink-007/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/chacha20poly1305"
)

var (
	ErrNoActiveCredential = errors.New("no active cmp credential")
	ErrBadSealKey         = errors.New("credential seal key must be 32 bytes")
)

// Service hands out decrypted CMP client credentials. Secrets live sealed
// in Mongo; the seal key comes from the environment and never leaves the
// process.
type Service struct {
	collection *mongo.Collection
	sealKey    []byte
}

func NewService(collection *mongo.Collection, sealKey []byte) (*Service, error) {
	if len(sealKey) != chacha20poly1305.KeySize {
		return nil, ErrBadSealKey
	}
	return &Service{collection: collection, sealKey: sealKey}, nil
}

// GetActive returns the credential plus its decrypted secret. Secret
// decryption failure is treated as "no usable credential", not a panic —
// the pipeline maps it to a remote failure and schedules a retry.
func (s *Service) GetActive(ctx context.Context, id primitive.ObjectID) (*models.CmpCredential, string, error) {
	var cred models.CmpCredential
	err := s.collection.FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&cred)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, "", ErrNoActiveCredential
		}
		return nil, "", err
	}

	secret, err := s.Open(cred.SealedSecret)
	if err != nil {
		return nil, "", fmt.Errorf("credential %s: %w", cred.ID.Hex(), err)
	}
	return &cred, secret, nil
}

// Seal encrypts a client secret for storage.
func (s *Service) Seal(secret string) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.sealKey)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, []byte(secret), nil), nil
}

// Open decrypts a sealed client secret.
func (s *Service) Open(sealed []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(s.sealKey)
	if err != nil {
		return "", err
	}
	if len(sealed) < aead.NonceSize() {
		return "", errors.New("sealed secret too short")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", errors.New("sealed secret did not decrypt")
	}
	return string(plain), nil
}
