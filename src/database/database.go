package database

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client     *mongo.Client
	once       sync.Once
	connectErr error

	FormCollection       *mongo.Collection
	LinkCollection       *mongo.Collection
	SubmissionCollection *mongo.Collection
	CredentialCollection *mongo.Collection
	AuditLogCollection   *mongo.Collection
)

// ConnectMongoDB connects once and wires the shared collections.
func ConnectMongoDB() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("❌ MONGO_URI environment variable not set. Please create a .env file and set it.")
	}

	once.Do(func() {
		clientOptions := options.Client().ApplyURI(mongoURI)

		client, connectErr = mongo.Connect(context.TODO(), clientOptions)
		if connectErr != nil {
			return
		}

		connectErr = client.Ping(context.TODO(), readpref.Primary())
		if connectErr != nil {
			return
		}

		dbName := os.Getenv("MONGO_DB")
		if dbName == "" {
			dbName = "WorklinkDB"
		}

		db := client.Database(dbName)
		FormCollection = db.Collection("forms")
		LinkCollection = db.Collection("shareLinks")
		SubmissionCollection = db.Collection("submissions")
		CredentialCollection = db.Collection("credentials")
		AuditLogCollection = db.Collection("auditLogs")

		log.Println("✅ MongoDB connected:", dbName)
	})

	return connectErr
}

// GetCollection returns a collection by database and name.
func GetCollection(dbName, collectionName string) *mongo.Collection {
	if client == nil {
		return nil
	}
	return client.Database(dbName).Collection(collectionName)
}
