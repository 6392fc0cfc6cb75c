package submission

import (
	"context"
	"errors"
	"time"

	"Backend-Worklink-007/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by store lookups for missing documents.
var ErrNotFound = errors.New("not found")

// Store is the persistence boundary of the pipeline. The only call with
// conditional-update semantics is MarkLinkUsed; every other write is a
// last-writer-wins update keyed by id.
type Store interface {
	FindLinkByToken(ctx context.Context, token string) (*models.ShareLink, error)
	// MarkLinkUsed flips an unused single-use link to used. It returns
	// false when the link was already spent, which is the double-spend
	// guard for concurrent submissions.
	MarkLinkUsed(ctx context.Context, linkID primitive.ObjectID) (bool, error)
	FindFormByID(ctx context.Context, id primitive.ObjectID) (*models.Form, error)
	InsertSubmission(ctx context.Context, sub *models.Submission) error
	UpdateSubmission(ctx context.Context, sub *models.Submission) error
	FindSubmissionByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error)
	// FindRetryEligible returns rows due for a retry attempt: FAILED rows
	// past their nextRetryAt, plus RETRYING rows untouched since
	// stuckBefore (crash recovery). Exhausted rows never match.
	FindRetryEligible(ctx context.Context, now, stuckBefore time.Time) ([]models.Submission, error)
	ListSubmissions(ctx context.Context, status string, params models.PaginationParams) ([]models.Submission, int64, error)
	DeleteExpiredLinks(ctx context.Context, now time.Time) (int64, error)
	DeleteAuditBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// MongoStore implements Store on the shared Mongo collections.
type MongoStore struct {
	Links       *mongo.Collection
	Forms       *mongo.Collection
	Submissions *mongo.Collection
	AuditLogs   *mongo.Collection
}

func NewMongoStore(links, forms, submissions, auditLogs *mongo.Collection) *MongoStore {
	return &MongoStore{Links: links, Forms: forms, Submissions: submissions, AuditLogs: auditLogs}
}

func (s *MongoStore) FindLinkByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	var link models.ShareLink
	err := s.Links.FindOne(ctx, bson.M{"token": token}).Decode(&link)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (s *MongoStore) MarkLinkUsed(ctx context.Context, linkID primitive.ObjectID) (bool, error) {
	res, err := s.Links.UpdateOne(ctx,
		bson.M{"_id": linkID, "isUsed": false},
		bson.M{"$set": bson.M{"isUsed": true}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (s *MongoStore) FindFormByID(ctx context.Context, id primitive.ObjectID) (*models.Form, error) {
	var form models.Form
	err := s.Forms.FindOne(ctx, bson.M{"_id": id}).Decode(&form)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &form, nil
}

func (s *MongoStore) InsertSubmission(ctx context.Context, sub *models.Submission) error {
	sub.ID = primitive.NewObjectID()
	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	_, err := s.Submissions.InsertOne(ctx, sub)
	return err
}

func (s *MongoStore) UpdateSubmission(ctx context.Context, sub *models.Submission) error {
	sub.UpdatedAt = time.Now()
	update := bson.M{
		"status":     sub.Status,
		"retryCount": sub.RetryCount,
		"updatedAt":  sub.UpdatedAt,
	}
	unset := bson.M{}
	if sub.RemoteRequestID != "" {
		update["remoteRequestId"] = sub.RemoteRequestID
	}
	if sub.ErrorMessage != "" {
		update["errorMessage"] = sub.ErrorMessage
	} else {
		unset["errorMessage"] = ""
	}
	if sub.NextRetryAt != nil {
		update["nextRetryAt"] = sub.NextRetryAt
	} else {
		unset["nextRetryAt"] = ""
	}
	doc := bson.M{"$set": update}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}
	_, err := s.Submissions.UpdateOne(ctx, bson.M{"_id": sub.ID}, doc)
	return err
}

func (s *MongoStore) FindSubmissionByID(ctx context.Context, id primitive.ObjectID) (*models.Submission, error) {
	var sub models.Submission
	err := s.Submissions.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s *MongoStore) FindRetryEligible(ctx context.Context, now, stuckBefore time.Time) ([]models.Submission, error) {
	filter := bson.M{
		"retryCount": bson.M{"$lt": models.MaxRetryCount},
		"$or": []bson.M{
			{"status": models.SubmissionFailed, "nextRetryAt": bson.M{"$lte": now}},
			{"status": models.SubmissionRetrying, "updatedAt": bson.M{"$lte": stuckBefore}},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "nextRetryAt", Value: 1}})
	cursor, err := s.Submissions.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []models.Submission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *MongoStore) ListSubmissions(ctx context.Context, status string, params models.PaginationParams) ([]models.Submission, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := s.Submissions.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	sort := bson.D{}
	for field, order := range params.GetSortOrder() {
		sort = append(sort, bson.E{Key: field, Value: order})
	}
	opts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(sort)

	cursor, err := s.Submissions.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var subs []models.Submission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (s *MongoStore) DeleteExpiredLinks(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.Links.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$ne": nil, "$lte": now}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) DeleteAuditBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.AuditLogs.DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lte": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ Store = (*MongoStore)(nil)
