package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission statuses.
const (
	SubmissionPending   = "PENDING"
	SubmissionSubmitted = "SUBMITTED"
	SubmissionFailed    = "FAILED"
	SubmissionRetrying  = "RETRYING"
)

// MaxRetryCount is the retry budget. Once RetryCount reaches it the row is
// terminal and NextRetryAt must be null.
const MaxRetryCount = 5

// Submission is one guest submission and its delivery state toward CMP.
// Rows are created once per submission and only ever mutated by the
// pipeline and the retry batch; they are never deleted in normal operation.
type Submission struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FormID          primitive.ObjectID `bson:"formId" json:"formId"`
	URLID           primitive.ObjectID `bson:"urlId" json:"urlId"`
	FormData        FormValues         `bson:"formData" json:"formData"`
	Status          string             `bson:"status" json:"status"`
	RemoteRequestID string             `bson:"remoteRequestId,omitempty" json:"remoteRequestId,omitempty"`
	ErrorMessage    string             `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	RetryCount      int                `bson:"retryCount" json:"retryCount"`
	NextRetryAt     *time.Time         `bson:"nextRetryAt,omitempty" json:"nextRetryAt,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt,omitempty" json:"updatedAt"`
}

// Exhausted reports whether the retry budget is spent.
func (s *Submission) Exhausted() bool {
	return s.RetryCount >= MaxRetryCount
}
