package jobs

import (
	"github.com/hibiken/asynq"
)

const TypeRetryBatch = "submission:retry-batch"
const TypeCleanup = "system:cleanup"

// NewRetryBatchTask builds the periodic retry-batch task. It carries no
// payload: the batch query decides what to process.
func NewRetryBatchTask() *asynq.Task {
	return asynq.NewTask(TypeRetryBatch, nil)
}

// NewCleanupTask builds the periodic cleanup task.
func NewCleanupTask() *asynq.Task {
	return asynq.NewTask(TypeCleanup, nil)
}
