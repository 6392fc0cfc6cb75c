package jobs

import (
	"context"
	"log"
	"time"

	"Backend-Worklink-007/src/database"
	"Backend-Worklink-007/src/services/submission"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// HandleRetryBatchTask runs one retry pass. Errors are returned so asynq
// can log them; an empty batch is a normal outcome.
func HandleRetryBatchTask(svc *submission.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		result, err := svc.RunRetryBatch(ctx)
		if err != nil {
			log.Println("❌ retry batch failed:", err)
			return err
		}
		if result.Processed > 0 {
			log.Printf("✅ retry batch done: %+v", result)
		}
		return nil
	}
}

// HandleCleanupTask purges expired links and aged audit entries.
func HandleCleanupTask(svc *submission.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		result, err := svc.RunCleanup(ctx)
		if err != nil {
			log.Println("❌ cleanup failed:", err)
			return err
		}
		log.Printf("✅ cleanup done: %+v", result)
		return nil
	}
}

// RunWorker starts the asynq server in a goroutine. No-op without Redis.
func RunWorker(svc *submission.Service) {
	if database.RedisURI == "" || database.RedisClient == nil {
		log.Println("⚠️ Redis not available. Worker not started.")
		return
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: database.RedisURI},
		asynq.Config{Concurrency: 2},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRetryBatch, HandleRetryBatchTask(svc))
	mux.HandleFunc(TypeCleanup, HandleCleanupTask(svc))

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Println("❌ asynq worker stopped:", err)
		}
	}()
	log.Println("✅ Asynq worker started")
}

// StartPeriodicEnqueuer enqueues the retry-batch and cleanup tasks on fixed
// intervals. Single process scheduling is sufficient for this system; the
// uuid task ids keep accidental duplicate enqueues apart in the asynq UI.
func StartPeriodicEnqueuer(retryInterval, cleanupInterval time.Duration) {
	if database.AsynqClient == nil {
		log.Println("⚠️ Asynq client not available. Periodic jobs not scheduled.")
		return
	}

	go func() {
		retryTicker := time.NewTicker(retryInterval)
		cleanupTicker := time.NewTicker(cleanupInterval)
		defer retryTicker.Stop()
		defer cleanupTicker.Stop()

		for {
			select {
			case <-retryTicker.C:
				enqueue(NewRetryBatchTask(), "retry-batch")
			case <-cleanupTicker.C:
				enqueue(NewCleanupTask(), "cleanup")
			}
		}
	}()
	log.Printf("✅ Periodic jobs scheduled (retry every %s, cleanup every %s)", retryInterval, cleanupInterval)
}

func enqueue(task *asynq.Task, name string) {
	_, err := database.AsynqClient.Enqueue(task, asynq.TaskID(name+"-"+uuid.NewString()))
	if err != nil {
		log.Printf("❌ failed to enqueue %s: %v", name, err)
	}
}
