package controllers

import (
	"context"
	"net/http"
	"time"

	DB "Backend-Worklink-007/src/database"
	"Backend-Worklink-007/src/jobs"
	"Backend-Worklink-007/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

// RunRetryBatch godoc
// @Summary      Run the submission retry batch now
// @Description  Scans for FAILED/stuck submissions due for retry and replays them. Called by the external scheduler; also usable by operators.
// @Tags         internal
// @Produce      json
// @Success      200  {object}  submission.BatchResult
// @Failure      401  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /internal/jobs/retry-batch [post]
func RunRetryBatch(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := submissionService.RunRetryBatch(ctx)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(result)
}

// RunCleanup godoc
// @Summary      Run the cleanup job now
// @Description  Deletes expired share links and aged audit entries.
// @Tags         internal
// @Produce      json
// @Success      200  {object}  submission.CleanupResult
// @Failure      401  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /internal/jobs/cleanup [post]
func RunCleanup(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := submissionService.RunCleanup(ctx)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(result)
}

// EnqueueRetryBatch godoc
// @Summary      Enqueue a retry batch on the background worker
// @Description  Queues the batch instead of running it inline. Requires Redis/Asynq.
// @Tags         internal
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /internal/jobs/retry-batch/enqueue [post]
func EnqueueRetryBatch(c *fiber.Ctx) error {
	if DB.AsynqClient == nil {
		return utils.HandleError(c, http.StatusServiceUnavailable, "asynq client not initialized")
	}

	_, err := DB.AsynqClient.Enqueue(jobs.NewRetryBatchTask(), asynq.TaskID("retry-batch-manual-"+time.Now().Format("20060102150405")))
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"status": "enqueued"})
}
