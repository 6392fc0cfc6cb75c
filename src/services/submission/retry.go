package submission

import (
	"context"
	"log"
	"strconv"
	"time"

	"Backend-Worklink-007/src/models"
	"Backend-Worklink-007/src/services/cmp"
	"Backend-Worklink-007/src/services/fields"
)

// backoffSchedule holds the fixed wait tiers. The initial synchronous
// failure schedules tier 0; after a failed retry the new retry count
// indexes the schedule directly.
var backoffSchedule = []time.Duration{
	1 * time.Minute,
	5 * time.Minute,
	15 * time.Minute,
	1 * time.Hour,
	4 * time.Hour,
}

// A RETRYING row untouched for this long is assumed to belong to a crashed
// process and becomes eligible again.
const stuckRetryTimeout = 10 * time.Minute

// BatchResult aggregates one scheduler pass.
type BatchResult struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Retry replays one submission's remote step. Invoked only by the batch
// scan, never from a guest request; its errors are recorded on the row and
// never surfaced to an end user.
func (s *Service) Retry(ctx context.Context, sub *models.Submission) error {
	sub.Status = models.SubmissionRetrying
	if err := s.store.UpdateSubmission(ctx, sub); err != nil {
		return err
	}

	form, err := s.store.FindFormByID(ctx, sub.FormID)
	if err != nil {
		s.recordRetryFailure(ctx, sub, err)
		return err
	}

	if err := s.retryRemote(ctx, sub, form); err != nil {
		s.recordRetryFailure(ctx, sub, err)
		return err
	}

	return s.succeedSubmission(ctx, sub)
}

// retryRemote re-runs creation from the stored snapshot. A row that already
// carries a remote id came from a partially completed attempt; creating a
// second remote resource would be a duplicate, so it skips straight to
// success.
func (s *Service) retryRemote(ctx context.Context, sub *models.Submission, form *models.Form) error {
	if sub.RemoteRequestID != "" {
		return nil
	}

	client, err := s.clientForForm(ctx, form)
	if err != nil {
		return err
	}

	sorted := form.SortedFields()
	visible := fields.AllVisible(sorted).VisibleSet()
	serialized := fields.SerializeForm(sorted, sub.FormData, visible)
	formFields := make([]interface{}, len(serialized))
	for i, sf := range serialized {
		formFields[i] = sf
	}

	created, err := client.CreateWorkRequest(ctx, cmp.CreateWorkRequestInput{
		TemplateID: form.TemplateID,
		FormFields: formFields,
		WorkflowID: form.WorkflowID,
	})
	if err != nil {
		return err
	}
	sub.RemoteRequestID = created.ID
	return nil
}

// recordRetryFailure bumps the retry count and either schedules the next
// tier or marks the row exhausted (nextRetryAt null, no further attempts).
func (s *Service) recordRetryFailure(ctx context.Context, sub *models.Submission, cause error) {
	sub.RetryCount++
	sub.Status = models.SubmissionFailed
	sub.ErrorMessage = cause.Error()

	if sub.RetryCount < models.MaxRetryCount {
		next := time.Now().Add(backoffSchedule[sub.RetryCount])
		sub.NextRetryAt = &next
	} else {
		sub.NextRetryAt = nil
		log.Printf("⚠️ submission %s exhausted its retry budget", sub.ID.Hex())
	}

	if err := s.store.UpdateSubmission(ctx, sub); err != nil {
		log.Printf("❌ failed to persist retry failure %s: %v", sub.ID.Hex(), err)
	}
	s.audit.Record("submission.retry_failed", "submission", sub.ID.Hex(), map[string]string{
		"retryCount": strconv.Itoa(sub.RetryCount),
		"error":      cause.Error(),
	})
}

// RunRetryBatch scans for eligible rows and retries each independently;
// one row's failure never aborts the batch.
func (s *Service) RunRetryBatch(ctx context.Context) (*BatchResult, error) {
	now := time.Now()
	subs, err := s.store.FindRetryEligible(ctx, now, now.Add(-stuckRetryTimeout))
	if err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for i := range subs {
		sub := subs[i]
		result.Processed++
		if err := s.Retry(ctx, &sub); err != nil {
			result.Failed++
			continue
		}
		result.Succeeded++
	}

	if result.Processed > 0 {
		log.Printf("🔁 retry batch: processed=%d succeeded=%d failed=%d",
			result.Processed, result.Succeeded, result.Failed)
	}
	return result, nil
}
