package submission

import (
	"context"
	"log"
	"time"
)

// auditRetention is how long audit entries are kept.
const auditRetention = 90 * 24 * time.Hour

// CleanupResult reports what one cleanup pass removed.
type CleanupResult struct {
	ExpiredLinks int64 `json:"expiredLinks"`
	AuditEntries int64 `json:"auditEntries"`
}

// RunCleanup deletes expired share links and aged audit entries.
// Submissions are never deleted here; exhausted rows stay visible to
// operators.
func (s *Service) RunCleanup(ctx context.Context) (*CleanupResult, error) {
	now := time.Now()

	links, err := s.store.DeleteExpiredLinks(ctx, now)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.DeleteAuditBefore(ctx, now.Add(-auditRetention))
	if err != nil {
		return nil, err
	}

	if links > 0 || entries > 0 {
		log.Printf("🧹 cleanup: removed %d expired links, %d audit entries", links, entries)
	}
	return &CleanupResult{ExpiredLinks: links, AuditEntries: entries}, nil
}
