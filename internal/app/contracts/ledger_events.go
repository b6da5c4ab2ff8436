package contracts

import (
	"clinic-ledger-service/internal/app/models"
	"context"
)

type EventPublisher interface {
	Publish(ctx context.Context, event models.LedgerEvent) error
}

type AuditRecorder interface {
	Record(ctx context.Context, record models.AuditRecord) error
}

type ReconcilerWorker interface {
	Start()
	Stop()
	RunOnce(ctx context.Context) (int, error)
}

// ActivityRecorder fans a committed ledger change out to the audit trail
// and the event bus. Failures are logged, never returned.
type ActivityRecorder interface {
	Emit(ctx context.Context, activity models.Activity)
}
