package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-ledger-service/internal/app/config"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAudit struct {
	records []models.AuditRecord
	err     error
}

func (a *fakeAudit) Record(ctx context.Context, record models.AuditRecord) error {
	if a.err != nil {
		return a.err
	}
	a.records = append(a.records, record)
	return nil
}

type fakePublisher struct {
	events []models.LedgerEvent
	ctxErr error
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event models.LedgerEvent) error {
	p.ctxErr = ctx.Err()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func paymentActivity() models.Activity {
	return models.Activity{
		Action:     constvars.EventPaymentRecorded,
		EntityType: constvars.ResourcePayment,
		EntityID:   "payment-1",
		PatientID:  "patient-1",
		PackageID:  "package-1",
		ActorID:    "user-1",
		Details:    map[string]interface{}{"amount_paid": "1200"},
	}
}

func TestEmit_RecordsAuditAndPublishesEvent(t *testing.T) {
	audit := &fakeAudit{}
	publisher := &fakePublisher{}
	rec := NewActivityRecorder(audit, publisher, &config.InternalConfig{}, zap.NewNop()).(*recorder)
	rec.now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }

	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	rec.Emit(ctx, paymentActivity())

	require.Len(t, audit.records, 1)
	record := audit.records[0]
	assert.Equal(t, "req-1", record.RequestID)
	assert.Equal(t, constvars.EventPaymentRecorded, record.Action)
	assert.Equal(t, "payment-1", record.EntityID)
	assert.Equal(t, "user-1", record.ActorID)
	assert.NotEmpty(t, record.ID)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, constvars.EventPaymentRecorded, event.Type)
	assert.Equal(t, "package-1", event.PackageID)
	assert.Equal(t, record.OccurredAt, event.OccurredAt)
	payload := event.Payload.(map[string]interface{})
	assert.Equal(t, "1200", payload["amount_paid"])
	assert.Equal(t, "payment-1", payload["entity_id"])
}

func TestEmit_FailuresAreSwallowed(t *testing.T) {
	audit := &fakeAudit{err: errors.New("mongo down")}
	publisher := &fakePublisher{}
	rec := NewActivityRecorder(audit, publisher, nil, zap.NewNop())

	assert.NotPanics(t, func() { rec.Emit(context.Background(), paymentActivity()) })
	assert.Len(t, publisher.events, 1, "a failed audit write must not block the event")

	publisher.err = errors.New("broker down")
	assert.NotPanics(t, func() { rec.Emit(context.Background(), paymentActivity()) })
}

func TestEmit_SurvivesCancelledRequest(t *testing.T) {
	publisher := &fakePublisher{}
	rec := NewActivityRecorder(nil, publisher, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec.Emit(ctx, paymentActivity())

	require.Len(t, publisher.events, 1)
	assert.NoError(t, publisher.ctxErr)
}
