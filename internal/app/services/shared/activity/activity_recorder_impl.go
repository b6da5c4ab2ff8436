package activity

import (
	"clinic-ledger-service/internal/app/config"
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/utils"
	"context"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Second

// recorder writes committed ledger activity to the audit trail and the
// event queue. Failures are logged and never reach the caller since the
// ledger change is already durable.
type recorder struct {
	Audit     contracts.AuditRecorder
	Publisher contracts.EventPublisher
	Log       *zap.Logger
	timeout   time.Duration
	now       func() time.Time
}

// NewActivityRecorder builds the recorder. audit or publisher may be nil.
func NewActivityRecorder(audit contracts.AuditRecorder, publisher contracts.EventPublisher, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.ActivityRecorder {
	timeout := defaultTimeout
	if internalConfig != nil && internalConfig.Ledger.ActivityTimeoutInSeconds > 0 {
		timeout = time.Duration(internalConfig.Ledger.ActivityTimeoutInSeconds) * time.Second
	}
	return &recorder{
		Audit:     audit,
		Publisher: publisher,
		Log:       logger,
		timeout:   timeout,
		now:       time.Now,
	}
}

func (r *recorder) Emit(ctx context.Context, activity models.Activity) {
	requestID := utils.GetRequestID(ctx)
	occurredAt := r.now()

	// Detach from the request so a client disconnect does not drop the record.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	if r.Audit != nil {
		record := models.AuditRecord{
			ID:         utils.GenerateID(),
			RequestID:  requestID,
			Action:     activity.Action,
			EntityType: activity.EntityType,
			EntityID:   activity.EntityID,
			PatientID:  activity.PatientID,
			ActorID:    activity.ActorID,
			Details:    activity.Details,
			OccurredAt: occurredAt,
		}
		if err := r.Audit.Record(ctx, record); err != nil {
			r.Log.Error("activityRecorder.Emit error recording audit",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEventTypeKey, activity.Action),
				zap.Error(err),
			)
		}
	}

	if r.Publisher != nil {
		event := models.LedgerEvent{
			ID:         utils.GenerateID(),
			Type:       activity.Action,
			RequestID:  requestID,
			PatientID:  activity.PatientID,
			PackageID:  activity.PackageID,
			OccurredAt: occurredAt,
			Payload:    eventPayload(activity),
		}
		if err := r.Publisher.Publish(ctx, event); err != nil {
			r.Log.Error("activityRecorder.Emit error publishing event",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEventTypeKey, activity.Action),
				zap.Error(err),
			)
		}
	}
}

func eventPayload(activity models.Activity) map[string]interface{} {
	payload := map[string]interface{}{
		"entity_type": activity.EntityType,
		"entity_id":   activity.EntityID,
	}
	if activity.ActorID != "" {
		payload["actor_id"] = activity.ActorID
	}
	for key, value := range activity.Details {
		payload[key] = value
	}
	return payload
}
