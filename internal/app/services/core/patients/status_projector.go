package patients

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/services/core/ledger"
	"clinic-ledger-service/internal/pkg/constvars"
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type statusProjector struct {
	Log *zap.Logger
}

func NewStatusProjector(logger *zap.Logger) contracts.StatusProjector {
	return &statusProjector{
		Log: logger,
	}
}

// ProjectStatus derives the patient's status from their packages and
// mirrors the active package's released_sessions and carry_amount onto the
// patient row. It is safe to call any number of times.
func (p *statusProjector) ProjectStatus(ctx context.Context, store contracts.Store, patientID string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	packages, err := store.Packages().FindAllByPatient(ctx, patientID)
	if err != nil {
		p.Log.Error("statusProjector.ProjectStatus error fetching packages",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return "", err
	}

	status := ledger.ProjectStatus(packages)
	if err := store.Patients().UpdateStatus(ctx, patientID, status); err != nil {
		p.Log.Error("statusProjector.ProjectStatus error updating status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return "", err
	}

	released, carry := 0, decimal.Zero
	for i := range packages {
		if packages[i].IsActive() {
			released, carry = packages[i].ReleasedSessions, packages[i].CarryAmount
			break
		}
	}
	if err := store.Patients().UpdateLedgerFields(ctx, patientID, released, carry); err != nil {
		p.Log.Error("statusProjector.ProjectStatus error updating ledger mirror",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return "", err
	}

	p.Log.Debug("statusProjector.ProjectStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingPatientStatusKey, status),
	)
	return status, nil
}
