package sessions

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/app/services/core/ledger"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/utils"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type sessionUsecase struct {
	Store           contracts.Store
	TxManager       contracts.TxManager
	StatusProjector contracts.StatusProjector
	Activity        contracts.ActivityRecorder
	Log             *zap.Logger
	now             func() time.Time
}

var (
	sessionUsecaseInstance contracts.SessionUsecase
	onceSessionUsecase     sync.Once
)

func NewSessionUsecase(
	store contracts.Store,
	txManager contracts.TxManager,
	statusProjector contracts.StatusProjector,
	activity contracts.ActivityRecorder,
	logger *zap.Logger,
) contracts.SessionUsecase {
	onceSessionUsecase.Do(func() {
		sessionUsecaseInstance = newSessionUsecase(store, txManager, statusProjector, activity, logger)
	})
	return sessionUsecaseInstance
}

func newSessionUsecase(
	store contracts.Store,
	txManager contracts.TxManager,
	statusProjector contracts.StatusProjector,
	activity contracts.ActivityRecorder,
	logger *zap.Logger,
) *sessionUsecase {
	return &sessionUsecase{
		Store:           store,
		TxManager:       txManager,
		StatusProjector: statusProjector,
		Activity:        activity,
		Log:             logger,
		now:             time.Now,
	}
}

// RecordSession records attendance and debits one released session from
// the explicit package, or from the patient's active package when none is
// given. Without either the session is stored unlinked.
func (uc *sessionUsecase) RecordSession(ctx context.Context, request *requests.RecordSession) (*models.Session, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("sessionUsecase.RecordSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	sessionDate, err := utils.ParseDate(request.SessionDate)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}

	var (
		recorded  models.Session
		consumed  *models.Package
		completed bool
	)
	err = uc.TxManager.WithinTransaction(ctx, func(ctx context.Context, store contracts.Store) error {
		consumed, completed = nil, false

		patient, err := store.Patients().FindByIDForUpdate(ctx, request.PatientID)
		if err != nil {
			return err
		}
		if patient == nil {
			return exceptions.ErrNotFound(nil, constvars.ResourcePatient, request.PatientID)
		}

		if request.DoctorID != nil {
			doctor, err := store.Doctors().FindByID(ctx, *request.DoctorID)
			if err != nil {
				return err
			}
			if doctor == nil {
				return exceptions.ErrNotFound(nil, constvars.ResourceDoctor, *request.DoctorID)
			}
		}

		pkg, err := uc.resolvePackage(ctx, store, request)
		if err != nil {
			return err
		}

		now := uc.now()
		session := &models.Session{
			ID:          utils.GenerateID(),
			PatientID:   request.PatientID,
			DoctorID:    request.DoctorID,
			SessionDate: sessionDate,
			Shift:       request.Shift,
			VisitType:   request.VisitType,
			Remarks:     request.Remarks,
			CreatedBy:   request.CreatedBy,
			CreatedAt:   now,
		}

		if pkg != nil {
			completed, err = ledger.ConsumeSession(pkg, now)
			if err != nil {
				return err
			}
			if err := store.Packages().Update(ctx, pkg); err != nil {
				return err
			}
			session.PackageID = &pkg.ID
			if session.VisitType == nil {
				session.VisitType = pkg.VisitType
			}
			consumed = pkg
		}

		if err := store.Sessions().Create(ctx, session); err != nil {
			return err
		}

		if consumed != nil {
			if _, err := uc.StatusProjector.ProjectStatus(ctx, store, request.PatientID); err != nil {
				return err
			}
		}
		recorded = *session
		return nil
	})
	if err != nil {
		uc.Log.Error("sessionUsecase.RecordSession error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, request.PatientID),
			zap.Error(err),
		)
		return nil, err
	}

	identity, _ := utils.GetIdentity(ctx)
	activity := models.Activity{
		Action:     constvars.EventSessionRecorded,
		EntityType: constvars.ResourceSession,
		EntityID:   recorded.ID,
		PatientID:  recorded.PatientID,
		ActorID:    identity.UserID,
		Details:    map[string]interface{}{"session_date": request.SessionDate},
	}
	if consumed != nil {
		activity.PackageID = consumed.ID
		activity.Details["used_sessions"] = consumed.UsedSessions
		activity.Details["released_sessions"] = consumed.ReleasedSessions
	}
	uc.Activity.Emit(ctx, activity)

	fields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, recorded.ID),
	}
	if consumed != nil {
		fields = append(fields, zap.Int(constvars.LoggingUsedKey, consumed.UsedSessions))
	}
	uc.Log.Info("sessionUsecase.RecordSession succeeded", fields...)

	if completed {
		uc.Activity.Emit(ctx, models.Activity{
			Action:     constvars.EventPackageCompleted,
			EntityType: constvars.ResourcePackage,
			EntityID:   consumed.ID,
			PatientID:  consumed.PatientID,
			PackageID:  consumed.ID,
			ActorID:    identity.UserID,
			Details:    map[string]interface{}{"total_sessions": consumed.TotalSessions},
		})
		uc.Log.Info("sessionUsecase.RecordSession completed package",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPackageIDKey, consumed.ID),
		)
	}

	return &recorded, nil
}

func (uc *sessionUsecase) resolvePackage(ctx context.Context, store contracts.Store, request *requests.RecordSession) (*models.Package, error) {
	if request.PackageID == nil {
		return store.Packages().FindActiveByPatientForUpdate(ctx, request.PatientID)
	}

	pkg, err := store.Packages().FindByIDForUpdate(ctx, *request.PackageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourcePackage, *request.PackageID)
	}
	if pkg.PatientID != request.PatientID {
		return nil, exceptions.ErrInvalidArgument(
			fmt.Errorf("package %s belongs to patient %s", pkg.ID, pkg.PatientID),
			constvars.ErrClientPackageNotOwned,
		)
	}
	return pkg, nil
}

func (uc *sessionUsecase) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := uc.Store.Sessions().FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourceSession, sessionID)
	}
	return session, nil
}

func (uc *sessionUsecase) ListSessionsByPatient(ctx context.Context, patientID string, pagination requests.Pagination) ([]models.Session, int, error) {
	patient, err := uc.Store.Patients().FindByID(ctx, patientID)
	if err != nil {
		return nil, 0, err
	}
	if patient == nil {
		return nil, 0, exceptions.ErrNotFound(nil, constvars.ResourcePatient, patientID)
	}
	return uc.Store.Sessions().FindByPatient(ctx, patientID, pagination)
}
