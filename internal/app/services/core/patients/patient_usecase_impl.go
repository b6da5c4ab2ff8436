package patients

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/dto/responses"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/utils"
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type patientUsecase struct {
	Store contracts.Store
	Log   *zap.Logger
	now   func() time.Time
}

var (
	patientUsecaseInstance contracts.PatientUsecase
	oncePatientUsecase     sync.Once
)

func NewPatientUsecase(store contracts.Store, logger *zap.Logger) contracts.PatientUsecase {
	oncePatientUsecase.Do(func() {
		patientUsecaseInstance = newPatientUsecase(store, logger)
	})
	return patientUsecaseInstance
}

func newPatientUsecase(store contracts.Store, logger *zap.Logger) *patientUsecase {
	return &patientUsecase{
		Store: store,
		Log:   logger,
		now:   time.Now,
	}
}

func (uc *patientUsecase) RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.RegisterPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	patient := &models.Patient{
		ID:          utils.GenerateID(),
		Name:        request.Name,
		Phone:       request.Phone,
		Gender:      request.Gender,
		Age:         request.Age,
		Address:     request.Address,
		Status:      constvars.PatientStatusNoPackage,
		CarryAmount: decimal.Zero,
	}
	patient.SetCreatedAtUpdatedAt(uc.now())

	if err := uc.Store.Patients().Create(ctx, patient); err != nil {
		uc.Log.Error("patientUsecase.RegisterPatient error creating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("patientUsecase.RegisterPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)
	return patient, nil
}

func (uc *patientUsecase) GetPatient(ctx context.Context, patientID string) (*responses.PatientDetail, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.GetPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	patient, err := uc.findPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	activePackage, err := uc.Store.Packages().FindActiveByPatient(ctx, patientID)
	if err != nil {
		uc.Log.Error("patientUsecase.GetPatient error fetching active package",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.PatientDetail{
		Patient:       *patient,
		ActivePackage: activePackage,
	}, nil
}

func (uc *patientUsecase) ListPatients(ctx context.Context, filter requests.PatientFilter) ([]models.Patient, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.ListPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientStatusKey, filter.Status),
	)

	patients, total, err := uc.Store.Patients().List(ctx, filter)
	if err != nil {
		uc.Log.Error("patientUsecase.ListPatients error listing patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}
	return patients, total, nil
}

// UpdatePatient changes demographic fields only. Status and the ledger
// mirror are owned by the status projector.
func (uc *patientUsecase) UpdatePatient(ctx context.Context, patientID string, request *requests.UpdatePatient) (*models.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	patient, err := uc.findPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		patient.Name = *request.Name
	}
	if request.Phone != nil {
		patient.Phone = *request.Phone
	}
	if request.Gender != nil {
		patient.Gender = request.Gender
	}
	if request.Age != nil {
		patient.Age = request.Age
	}
	if request.Address != nil {
		patient.Address = request.Address
	}
	patient.SetUpdatedAt(uc.now())

	if err := uc.Store.Patients().Update(ctx, patient); err != nil {
		uc.Log.Error("patientUsecase.UpdatePatient error updating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return nil, err
	}
	return patient, nil
}

func (uc *patientUsecase) findPatient(ctx context.Context, patientID string) (*models.Patient, error) {
	patient, err := uc.Store.Patients().FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourcePatient, patientID)
	}
	return patient, nil
}
