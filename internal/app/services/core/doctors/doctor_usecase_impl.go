package doctors

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/utils"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	Store contracts.Store
	Log   *zap.Logger
	now   func() time.Time
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(store contracts.Store, logger *zap.Logger) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		doctorUsecaseInstance = newDoctorUsecase(store, logger)
	})
	return doctorUsecaseInstance
}

func newDoctorUsecase(store contracts.Store, logger *zap.Logger) *doctorUsecase {
	return &doctorUsecase{
		Store: store,
		Log:   logger,
		now:   time.Now,
	}
}

func (uc *doctorUsecase) RegisterDoctor(ctx context.Context, request *requests.RegisterDoctor) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.RegisterDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctor := &models.Doctor{
		ID:             utils.GenerateID(),
		Name:           request.Name,
		Specialization: request.Specialization,
		Phone:          request.Phone,
		IsActive:       true,
	}
	doctor.SetCreatedAtUpdatedAt(uc.now())

	if err := uc.Store.Doctors().Create(ctx, doctor); err != nil {
		uc.Log.Error("doctorUsecase.RegisterDoctor error creating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("doctorUsecase.RegisterDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
	)
	return doctor, nil
}

func (uc *doctorUsecase) GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := uc.Store.Doctors().FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourceDoctor, doctorID)
	}
	return doctor, nil
}

func (uc *doctorUsecase) ListDoctors(ctx context.Context, activeOnly bool) ([]models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	doctors, err := uc.Store.Doctors().List(ctx, activeOnly)
	if err != nil {
		uc.Log.Error("doctorUsecase.ListDoctors error listing doctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return doctors, nil
}

func (uc *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID string, request *requests.UpdateDoctor) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.UpdateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		doctor.Name = *request.Name
	}
	if request.Specialization != nil {
		doctor.Specialization = request.Specialization
	}
	if request.Phone != nil {
		doctor.Phone = request.Phone
	}
	if request.IsActive != nil {
		doctor.IsActive = *request.IsActive
	}
	doctor.SetUpdatedAt(uc.now())

	if err := uc.Store.Doctors().Update(ctx, doctor); err != nil {
		uc.Log.Error("doctorUsecase.UpdateDoctor error updating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
		return nil, err
	}
	return doctor, nil
}
