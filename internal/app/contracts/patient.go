package contracts

import (
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/dto/responses"
	"context"

	"github.com/shopspring/decimal"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
	FindByIDForUpdate(ctx context.Context, patientID string) (*models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	UpdateStatus(ctx context.Context, patientID, status string) error
	UpdateLedgerFields(ctx context.Context, patientID string, releasedSessions int, carryAmount decimal.Decimal) error
	List(ctx context.Context, filter requests.PatientFilter) ([]models.Patient, int, error)
	ListIDs(ctx context.Context) ([]string, error)
}

type PatientUsecase interface {
	RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*models.Patient, error)
	GetPatient(ctx context.Context, patientID string) (*responses.PatientDetail, error)
	ListPatients(ctx context.Context, filter requests.PatientFilter) ([]models.Patient, int, error)
	UpdatePatient(ctx context.Context, patientID string, request *requests.UpdatePatient) (*models.Patient, error)
}

type StatusProjector interface {
	// ProjectStatus recomputes and stores the patient's status from the
	// packages visible through store.
	ProjectStatus(ctx context.Context, store Store, patientID string) (string, error)
}
