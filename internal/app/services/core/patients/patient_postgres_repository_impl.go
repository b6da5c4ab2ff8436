package patients

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/queries"
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
)

type patientPostgresRepository struct {
	DB contracts.DBTX
}

func NewPatientPostgresRepository(db contracts.DBTX) contracts.PatientRepository {
	return &patientPostgresRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPatient(row rowScanner, patient *models.Patient) error {
	return row.Scan(
		&patient.ID,
		&patient.Name,
		&patient.Phone,
		&patient.Gender,
		&patient.Age,
		&patient.Address,
		&patient.Status,
		&patient.ReleasedSessions,
		&patient.CarryAmount,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
}

func (repo *patientPostgresRepository) Create(ctx context.Context, patient *models.Patient) error {
	_, err := repo.DB.ExecContext(ctx, queries.InsertPatient,
		patient.ID,
		patient.Name,
		patient.Phone,
		patient.Gender,
		patient.Age,
		patient.Address,
		patient.Status,
		patient.ReleasedSessions,
		patient.CarryAmount,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *patientPostgresRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	return repo.findOne(ctx, queries.GetPatientByID, patientID)
}

func (repo *patientPostgresRepository) FindByIDForUpdate(ctx context.Context, patientID string) (*models.Patient, error) {
	return repo.findOne(ctx, queries.GetPatientByIDForUpdate, patientID)
}

func (repo *patientPostgresRepository) findOne(ctx context.Context, query, patientID string) (*models.Patient, error) {
	var patient models.Patient
	err := scanPatient(repo.DB.QueryRowContext(ctx, query, patientID), &patient)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &patient, nil
}

func (repo *patientPostgresRepository) Update(ctx context.Context, patient *models.Patient) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdatePatient,
		patient.ID,
		patient.Name,
		patient.Phone,
		patient.Gender,
		patient.Age,
		patient.Address,
		patient.UpdatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *patientPostgresRepository) UpdateStatus(ctx context.Context, patientID, status string) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdatePatientStatus, patientID, status)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *patientPostgresRepository) UpdateLedgerFields(ctx context.Context, patientID string, releasedSessions int, carryAmount decimal.Decimal) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdatePatientLedgerFields, patientID, releasedSessions, carryAmount)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *patientPostgresRepository) List(ctx context.Context, filter requests.PatientFilter) ([]models.Patient, int, error) {
	var total int
	err := repo.DB.QueryRowContext(ctx, queries.CountPatients, filter.Status).Scan(&total)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetPatients,
		filter.Status,
		filter.Pagination.PageSize,
		filter.Pagination.Offset(),
	)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	patients := make([]models.Patient, 0, filter.Pagination.PageSize)
	for rows.Next() {
		var patient models.Patient
		if err := scanPatient(rows, &patient); err != nil {
			return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
		}
		patients = append(patients, patient)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return patients, total, nil
}

func (repo *patientPostgresRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetPatientIDs)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return ids, nil
}
