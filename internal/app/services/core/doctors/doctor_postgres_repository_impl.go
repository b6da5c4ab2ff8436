package doctors

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/queries"
	"context"
	"database/sql"
	"errors"
)

type doctorPostgresRepository struct {
	DB contracts.DBTX
}

func NewDoctorPostgresRepository(db contracts.DBTX) contracts.DoctorRepository {
	return &doctorPostgresRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDoctor(row rowScanner, doctor *models.Doctor) error {
	return row.Scan(
		&doctor.ID,
		&doctor.Name,
		&doctor.Specialization,
		&doctor.Phone,
		&doctor.IsActive,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)
}

func (repo *doctorPostgresRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	_, err := repo.DB.ExecContext(ctx, queries.InsertDoctor,
		doctor.ID,
		doctor.Name,
		doctor.Specialization,
		doctor.Phone,
		doctor.IsActive,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *doctorPostgresRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := scanDoctor(repo.DB.QueryRowContext(ctx, queries.GetDoctorByID, doctorID), &doctor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &doctor, nil
}

func (repo *doctorPostgresRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdateDoctor,
		doctor.ID,
		doctor.Name,
		doctor.Specialization,
		doctor.Phone,
		doctor.IsActive,
		doctor.UpdatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *doctorPostgresRepository) List(ctx context.Context, activeOnly bool) ([]models.Doctor, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetDoctors, activeOnly)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	doctors := []models.Doctor{}
	for rows.Next() {
		var doctor models.Doctor
		if err := scanDoctor(rows, &doctor); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		doctors = append(doctors, doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return doctors, nil
}
