package sessions

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/queries"
	"context"
	"database/sql"
	"errors"
)

type sessionPostgresRepository struct {
	DB contracts.DBTX
}

func NewSessionPostgresRepository(db contracts.DBTX) contracts.SessionRepository {
	return &sessionPostgresRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner, session *models.Session) error {
	return row.Scan(
		&session.ID,
		&session.PatientID,
		&session.DoctorID,
		&session.PackageID,
		&session.SessionDate,
		&session.Shift,
		&session.VisitType,
		&session.Remarks,
		&session.CreatedBy,
		&session.CreatedAt,
	)
}

func (repo *sessionPostgresRepository) Create(ctx context.Context, session *models.Session) error {
	_, err := repo.DB.ExecContext(ctx, queries.InsertSession,
		session.ID,
		session.PatientID,
		session.DoctorID,
		session.PackageID,
		session.SessionDate,
		session.Shift,
		session.VisitType,
		session.Remarks,
		session.CreatedBy,
		session.CreatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *sessionPostgresRepository) FindByID(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	err := scanSession(repo.DB.QueryRowContext(ctx, queries.GetSessionByID, sessionID), &session)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &session, nil
}

func (repo *sessionPostgresRepository) CountByPackage(ctx context.Context, packageID string) (int, error) {
	var count int
	err := repo.DB.QueryRowContext(ctx, queries.CountSessionsByPackage, packageID).Scan(&count)
	if err != nil {
		return 0, exceptions.ErrPostgresDBFindData(err)
	}
	return count, nil
}

func (repo *sessionPostgresRepository) FindByPatient(ctx context.Context, patientID string, pagination requests.Pagination) ([]models.Session, int, error) {
	var total int
	err := repo.DB.QueryRowContext(ctx, queries.CountSessionsByPatient, patientID).Scan(&total)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetSessionsByPatient,
		patientID,
		pagination.PageSize,
		pagination.Offset(),
	)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	sessions := make([]models.Session, 0, pagination.PageSize)
	for rows.Next() {
		var session models.Session
		if err := scanSession(rows, &session); err != nil {
			return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return sessions, total, nil
}
