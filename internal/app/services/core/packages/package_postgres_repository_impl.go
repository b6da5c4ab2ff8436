package packages

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/queries"
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// uniqueViolation is raised by the one-active-package-per-patient index.
const uniqueViolation = pq.ErrorCode("23505")

type packagePostgresRepository struct {
	DB contracts.DBTX
}

func NewPackagePostgresRepository(db contracts.DBTX) contracts.PackageRepository {
	return &packagePostgresRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPackage(row rowScanner, pkg *models.Package) error {
	return row.Scan(
		&pkg.ID,
		&pkg.PatientID,
		&pkg.AssignedDoctorID,
		&pkg.VisitType,
		&pkg.OriginalAmount,
		&pkg.DiscountAmount,
		&pkg.TotalAmount,
		&pkg.TotalSessions,
		&pkg.PerSessionAmount,
		&pkg.ReleasedSessions,
		&pkg.UsedSessions,
		&pkg.CarryAmount,
		&pkg.ExcessAmount,
		&pkg.Status,
		&pkg.StartDate,
		&pkg.EndDate,
		&pkg.ClosedAt,
		&pkg.ClosedBy,
		&pkg.CloseReason,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)
}

func (repo *packagePostgresRepository) Create(ctx context.Context, pkg *models.Package) error {
	_, err := repo.DB.ExecContext(ctx, queries.InsertPackage,
		pkg.ID,
		pkg.PatientID,
		pkg.AssignedDoctorID,
		pkg.VisitType,
		pkg.OriginalAmount,
		pkg.DiscountAmount,
		pkg.TotalAmount,
		pkg.TotalSessions,
		pkg.PerSessionAmount,
		pkg.ReleasedSessions,
		pkg.UsedSessions,
		pkg.CarryAmount,
		pkg.ExcessAmount,
		pkg.Status,
		pkg.StartDate,
		pkg.EndDate,
		pkg.ClosedAt,
		pkg.ClosedBy,
		pkg.CloseReason,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return exceptions.ErrInvalidState(err, constvars.ErrClientActivePackageExists)
	} else if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *packagePostgresRepository) FindByID(ctx context.Context, packageID string) (*models.Package, error) {
	return repo.findOne(ctx, queries.GetPackageByID, packageID)
}

func (repo *packagePostgresRepository) FindByIDForUpdate(ctx context.Context, packageID string) (*models.Package, error) {
	return repo.findOne(ctx, queries.GetPackageByIDForUpdate, packageID)
}

func (repo *packagePostgresRepository) FindActiveByPatient(ctx context.Context, patientID string) (*models.Package, error) {
	return repo.findOne(ctx, queries.GetActivePackageByPatient, patientID)
}

func (repo *packagePostgresRepository) FindActiveByPatientForUpdate(ctx context.Context, patientID string) (*models.Package, error) {
	return repo.findOne(ctx, queries.GetActivePackageByPatientForUpdate, patientID)
}

func (repo *packagePostgresRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Package, error) {
	var pkg models.Package
	err := scanPackage(repo.DB.QueryRowContext(ctx, query, args...), &pkg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &pkg, nil
}

func (repo *packagePostgresRepository) FindAllByPatient(ctx context.Context, patientID string) ([]models.Package, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetPackagesByPatient, patientID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	packages := []models.Package{}
	for rows.Next() {
		var pkg models.Package
		if err := scanPackage(rows, &pkg); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return packages, nil
}

func (repo *packagePostgresRepository) SumTotalAmountByPatient(ctx context.Context, patientID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := repo.DB.QueryRowContext(ctx, queries.SumTotalDueByPatient, patientID).Scan(&total)
	if err != nil {
		return decimal.Zero, exceptions.ErrPostgresDBFindData(err)
	}
	return total, nil
}

func (repo *packagePostgresRepository) Update(ctx context.Context, pkg *models.Package) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdatePackage,
		pkg.ID,
		pkg.AssignedDoctorID,
		pkg.VisitType,
		pkg.OriginalAmount,
		pkg.DiscountAmount,
		pkg.TotalAmount,
		pkg.TotalSessions,
		pkg.PerSessionAmount,
		pkg.ReleasedSessions,
		pkg.UsedSessions,
		pkg.CarryAmount,
		pkg.ExcessAmount,
		pkg.Status,
		pkg.EndDate,
		pkg.ClosedAt,
		pkg.ClosedBy,
		pkg.CloseReason,
		pkg.UpdatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *packagePostgresRepository) Delete(ctx context.Context, packageID string) error {
	_, err := repo.DB.ExecContext(ctx, queries.DeletePackage, packageID)
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	return nil
}
