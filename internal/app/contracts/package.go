package contracts

import (
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"context"

	"github.com/shopspring/decimal"
)

type PackageRepository interface {
	Create(ctx context.Context, pkg *models.Package) error
	FindByID(ctx context.Context, packageID string) (*models.Package, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, packageID string) (*models.Package, error)
	FindActiveByPatient(ctx context.Context, patientID string) (*models.Package, error)
	FindActiveByPatientForUpdate(ctx context.Context, patientID string) (*models.Package, error)
	FindAllByPatient(ctx context.Context, patientID string) ([]models.Package, error)
	SumTotalAmountByPatient(ctx context.Context, patientID string) (decimal.Decimal, error)
	Update(ctx context.Context, pkg *models.Package) error
	Delete(ctx context.Context, packageID string) error
}

type PackageUsecase interface {
	CreatePackage(ctx context.Context, request *requests.CreatePackage) (*models.Package, error)
	GetPackage(ctx context.Context, packageID string) (*models.Package, error)
	ListPackagesByPatient(ctx context.Context, patientID string) ([]models.Package, error)
	UpdatePackage(ctx context.Context, packageID string, request *requests.UpdatePackage) (*models.Package, error)
	ClosePackage(ctx context.Context, packageID string, request *requests.ClosePackage) (*models.Package, error)
	DeletePackage(ctx context.Context, packageID string) error
}
