package payments

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

type paymentPostgresRepository struct {
	DB contracts.DBTX
}

func NewPaymentPostgresRepository(db contracts.DBTX) contracts.PaymentRepository {
	return &paymentPostgresRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner, payment *models.Payment) error {
	return row.Scan(
		&payment.ID,
		&payment.PatientID,
		&payment.SessionID,
		&payment.PackageID,
		&payment.AmountPaid,
		&payment.PaymentMode,
		&payment.PaymentDate,
		&payment.RemainingAmount,
		&payment.Remarks,
		&payment.CreatedBy,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
}

func (repo *paymentPostgresRepository) Create(ctx context.Context, payment *models.Payment) error {
	_, err := repo.DB.ExecContext(ctx, queries.InsertPayment,
		payment.ID,
		payment.PatientID,
		payment.SessionID,
		payment.PackageID,
		payment.AmountPaid,
		payment.PaymentMode,
		payment.PaymentDate,
		payment.RemainingAmount,
		payment.Remarks,
		payment.CreatedBy,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (repo *paymentPostgresRepository) Update(ctx context.Context, payment *models.Payment) error {
	_, err := repo.DB.ExecContext(ctx, queries.UpdatePayment,
		payment.ID,
		payment.AmountPaid,
		payment.PaymentMode,
		payment.PaymentDate,
		payment.Remarks,
		payment.UpdatedAt,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (repo *paymentPostgresRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := scanPayment(repo.DB.QueryRowContext(ctx, queries.GetPaymentByID, paymentID), &payment)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &payment, nil
}

func (repo *paymentPostgresRepository) SumPaidByPatient(ctx context.Context, patientID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := repo.DB.QueryRowContext(ctx, queries.SumPaidByPatient, patientID).Scan(&total)
	if err != nil {
		return decimal.Zero, exceptions.ErrPostgresDBFindData(err)
	}
	return total, nil
}

func (repo *paymentPostgresRepository) FindByPatient(ctx context.Context, patientID string, pagination requests.Pagination) ([]models.Payment, int, error) {
	var total int
	err := repo.DB.QueryRowContext(ctx, queries.CountPaymentsByPatient, patientID).Scan(&total)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetPaymentsByPatient,
		patientID,
		pagination.PageSize,
		pagination.Offset(),
	)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	payments := make([]models.Payment, 0, pagination.PageSize)
	for rows.Next() {
		var payment models.Payment
		if err := scanPayment(rows, &payment); err != nil {
			return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return payments, total, nil
}
