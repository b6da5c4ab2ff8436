package contracts

import (
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"context"

	"github.com/shopspring/decimal"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, paymentID string) (*models.Payment, error)
	SumPaidByPatient(ctx context.Context, patientID string) (decimal.Decimal, error)
	FindByPatient(ctx context.Context, patientID string, pagination requests.Pagination) ([]models.Payment, int, error)
}

type PaymentUsecase interface {
	RecordPayment(ctx context.Context, request *requests.RecordPayment) (*models.PaymentResult, error)
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)
	ListPaymentsByPatient(ctx context.Context, patientID string, pagination requests.Pagination) ([]models.Payment, int, error)
	UpdatePayment(ctx context.Context, paymentID string, request *requests.UpdatePayment) (*models.Payment, error)
}
