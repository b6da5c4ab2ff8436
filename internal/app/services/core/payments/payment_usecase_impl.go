package payments

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/app/services/core/ledger"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/utils"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type paymentUsecase struct {
	Store           contracts.Store
	TxManager       contracts.TxManager
	StatusProjector contracts.StatusProjector
	Activity        contracts.ActivityRecorder
	Log             *zap.Logger
	now             func() time.Time
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	store contracts.Store,
	txManager contracts.TxManager,
	statusProjector contracts.StatusProjector,
	activity contracts.ActivityRecorder,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		paymentUsecaseInstance = newPaymentUsecase(store, txManager, statusProjector, activity, logger)
	})
	return paymentUsecaseInstance
}

func newPaymentUsecase(
	store contracts.Store,
	txManager contracts.TxManager,
	statusProjector contracts.StatusProjector,
	activity contracts.ActivityRecorder,
	logger *zap.Logger,
) *paymentUsecase {
	return &paymentUsecase{
		Store:           store,
		TxManager:       txManager,
		StatusProjector: statusProjector,
		Activity:        activity,
		Log:             logger,
		now:             time.Now,
	}
}

// RecordPayment stores a payment and converts it into released sessions on
// the patient's active package. Without an active package the payment is
// kept unallocated.
func (uc *paymentUsecase) RecordPayment(ctx context.Context, request *requests.RecordPayment) (*models.PaymentResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.RecordPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingAmountKey, request.AmountPaid.String()),
	)

	if err := validateAmountPaid(request.AmountPaid); err != nil {
		return nil, err
	}
	if !isPaymentMode(request.PaymentMode) {
		return nil, exceptions.ErrInvalidArgument(
			fmt.Errorf("payment_mode=%q", request.PaymentMode),
			constvars.ErrClientInvalidPaymentMode,
		)
	}

	now := uc.now()
	paymentDate, err := utils.ParseOptionalDate(request.PaymentDate, now)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}

	var result models.PaymentResult
	err = uc.TxManager.WithinTransaction(ctx, func(ctx context.Context, store contracts.Store) error {
		patient, err := store.Patients().FindByIDForUpdate(ctx, request.PatientID)
		if err != nil {
			return err
		}
		if patient == nil {
			return exceptions.ErrNotFound(nil, constvars.ResourcePatient, request.PatientID)
		}

		if request.SessionID != nil {
			if err := ensureSessionOwned(ctx, store, *request.SessionID, request.PatientID); err != nil {
				return err
			}
		}

		payment := &models.Payment{
			ID:          utils.GenerateID(),
			PatientID:   request.PatientID,
			SessionID:   request.SessionID,
			AmountPaid:  request.AmountPaid,
			PaymentMode: request.PaymentMode,
			PaymentDate: paymentDate,
			Remarks:     request.Remarks,
			CreatedBy:   request.CreatedBy,
		}
		payment.SetCreatedAtUpdatedAt(now)

		// Reset per attempt, the transaction may be retried.
		result = models.PaymentResult{Payment: payment}

		pkg, err := store.Packages().FindActiveByPatientForUpdate(ctx, request.PatientID)
		if err != nil {
			return err
		}
		if pkg != nil {
			allocation, err := ledger.Allocate(ledger.StateOf(pkg), request.AmountPaid)
			if err != nil {
				return err
			}
			ledger.ApplyAllocation(pkg, allocation, now)
			if err := store.Packages().Update(ctx, pkg); err != nil {
				return err
			}
			payment.PackageID = &pkg.ID
			result.Package = pkg
			result.SessionsReleased = allocation.SessionsReleased
		}

		totalDue, err := store.Packages().SumTotalAmountByPatient(ctx, request.PatientID)
		if err != nil {
			return err
		}
		totalPaid, err := store.Payments().SumPaidByPatient(ctx, request.PatientID)
		if err != nil {
			return err
		}
		payment.RemainingAmount = ledger.RemainingAmount(totalDue, totalPaid.Add(request.AmountPaid))

		if err := store.Payments().Create(ctx, payment); err != nil {
			return err
		}

		_, err = uc.StatusProjector.ProjectStatus(ctx, store, request.PatientID)
		return err
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.RecordPayment error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, request.PatientID),
			zap.Error(err),
		)
		return nil, err
	}

	details := map[string]interface{}{
		"amount_paid":       result.Payment.AmountPaid.String(),
		"payment_mode":      result.Payment.PaymentMode,
		"sessions_released": result.SessionsReleased,
		"remaining_amount":  result.Payment.RemainingAmount.String(),
	}
	identity, _ := utils.GetIdentity(ctx)
	uc.Activity.Emit(ctx, models.Activity{
		Action:     constvars.EventPaymentRecorded,
		EntityType: constvars.ResourcePayment,
		EntityID:   result.Payment.ID,
		PatientID:  result.Payment.PatientID,
		PackageID:  stringValue(result.Payment.PackageID),
		ActorID:    identity.UserID,
		Details:    details,
	})

	uc.Log.Info("paymentUsecase.RecordPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, result.Payment.ID),
		zap.Int(constvars.LoggingReleasedKey, result.SessionsReleased),
	)
	return &result, nil
}

func (uc *paymentUsecase) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	payment, err := uc.Store.Payments().FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.ResourcePayment, paymentID)
	}
	return payment, nil
}

func (uc *paymentUsecase) ListPaymentsByPatient(ctx context.Context, patientID string, pagination requests.Pagination) ([]models.Payment, int, error) {
	patient, err := uc.Store.Patients().FindByID(ctx, patientID)
	if err != nil {
		return nil, 0, err
	}
	if patient == nil {
		return nil, 0, exceptions.ErrNotFound(nil, constvars.ResourcePatient, patientID)
	}
	return uc.Store.Payments().FindByPatient(ctx, patientID, pagination)
}

// UpdatePayment corrects a recorded payment. Released sessions and the
// stored remaining amount are left as they were.
func (uc *paymentUsecase) UpdatePayment(ctx context.Context, paymentID string, request *requests.UpdatePayment) (*models.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.UpdatePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, paymentID),
	)

	if request.AmountPaid != nil {
		if err := validateAmountPaid(*request.AmountPaid); err != nil {
			return nil, err
		}
	}
	if request.PaymentMode != nil && !isPaymentMode(*request.PaymentMode) {
		return nil, exceptions.ErrInvalidArgument(
			fmt.Errorf("payment_mode=%q", *request.PaymentMode),
			constvars.ErrClientInvalidPaymentMode,
		)
	}

	var updated models.Payment
	err := uc.TxManager.WithinTransaction(ctx, func(ctx context.Context, store contracts.Store) error {
		payment, err := store.Payments().FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return exceptions.ErrNotFound(nil, constvars.ResourcePayment, paymentID)
		}

		if request.AmountPaid != nil {
			payment.AmountPaid = *request.AmountPaid
		}
		if request.PaymentMode != nil {
			payment.PaymentMode = *request.PaymentMode
		}
		if request.PaymentDate != nil {
			paymentDate, err := utils.ParseDate(*request.PaymentDate)
			if err != nil {
				return exceptions.ErrCannotParseTime(err)
			}
			payment.PaymentDate = paymentDate
		}
		if request.Remarks != nil {
			payment.Remarks = request.Remarks
		}
		payment.SetUpdatedAt(uc.now())

		if err := store.Payments().Update(ctx, payment); err != nil {
			return err
		}
		updated = *payment
		return nil
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.UpdatePayment error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, paymentID),
			zap.Error(err),
		)
		return nil, err
	}
	return &updated, nil
}

func ensureSessionOwned(ctx context.Context, store contracts.Store, sessionID, patientID string) error {
	session, err := store.Sessions().FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return exceptions.ErrNotFound(nil, constvars.ResourceSession, sessionID)
	}
	if session.PatientID != patientID {
		return exceptions.ErrInvalidArgument(
			fmt.Errorf("session %s belongs to patient %s", sessionID, session.PatientID),
			constvars.ErrClientSessionNotOwned,
		)
	}
	return nil
}

func validateAmountPaid(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return exceptions.ErrInvalidArgument(
			fmt.Errorf("amount_paid=%s", amount),
			constvars.ErrClientAmountNotPositive,
		)
	}
	if !utils.HasMoneyScale(amount) {
		return exceptions.ErrInvalidArgument(
			fmt.Errorf("amount_paid=%s has more than %d decimal places", amount, constvars.MoneyScale),
			constvars.ErrClientAmountScale,
		)
	}
	return nil
}

func isPaymentMode(mode string) bool {
	switch mode {
	case constvars.PaymentModeCash, constvars.PaymentModeCard, constvars.PaymentModeUPI:
		return true
	}
	return false
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
