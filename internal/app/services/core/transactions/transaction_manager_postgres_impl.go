package transactions

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/app/services/core/doctors"
	"clinic-ledger-service/internal/app/services/core/packages"
	"clinic-ledger-service/internal/app/services/core/patients"
	"clinic-ledger-service/internal/app/services/core/payments"
	"clinic-ledger-service/internal/app/services/core/sessions"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/exceptions"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	serializationFailure = pq.ErrorCode("40001")
	deadlockDetected     = pq.ErrorCode("40P01")

	defaultMaxAttempts = 3
	retryBackoff       = 20 * time.Millisecond
)

type postgresStore struct {
	patients contracts.PatientRepository
	doctors  contracts.DoctorRepository
	packages contracts.PackageRepository
	sessions contracts.SessionRepository
	payments contracts.PaymentRepository
}

// NewStore binds every ledger repository to db, which is either the pool or
// an open transaction.
func NewStore(db contracts.DBTX) contracts.Store {
	return &postgresStore{
		patients: patients.NewPatientPostgresRepository(db),
		doctors:  doctors.NewDoctorPostgresRepository(db),
		packages: packages.NewPackagePostgresRepository(db),
		sessions: sessions.NewSessionPostgresRepository(db),
		payments: payments.NewPaymentPostgresRepository(db),
	}
}

func (s *postgresStore) Patients() contracts.PatientRepository { return s.patients }
func (s *postgresStore) Doctors() contracts.DoctorRepository   { return s.doctors }
func (s *postgresStore) Packages() contracts.PackageRepository { return s.packages }
func (s *postgresStore) Sessions() contracts.SessionRepository { return s.sessions }
func (s *postgresStore) Payments() contracts.PaymentRepository { return s.payments }

type postgresTxManager struct {
	DB          *sql.DB
	Log         *zap.Logger
	maxAttempts int
}

func NewPostgresTxManager(db *sql.DB, maxAttempts int, logger *zap.Logger) contracts.TxManager {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &postgresTxManager{
		DB:          db,
		Log:         logger,
		maxAttempts: maxAttempts,
	}
}

func (m *postgresTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, store contracts.Store) error) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	return retry(ctx, m.maxAttempts, func(attempt int) error {
		err := m.runOnce(ctx, fn)
		if err != nil && isRetryable(err) {
			m.Log.Warn("postgresTxManager.WithinTransaction retrying",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingAttemptKey, attempt),
				zap.Error(err),
			)
		}
		return err
	})
}

func (m *postgresTxManager) runOnce(ctx context.Context, fn func(ctx context.Context, store contracts.Store) error) error {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBBeginTx(err)
	}

	if err := fn(ctx, NewStore(tx)); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			m.Log.Error("postgresTxManager.runOnce rollback failed", zap.Error(rollbackErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBCommitTx(err)
	}
	return nil
}

// retry runs fn until it succeeds, fails with a non-retryable error or
// maxAttempts is reached. attempt starts at 1.
func retry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn(attempt)
		if err == nil || !isRetryable(err) || attempt == maxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return exceptions.ErrServerDeadlineExceeded(ctx.Err())
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	return err
}

func isRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == serializationFailure || pqErr.Code == deadlockDetected
}
