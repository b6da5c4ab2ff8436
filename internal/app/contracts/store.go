package contracts

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store groups the ledger repositories bound to one connection or
// transaction.
type Store interface {
	Patients() PatientRepository
	Doctors() DoctorRepository
	Packages() PackageRepository
	Sessions() SessionRepository
	Payments() PaymentRepository
}

type TxManager interface {
	// WithinTransaction runs fn in a single transaction. The whole of fn may
	// be re-run when the database reports a serialization failure, so fn
	// must not have side effects outside store.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}
