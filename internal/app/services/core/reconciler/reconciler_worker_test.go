package reconciler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"clinic-ledger-service/internal/app/config"
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/app/services/core/ledgertest"
	"clinic-ledger-service/internal/app/services/core/patients"
	"clinic-ledger-service/internal/pkg/constvars"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLocker struct {
	mu       sync.Mutex
	held     bool
	busy     bool
	unlocked int
	err      error
}

func (l *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, "", l.err
	}
	if l.busy || l.held {
		return false, "", nil
	}
	l.held = true
	return true, "token-1", nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = false
	l.unlocked++
	return nil
}

func (l *fakeLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

func seededStore() *ledgertest.MemStore {
	store := ledgertest.NewMemStore()
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	// Stale: marked no_package while holding an active package.
	store.AddPatient(models.Patient{ID: "patient-active", Name: "A", Status: constvars.PatientStatusNoPackage})
	store.AddPackage(models.Package{
		ID:               "package-active",
		PatientID:        "patient-active",
		TotalAmount:      decimal.NewFromInt(4500),
		TotalSessions:    9,
		PerSessionAmount: decimal.NewFromInt(500),
		ReleasedSessions: 2,
		CarryAmount:      decimal.NewFromInt(200),
		Status:           constvars.PackageStatusActive,
		StartDate:        now,
	})

	// Stale: marked active after the package was closed.
	store.AddPatient(models.Patient{ID: "patient-closed", Name: "B", Status: constvars.PatientStatusActive})
	store.AddPackage(models.Package{
		ID:            "package-closed",
		PatientID:     "patient-closed",
		TotalSessions: 5,
		Status:        constvars.PackageStatusClosed,
		StartDate:     now,
	})

	// Already correct.
	store.AddPatient(models.Patient{ID: "patient-none", Name: "C", Status: constvars.PatientStatusNoPackage})
	return store
}

func newTestWorker(store *ledgertest.MemStore, locker *fakeLocker) *Worker {
	return NewWorker(zap.NewNop(), &config.InternalConfig{}, locker, store, store, patients.NewStatusProjector(zap.NewNop()))
}

func TestRunOnce_CorrectsStaleStatuses(t *testing.T) {
	store := seededStore()
	locker := &fakeLocker{}
	worker := newTestWorker(store, locker)

	corrected, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, corrected)

	active, _ := store.Patient("patient-active")
	assert.Equal(t, constvars.PatientStatusActive, active.Status)
	assert.Equal(t, 2, active.ReleasedSessions)
	assert.True(t, decimal.NewFromInt(200).Equal(active.CarryAmount))

	closed, _ := store.Patient("patient-closed")
	assert.Equal(t, constvars.PatientStatusDischarged, closed.Status)

	none, _ := store.Patient("patient-none")
	assert.Equal(t, constvars.PatientStatusNoPackage, none.Status)

	assert.Equal(t, 1, locker.unlocked)
	assert.False(t, locker.held)

	again, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, again, "a second run has nothing left to correct")
}

func TestRunOnce_SkipsWhenAnotherInstanceLeads(t *testing.T) {
	store := seededStore()
	worker := newTestWorker(store, &fakeLocker{busy: true})

	corrected, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, corrected)
	assert.Zero(t, store.Transactions)

	patient, _ := store.Patient("patient-active")
	assert.Equal(t, constvars.PatientStatusNoPackage, patient.Status)
}

func TestRunOnce_LockError(t *testing.T) {
	worker := newTestWorker(seededStore(), &fakeLocker{err: errors.New("redis down")})

	_, err := worker.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestRunOnce_ContinuesPastPatientFailures(t *testing.T) {
	store := seededStore()
	store.FailOn("packages.FindAllByPatient", errors.New("read failed"))
	locker := &fakeLocker{}
	worker := newTestWorker(store, locker)

	corrected, err := worker.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Zero(t, corrected)
	assert.Equal(t, 3, store.Rollbacks)
	assert.Equal(t, 1, locker.unlocked)
}

func TestStartStop(t *testing.T) {
	worker := NewWorker(zap.NewNop(), &config.InternalConfig{
		Ledger: config.AppLedger{ReconcilerCronSpec: "not a spec"},
	}, &fakeLocker{}, seededStore(), seededStore(), patients.NewStatusProjector(zap.NewNop()))

	worker.Start()
	worker.Start()
	assert.NotNil(t, worker.cron)

	worker.Stop()
	assert.Nil(t, worker.cron)
	worker.Stop()
}
