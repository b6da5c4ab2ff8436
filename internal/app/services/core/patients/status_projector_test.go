package patients

import (
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/app/services/core/ledgertest"
	"clinic-ledger-service/internal/pkg/constvars"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedPackage(store *ledgertest.MemStore, id, patientID, status string, released int, carry string) {
	store.AddPackage(models.Package{
		ID:               id,
		PatientID:        patientID,
		TotalSessions:    10,
		ReleasedSessions: released,
		CarryAmount:      decimal.RequireFromString(carry),
		Status:           status,
		StartDate:        time.Now(),
	})
}

func TestStatusProjector(t *testing.T) {
	ctx := context.Background()
	projector := NewStatusProjector(zap.NewNop())

	t.Run("no packages", func(t *testing.T) {
		store := ledgertest.NewMemStore()
		store.AddPatient(models.Patient{ID: "p1", Status: constvars.PatientStatusActive, ReleasedSessions: 3})

		status, err := projector.ProjectStatus(ctx, store, "p1")
		require.NoError(t, err)
		assert.Equal(t, constvars.PatientStatusNoPackage, status)

		patient, _ := store.Patient("p1")
		assert.Equal(t, constvars.PatientStatusNoPackage, patient.Status)
		assert.Equal(t, 0, patient.ReleasedSessions)
		assert.True(t, patient.CarryAmount.IsZero())
	})

	t.Run("active package is mirrored", func(t *testing.T) {
		store := ledgertest.NewMemStore()
		store.AddPatient(models.Patient{ID: "p1"})
		seedPackage(store, "old", "p1", constvars.PackageStatusCompleted, 10, "0")
		seedPackage(store, "new", "p1", constvars.PackageStatusActive, 2, "200")

		status, err := projector.ProjectStatus(ctx, store, "p1")
		require.NoError(t, err)
		assert.Equal(t, constvars.PatientStatusActive, status)

		patient, _ := store.Patient("p1")
		assert.Equal(t, constvars.PatientStatusActive, patient.Status)
		assert.Equal(t, 2, patient.ReleasedSessions)
		assert.Equal(t, "200", patient.CarryAmount.String())
	})

	t.Run("only terminal packages", func(t *testing.T) {
		store := ledgertest.NewMemStore()
		store.AddPatient(models.Patient{ID: "p1", Status: constvars.PatientStatusActive})
		seedPackage(store, "a", "p1", constvars.PackageStatusCompleted, 10, "0")
		seedPackage(store, "b", "p1", constvars.PackageStatusClosed, 4, "50")

		status, err := projector.ProjectStatus(ctx, store, "p1")
		require.NoError(t, err)
		assert.Equal(t, constvars.PatientStatusDischarged, status)

		again, err := projector.ProjectStatus(ctx, store, "p1")
		require.NoError(t, err)
		assert.Equal(t, status, again)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		store := ledgertest.NewMemStore()
		store.AddPatient(models.Patient{ID: "p1"})
		store.FailOn("packages.FindAllByPatient", errors.New("connection reset"))

		_, err := projector.ProjectStatus(ctx, store, "p1")
		assert.Error(t, err)
	})
}
