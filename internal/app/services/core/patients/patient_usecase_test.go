package patients

import (
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/app/services/core/ledgertest"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPatientUsecase(t *testing.T) {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	store := ledgertest.NewMemStore()
	uc := newPatientUsecase(store, zap.NewNop())
	fixed := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	address := "12 Lake Road"
	created, err := uc.RegisterPatient(ctx, &requests.RegisterPatient{
		Name:    "Asha Rao",
		Phone:   "+919812345678",
		Address: &address,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, constvars.PatientStatusNoPackage, created.Status)
	assert.Equal(t, fixed, created.CreatedAt)

	t.Run("get includes active package", func(t *testing.T) {
		store.AddPackage(models.Package{ID: "pkg-1", PatientID: created.ID, Status: constvars.PackageStatusActive})

		detail, err := uc.GetPatient(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Asha Rao", detail.Name)
		require.NotNil(t, detail.ActivePackage)
		assert.Equal(t, "pkg-1", detail.ActivePackage.ID)
	})

	t.Run("get unknown patient", func(t *testing.T) {
		_, err := uc.GetPatient(ctx, "missing")
		assert.True(t, exceptions.IsNotFound(err))
	})

	t.Run("update leaves status alone", func(t *testing.T) {
		name := "Asha R."
		age := 41
		updated, err := uc.UpdatePatient(ctx, created.ID, &requests.UpdatePatient{Name: &name, Age: &age})
		require.NoError(t, err)
		assert.Equal(t, "Asha R.", updated.Name)
		require.NotNil(t, updated.Age)
		assert.Equal(t, 41, *updated.Age)

		stored, _ := store.Patient(created.ID)
		assert.Equal(t, "Asha R.", stored.Name)
		assert.Equal(t, "+919812345678", stored.Phone)
		assert.Equal(t, constvars.PatientStatusNoPackage, stored.Status)
	})

	t.Run("list filters by status", func(t *testing.T) {
		store.AddPatient(models.Patient{ID: "zz-active", Name: "B", Status: constvars.PatientStatusActive})

		all, total, err := uc.ListPatients(ctx, requests.PatientFilter{Pagination: requests.Pagination{Page: 1, PageSize: 10}})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, all, 2)

		active, total, err := uc.ListPatients(ctx, requests.PatientFilter{
			Status:     constvars.PatientStatusActive,
			Pagination: requests.Pagination{Page: 1, PageSize: 10},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "zz-active", active[0].ID)
	})
}
