package packages

import (
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/app/services/core/ledgertest"
	"clinic-ledger-service/internal/app/services/core/patients"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	ctx      context.Context
	store    *ledgertest.MemStore
	activity *ledgertest.ActivityRecorder
	uc       *packageUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := ledgertest.NewMemStore()
	store.AddPatient(models.Patient{ID: "patient-1", Name: "Ravi"})
	store.AddDoctor(models.Doctor{ID: "doctor-1", Name: "Dr. Shah", IsActive: true})

	activity := &ledgertest.ActivityRecorder{}
	uc := newPackageUsecase(store, store, patients.NewStatusProjector(zap.NewNop()), activity, zap.NewNop())
	clock := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	return &fixture{
		ctx:      context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-test"),
		store:    store,
		activity: activity,
		uc:       uc,
	}
}

func (f *fixture) create(t *testing.T, original, discount string, sessions int) *models.Package {
	t.Helper()
	discountAmount := decimal.RequireFromString(discount)
	pkg, err := f.uc.CreatePackage(f.ctx, &requests.CreatePackage{
		PatientID:      "patient-1",
		OriginalAmount: decimal.RequireFromString(original),
		DiscountAmount: &discountAmount,
		TotalSessions:  sessions,
	})
	require.NoError(t, err)
	return pkg
}

func (f *fixture) patientStatus(t *testing.T) string {
	t.Helper()
	patient, ok := f.store.Patient("patient-1")
	require.True(t, ok)
	return patient.Status
}

func TestCreatePackage(t *testing.T) {
	t.Run("computes totals and activates the patient", func(t *testing.T) {
		f := newFixture(t)
		doctorID := "doctor-1"
		discount := decimal.NewFromInt(500)

		pkg, err := f.uc.CreatePackage(f.ctx, &requests.CreatePackage{
			PatientID:        "patient-1",
			OriginalAmount:   decimal.NewFromInt(5000),
			DiscountAmount:   &discount,
			TotalSessions:    9,
			AssignedDoctorID: &doctorID,
		})
		require.NoError(t, err)

		assert.Equal(t, "4500", pkg.TotalAmount.String())
		assert.Equal(t, "500", pkg.PerSessionAmount.String())
		assert.Equal(t, constvars.PackageStatusActive, pkg.Status)
		assert.Equal(t, 0, pkg.ReleasedSessions)
		assert.Equal(t, 0, pkg.UsedSessions)
		assert.True(t, pkg.CarryAmount.IsZero())
		assert.False(t, pkg.StartDate.IsZero())

		assert.Equal(t, constvars.PatientStatusActive, f.patientStatus(t))
		assert.Equal(t, []string{constvars.EventPackageCreated}, f.activity.Actions())
	})

	t.Run("free package is released up front", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.create(t, "1000", "1000", 4)
		assert.Equal(t, 4, pkg.ReleasedSessions)
	})

	t.Run("unknown patient", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.CreatePackage(f.ctx, &requests.CreatePackage{
			PatientID:      "nobody",
			OriginalAmount: decimal.NewFromInt(100),
			TotalSessions:  1,
		})
		assert.True(t, exceptions.IsNotFound(err))
	})

	t.Run("unknown doctor", func(t *testing.T) {
		f := newFixture(t)
		doctorID := "ghost"
		_, err := f.uc.CreatePackage(f.ctx, &requests.CreatePackage{
			PatientID:        "patient-1",
			OriginalAmount:   decimal.NewFromInt(100),
			TotalSessions:    1,
			AssignedDoctorID: &doctorID,
		})
		assert.True(t, exceptions.IsNotFound(err))
		assert.Equal(t, constvars.PatientStatusNoPackage, f.patientStatus(t))
	})

	t.Run("invalid amounts", func(t *testing.T) {
		f := newFixture(t)
		discount := decimal.NewFromInt(600)
		_, err := f.uc.CreatePackage(f.ctx, &requests.CreatePackage{
			PatientID:      "patient-1",
			OriginalAmount: decimal.NewFromInt(500),
			DiscountAmount: &discount,
			TotalSessions:  5,
		})
		assert.True(t, exceptions.IsInvalidArgument(err))
		assert.Equal(t, 0, f.store.Transactions)
	})

	t.Run("second active package is rejected", func(t *testing.T) {
		f := newFixture(t)
		first := f.create(t, "1000", "0", 2)

		_, err := f.uc.CreatePackage(f.ctx, &requests.CreatePackage{
			PatientID:      "patient-1",
			OriginalAmount: decimal.NewFromInt(2000),
			TotalSessions:  4,
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsInvalidState(err))

		all, err := f.uc.ListPackagesByPatient(f.ctx, "patient-1")
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, first.ID, all[0].ID)
	})

	t.Run("new package after the previous one closed", func(t *testing.T) {
		f := newFixture(t)
		first := f.create(t, "1000", "0", 2)
		_, err := f.uc.ClosePackage(f.ctx, first.ID, &requests.ClosePackage{Status: constvars.PackageStatusClosed})
		require.NoError(t, err)

		f.create(t, "3000", "0", 6)
		assert.Equal(t, constvars.PatientStatusActive, f.patientStatus(t))
	})
}

func TestClosePackage(t *testing.T) {
	t.Run("closing discharges the patient", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.create(t, "1000", "0", 4)
		reason := "moved city"

		closed, err := f.uc.ClosePackage(f.ctx, pkg.ID, &requests.ClosePackage{
			Status:   constvars.PackageStatusClosed,
			Reason:   &reason,
			ClosedBy: "user-9",
		})
		require.NoError(t, err)
		assert.Equal(t, constvars.PackageStatusClosed, closed.Status)
		require.NotNil(t, closed.ClosedAt)
		require.NotNil(t, closed.EndDate)
		require.NotNil(t, closed.ClosedBy)
		assert.Equal(t, "user-9", *closed.ClosedBy)
		assert.Equal(t, "moved city", *closed.CloseReason)
		assert.Equal(t, constvars.PatientStatusDischarged, f.patientStatus(t))
		assert.Contains(t, f.activity.Actions(), constvars.EventPackageClosed)
	})

	t.Run("closing twice leaves the row unchanged", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.create(t, "1000", "0", 4)
		_, err := f.uc.ClosePackage(f.ctx, pkg.ID, &requests.ClosePackage{Status: constvars.PackageStatusCompleted})
		require.NoError(t, err)
		before, _ := f.store.Package(pkg.ID)

		_, err = f.uc.ClosePackage(f.ctx, pkg.ID, &requests.ClosePackage{Status: constvars.PackageStatusClosed})
		require.Error(t, err)
		assert.True(t, exceptions.IsInvalidState(err))

		after, _ := f.store.Package(pkg.ID)
		assert.Equal(t, before, after)
	})

	t.Run("unknown package", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.ClosePackage(f.ctx, "missing", &requests.ClosePackage{Status: constvars.PackageStatusClosed})
		assert.True(t, exceptions.IsNotFound(err))
	})

	t.Run("projection failure rolls the close back", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.create(t, "1000", "0", 4)
		f.store.FailOn("patients.UpdateStatus", errors.New("connection lost"))

		_, err := f.uc.ClosePackage(f.ctx, pkg.ID, &requests.ClosePackage{Status: constvars.PackageStatusClosed})
		require.Error(t, err)

		stored, _ := f.store.Package(pkg.ID)
		assert.Equal(t, constvars.PackageStatusActive, stored.Status)
		assert.Nil(t, stored.ClosedAt)
		assert.Equal(t, constvars.PatientStatusActive, f.patientStatus(t))
	})
}

func TestDeletePackage(t *testing.T) {
	f := newFixture(t)
	pkg := f.create(t, "1000", "0", 4)
	require.Equal(t, constvars.PatientStatusActive, f.patientStatus(t))

	require.NoError(t, f.uc.DeletePackage(f.ctx, pkg.ID))
	assert.Equal(t, constvars.PatientStatusNoPackage, f.patientStatus(t))

	_, err := f.uc.GetPackage(f.ctx, pkg.ID)
	assert.True(t, exceptions.IsNotFound(err))

	err = f.uc.DeletePackage(f.ctx, pkg.ID)
	assert.True(t, exceptions.IsNotFound(err))
}

func TestUpdatePackage(t *testing.T) {
	t.Run("recomputes totals from merged values", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.create(t, "5000", "500", 9)
		sessions := 10

		updated, err := f.uc.UpdatePackage(f.ctx, pkg.ID, &requests.UpdatePackage{TotalSessions: &sessions})
		require.NoError(t, err)
		assert.Equal(t, "4500", updated.TotalAmount.String())
		assert.Equal(t, "450", updated.PerSessionAmount.String())
		assert.Equal(t, "500", updated.DiscountAmount.String())
	})

	t.Run("lower price settles the carry", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.create(t, "5000", "0", 10)
		stored, _ := f.store.Package(pkg.ID)
		stored.ReleasedSessions = 2
		stored.CarryAmount = decimal.NewFromInt(400)
		f.store.AddPackage(stored)

		original := decimal.NewFromInt(1500)
		updated, err := f.uc.UpdatePackage(f.ctx, pkg.ID, &requests.UpdatePackage{OriginalAmount: &original})
		require.NoError(t, err)
		assert.Equal(t, "150", updated.PerSessionAmount.String())
		assert.Equal(t, 4, updated.ReleasedSessions)
		assert.Equal(t, "100", updated.CarryAmount.String())

		patient, _ := f.store.Patient("patient-1")
		assert.Equal(t, 4, patient.ReleasedSessions)
	})

	t.Run("more sessions draw on the excess", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.create(t, "1000", "0", 2)
		stored, _ := f.store.Package(pkg.ID)
		stored.ReleasedSessions = 2
		stored.ExcessAmount = decimal.NewFromInt(300)
		f.store.AddPackage(stored)

		sessions := 4
		updated, err := f.uc.UpdatePackage(f.ctx, pkg.ID, &requests.UpdatePackage{TotalSessions: &sessions})
		require.NoError(t, err)
		assert.Equal(t, "250", updated.PerSessionAmount.String())
		assert.Equal(t, 3, updated.ReleasedSessions)
		assert.Equal(t, "50", updated.CarryAmount.String())
		assert.True(t, updated.ExcessAmount.IsZero())

		patient, _ := f.store.Patient("patient-1")
		assert.Equal(t, 3, patient.ReleasedSessions)
		assert.Equal(t, "50", patient.CarryAmount.String())
	})

	t.Run("sessions below released", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.create(t, "1000", "0", 5)
		stored, _ := f.store.Package(pkg.ID)
		stored.ReleasedSessions = 3
		f.store.AddPackage(stored)

		sessions := 2
		_, err := f.uc.UpdatePackage(f.ctx, pkg.ID, &requests.UpdatePackage{TotalSessions: &sessions})
		assert.True(t, exceptions.IsInvalidArgument(err))
	})

	t.Run("terminal package rejects financial edits", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.create(t, "1000", "0", 5)
		_, err := f.uc.ClosePackage(f.ctx, pkg.ID, &requests.ClosePackage{Status: constvars.PackageStatusClosed})
		require.NoError(t, err)

		original := decimal.NewFromInt(2000)
		_, err = f.uc.UpdatePackage(f.ctx, pkg.ID, &requests.UpdatePackage{OriginalAmount: &original})
		assert.True(t, exceptions.IsInvalidState(err))
	})

	t.Run("status change re-projects the patient", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.create(t, "1000", "0", 5)
		status := constvars.PackageStatusCompleted

		updated, err := f.uc.UpdatePackage(f.ctx, pkg.ID, &requests.UpdatePackage{Status: &status, UpdatedBy: "owner-1"})
		require.NoError(t, err)
		assert.Equal(t, constvars.PackageStatusCompleted, updated.Status)
		require.NotNil(t, updated.ClosedAt)
		assert.Equal(t, constvars.PatientStatusDischarged, f.patientStatus(t))
		assert.Contains(t, f.activity.Actions(), constvars.EventPackageCompleted)

		reopen := constvars.PackageStatusActive
		_, err = f.uc.UpdatePackage(f.ctx, pkg.ID, &requests.UpdatePackage{Status: &reopen})
		assert.True(t, exceptions.IsInvalidState(err))
	})

	t.Run("visit type edit on terminal package is allowed", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.create(t, "1000", "0", 5)
		_, err := f.uc.ClosePackage(f.ctx, pkg.ID, &requests.ClosePackage{Status: constvars.PackageStatusClosed})
		require.NoError(t, err)

		visitType := constvars.VisitTypeHome
		updated, err := f.uc.UpdatePackage(f.ctx, pkg.ID, &requests.UpdatePackage{VisitType: &visitType})
		require.NoError(t, err)
		assert.Equal(t, constvars.VisitTypeHome, *updated.VisitType)
	})
}
