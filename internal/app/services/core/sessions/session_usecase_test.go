package sessions

import (
	"clinic-ledger-service/internal/app/models"
	"clinic-ledger-service/internal/app/services/core/ledgertest"
	"clinic-ledger-service/internal/app/services/core/patients"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local)

func setup(t *testing.T) (*sessionUsecase, *ledgertest.MemStore, *ledgertest.ActivityRecorder) {
	t.Helper()
	store := ledgertest.NewMemStore()
	store.AddPatient(models.Patient{ID: "patient-1", Name: "Kavya", Status: constvars.PatientStatusActive})
	store.AddPatient(models.Patient{ID: "patient-2", Name: "Dev"})
	store.AddDoctor(models.Doctor{ID: "doctor-1", Name: "Dr. Rao", IsActive: true})

	activity := &ledgertest.ActivityRecorder{}
	uc := newSessionUsecase(store, store, patients.NewStatusProjector(zap.NewNop()), activity, zap.NewNop())
	uc.now = func() time.Time { return testNow }
	return uc, store, activity
}

func packageWith(id string, released, used, total int) models.Package {
	return models.Package{
		ID:               id,
		PatientID:        "patient-1",
		OriginalAmount:   decimal.NewFromInt(int64(total) * 500),
		TotalAmount:      decimal.NewFromInt(int64(total) * 500),
		TotalSessions:    total,
		PerSessionAmount: decimal.NewFromInt(500),
		ReleasedSessions: released,
		UsedSessions:     used,
		Status:           constvars.PackageStatusActive,
		StartDate:        testNow.AddDate(0, -1, 0),
	}
}

func attend(patientID string) *requests.RecordSession {
	return &requests.RecordSession{
		PatientID:   patientID,
		SessionDate: "2026-10-16",
		CreatedBy:   "user-1",
	}
}

func TestRecordSession_ConsumesActivePackage(t *testing.T) {
	uc, store, activity := setup(t)
	store.AddPackage(packageWith("package-1", 2, 0, 9))
	doctorID := "doctor-1"
	request := attend("patient-1")
	request.DoctorID = &doctorID

	session, err := uc.RecordSession(context.Background(), request)
	require.NoError(t, err)

	require.NotNil(t, session.PackageID)
	assert.Equal(t, "package-1", *session.PackageID)
	assert.Equal(t, "doctor-1", *session.DoctorID)
	assert.Equal(t, 16, session.SessionDate.Day())

	stored, _ := store.Package("package-1")
	assert.Equal(t, 1, stored.UsedSessions)
	assert.Equal(t, constvars.PackageStatusActive, stored.Status)
	assert.Equal(t, 1, store.SessionCount())
	assert.Equal(t, []string{constvars.EventSessionRecorded}, activity.Actions())
}

func TestRecordSession_NoReleasedBudget(t *testing.T) {
	uc, store, activity := setup(t)
	store.AddPackage(packageWith("package-1", 2, 2, 9))

	_, err := uc.RecordSession(context.Background(), attend("patient-1"))
	require.Error(t, err)
	assert.True(t, exceptions.IsInvalidState(err))
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.ErrClientNoReleasedSessions, customErr.ClientMessage)

	stored, _ := store.Package("package-1")
	assert.Equal(t, 2, stored.UsedSessions)
	assert.Equal(t, 0, store.SessionCount())
	assert.Empty(t, activity.Actions())
}

func TestRecordSession_FinalSessionCompletesPackage(t *testing.T) {
	uc, store, activity := setup(t)
	store.AddPackage(packageWith("package-1", 9, 8, 9))

	_, err := uc.RecordSession(context.Background(), attend("patient-1"))
	require.NoError(t, err)

	stored, _ := store.Package("package-1")
	assert.Equal(t, 9, stored.UsedSessions)
	assert.Equal(t, constvars.PackageStatusCompleted, stored.Status)
	require.NotNil(t, stored.ClosedAt)
	require.NotNil(t, stored.EndDate)
	assert.True(t, stored.ClosedAt.Equal(testNow))

	patient, _ := store.Patient("patient-1")
	assert.Equal(t, constvars.PatientStatusDischarged, patient.Status)
	assert.Equal(t, 0, patient.ReleasedSessions)

	assert.Equal(t, []string{constvars.EventSessionRecorded, constvars.EventPackageCompleted}, activity.Actions())

	_, err = uc.RecordSession(context.Background(), attend("patient-1"))
	require.NoError(t, err, "no active package left, the session is stored unlinked")
	again, _ := store.Package("package-1")
	assert.Equal(t, 9, again.UsedSessions)
	assert.Equal(t, constvars.PackageStatusCompleted, again.Status)
}

func TestRecordSession_WithoutPackage(t *testing.T) {
	uc, store, _ := setup(t)

	session, err := uc.RecordSession(context.Background(), attend("patient-2"))
	require.NoError(t, err)
	assert.Nil(t, session.PackageID)
	assert.Equal(t, 1, store.SessionCount())
}

func TestRecordSession_ExplicitPackage(t *testing.T) {
	t.Run("belongs to another patient", func(t *testing.T) {
		uc, store, _ := setup(t)
		store.AddPackage(packageWith("package-1", 2, 0, 9))
		request := attend("patient-2")
		packageID := "package-1"
		request.PackageID = &packageID

		_, err := uc.RecordSession(context.Background(), request)
		assert.True(t, exceptions.IsInvalidArgument(err))
	})

	t.Run("terminal package", func(t *testing.T) {
		uc, store, _ := setup(t)
		closed := packageWith("package-1", 4, 2, 9)
		closed.Status = constvars.PackageStatusClosed
		store.AddPackage(closed)
		request := attend("patient-1")
		packageID := "package-1"
		request.PackageID = &packageID

		_, err := uc.RecordSession(context.Background(), request)
		assert.True(t, exceptions.IsInvalidState(err))
	})

	t.Run("missing package", func(t *testing.T) {
		uc, _, _ := setup(t)
		request := attend("patient-1")
		packageID := "package-9"
		request.PackageID = &packageID

		_, err := uc.RecordSession(context.Background(), request)
		assert.True(t, exceptions.IsNotFound(err))
	})
}

func TestRecordSession_NotFound(t *testing.T) {
	uc, _, _ := setup(t)

	_, err := uc.RecordSession(context.Background(), attend("patient-9"))
	assert.True(t, exceptions.IsNotFound(err))

	request := attend("patient-1")
	doctorID := "doctor-9"
	request.DoctorID = &doctorID
	_, err = uc.RecordSession(context.Background(), request)
	assert.True(t, exceptions.IsNotFound(err))
}

func TestRecordSession_ConcurrentRequestsNeverOverdraw(t *testing.T) {
	uc, store, _ := setup(t)
	store.AddPackage(packageWith("package-1", 3, 0, 9))

	var (
		wg        sync.WaitGroup
		succeeded int32
		rejected  int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordSession(context.Background(), attend("patient-1"))
			if err == nil {
				atomic.AddInt32(&succeeded, 1)
			} else if exceptions.IsInvalidState(err) {
				atomic.AddInt32(&rejected, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(3), succeeded)
	assert.Equal(t, int32(5), rejected)
	stored, _ := store.Package("package-1")
	assert.Equal(t, 3, stored.UsedSessions)
}

func TestListSessionsByPatient(t *testing.T) {
	uc, store, _ := setup(t)
	store.AddSession(models.Session{ID: "s-1", PatientID: "patient-1", SessionDate: testNow.AddDate(0, 0, -2)})
	store.AddSession(models.Session{ID: "s-2", PatientID: "patient-1", SessionDate: testNow})
	store.AddSession(models.Session{ID: "s-3", PatientID: "patient-2", SessionDate: testNow})

	list, total, err := uc.ListSessionsByPatient(context.Background(), "patient-1", requests.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, "s-2", list[0].ID)

	session, err := uc.GetSession(context.Background(), "s-3")
	require.NoError(t, err)
	assert.Equal(t, "patient-2", session.PatientID)

	_, err = uc.GetSession(context.Background(), "s-9")
	assert.True(t, exceptions.IsNotFound(err))
}
