package reports

import (
	"bytes"
	"clinic-ledger-service/internal/app/config"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/dto/responses"
	"clinic-ledger-service/internal/pkg/exceptions"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testNow = time.Date(2026, 10, 16, 15, 4, 5, 0, time.Local)
	errDown = errors.New("connection refused")
)

type fakeReportRepository struct {
	failing map[string]bool

	statusCounts map[string]int
	doctors      int
	packages     int
	sessions     int
	revenue      decimal.Decimal
	between      func(from, to time.Time) decimal.Decimal
	doctorStats  []responses.DoctorStat
	modes        []responses.PaymentModeRevenue
	points       []responses.RevenuePoint
	pending      []responses.PendingPayment

	seriesArgs []interface{}
}

func (f *fakeReportRepository) fail(section string) error {
	if f.failing[section] {
		return errDown
	}
	return nil
}

func (f *fakeReportRepository) CountPatientsByStatus(ctx context.Context) (map[string]int, error) {
	if err := f.fail("status"); err != nil {
		return nil, err
	}
	return f.statusCounts, nil
}

func (f *fakeReportRepository) CountDoctors(ctx context.Context) (int, error) {
	if err := f.fail("doctors"); err != nil {
		return 0, err
	}
	return f.doctors, nil
}

func (f *fakeReportRepository) CountActivePackages(ctx context.Context) (int, error) {
	if err := f.fail("packages"); err != nil {
		return 0, err
	}
	return f.packages, nil
}

func (f *fakeReportRepository) CountSessionsBetween(ctx context.Context, from, to time.Time) (int, error) {
	if err := f.fail("sessions"); err != nil {
		return 0, err
	}
	return f.sessions, nil
}

func (f *fakeReportRepository) SumRevenue(ctx context.Context) (decimal.Decimal, error) {
	if err := f.fail("revenue"); err != nil {
		return decimal.Zero, err
	}
	return f.revenue, nil
}

func (f *fakeReportRepository) SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	if err := f.fail("revenue_between"); err != nil {
		return decimal.Zero, err
	}
	return f.between(from, to), nil
}

func (f *fakeReportRepository) DoctorStats(ctx context.Context, from, to time.Time) ([]responses.DoctorStat, error) {
	if err := f.fail("doctor_stats"); err != nil {
		return nil, err
	}
	return f.doctorStats, nil
}

func (f *fakeReportRepository) RevenueByMode(ctx context.Context, from, to time.Time) ([]responses.PaymentModeRevenue, error) {
	if err := f.fail("modes"); err != nil {
		return nil, err
	}
	return f.modes, nil
}

func (f *fakeReportRepository) RevenueSeries(ctx context.Context, granularity string, from, to time.Time) ([]responses.RevenuePoint, error) {
	f.seriesArgs = []interface{}{granularity, from, to}
	if err := f.fail("series"); err != nil {
		return nil, err
	}
	return f.points, nil
}

func (f *fakeReportRepository) PendingPayments(ctx context.Context) ([]responses.PendingPayment, error) {
	if err := f.fail("pending"); err != nil {
		return nil, err
	}
	return f.pending, nil
}

type fakeStorage struct {
	err     error
	objects map[string][]byte
	types   map[string]string
}

func (s *fakeStorage) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, contentType string) error {
	if s.err != nil {
		return s.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
		s.types = map[string]string{}
	}
	s.objects[bucketName+"/"+objectName] = body
	s.types[bucketName+"/"+objectName] = contentType
	return nil
}

func (s *fakeStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	return "https://storage.local/" + bucketName + "/" + objectName + "?expires=" + expiryTime.String(), nil
}

func newRepository() *fakeReportRepository {
	return &fakeReportRepository{
		failing: map[string]bool{},
		statusCounts: map[string]int{
			constvars.PatientStatusActive:     4,
			constvars.PatientStatusNoPackage:  2,
			constvars.PatientStatusDischarged: 1,
		},
		doctors:  3,
		packages: 4,
		sessions: 6,
		revenue:  decimal.NewFromInt(25000),
		between: func(from, to time.Time) decimal.Decimal {
			if to.Sub(from) <= 24*time.Hour {
				return decimal.NewFromInt(1500)
			}
			return decimal.NewFromInt(9000)
		},
		pending: []responses.PendingPayment{
			{PatientID: "p-1", PendingAmount: decimal.NewFromInt(1200)},
			{PatientID: "p-2", PendingAmount: decimal.NewFromInt(300)},
		},
	}
}

func newTestUsecase(repo *fakeReportRepository, storage *fakeStorage) *reportUsecase {
	internalConfig := &config.InternalConfig{
		Minio: config.AppMinio{BucketName: "clinic-reports", PreSignedUrlObjectExpiryInMinutes: 30},
	}
	uc := newReportUsecase(repo, NewExcelReportRenderer(), storage, internalConfig, zap.NewNop())
	uc.now = func() time.Time { return testNow }
	return uc
}

func TestDashboard(t *testing.T) {
	uc := newTestUsecase(newRepository(), &fakeStorage{})

	dashboard, err := uc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, dashboard.TotalPatients)
	assert.Equal(t, 4, dashboard.ActivePatients)
	assert.Equal(t, 2, dashboard.NoPackagePatients)
	assert.Equal(t, 1, dashboard.DischargedPatients)
	assert.Equal(t, 3, dashboard.TotalDoctors)
	assert.Equal(t, 4, dashboard.ActivePackages)
	assert.Equal(t, 6, dashboard.SessionsToday)
	assert.Equal(t, "25000", dashboard.Revenue.AllTime.String())
	assert.Equal(t, "1500", dashboard.Revenue.Today.String())
	assert.Equal(t, "9000", dashboard.Revenue.ThisMonth.String())
	assert.Equal(t, "1500", dashboard.PendingAmount.String())
}

func TestDashboard_DegradesPerSection(t *testing.T) {
	repo := newRepository()
	repo.failing["status"] = true
	repo.failing["revenue"] = true
	repo.failing["pending"] = true
	uc := newTestUsecase(repo, &fakeStorage{})

	dashboard, err := uc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, dashboard.TotalPatients)
	assert.Equal(t, 0, dashboard.ActivePatients)
	assert.True(t, dashboard.Revenue.AllTime.IsZero())
	assert.True(t, dashboard.PendingAmount.IsZero())

	assert.Equal(t, 3, dashboard.TotalDoctors)
	assert.Equal(t, "1500", dashboard.Revenue.Today.String())
}

func TestListSections_DegradeToEmpty(t *testing.T) {
	repo := newRepository()
	repo.failing["doctor_stats"] = true
	repo.failing["modes"] = true
	repo.failing["pending"] = true
	uc := newTestUsecase(repo, &fakeStorage{})
	dateRange := requests.DateRange{From: testNow.AddDate(0, 0, -7), To: testNow}

	stats, err := uc.DoctorStats(context.Background(), dateRange)
	require.NoError(t, err)
	assert.NotNil(t, stats)
	assert.Empty(t, stats)

	modes, err := uc.RevenueByMode(context.Background(), dateRange)
	require.NoError(t, err)
	assert.Empty(t, modes)

	pending, err := uc.PendingPayments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDateRangeValidation(t *testing.T) {
	uc := newTestUsecase(newRepository(), &fakeStorage{})
	inverted := requests.DateRange{From: testNow, To: testNow.AddDate(0, 0, -1)}

	_, err := uc.DoctorStats(context.Background(), inverted)
	assert.True(t, exceptions.IsInvalidArgument(err))

	_, err = uc.RevenueSeries(context.Background(), &requests.RevenueSeries{Granularity: "week", Range: requests.DateRange{From: testNow, To: testNow}})
	assert.True(t, exceptions.IsInvalidArgument(err))
}

func TestRevenueSeries_FillsEmptyPeriods(t *testing.T) {
	repo := newRepository()
	repo.points = []responses.RevenuePoint{
		{Period: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), PaymentCount: 3, Total: decimal.NewFromInt(1500)},
		{Period: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), PaymentCount: 1, Total: decimal.NewFromInt(700)},
	}
	uc := newTestUsecase(repo, &fakeStorage{})

	series, err := uc.RevenueSeries(context.Background(), &requests.RevenueSeries{
		Granularity: constvars.ReportGranularityMonth,
		Range: requests.DateRange{
			From: time.Date(2026, 8, 15, 0, 0, 0, 0, time.Local),
			To:   time.Date(2026, 10, 16, 0, 0, 0, 0, time.Local),
		},
	})
	require.NoError(t, err)

	require.Len(t, series.Points, 3)
	assert.Equal(t, 3, series.Points[0].PaymentCount)
	assert.Equal(t, 0, series.Points[1].PaymentCount)
	assert.True(t, series.Points[1].Total.IsZero())
	assert.Equal(t, "700", series.Points[2].Total.String())
	assert.Equal(t, "2200", series.Total.String())

	require.Len(t, repo.seriesArgs, 3)
	assert.Equal(t, constvars.ReportGranularityMonth, repo.seriesArgs[0])
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local), repo.seriesArgs[1])
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.Local), repo.seriesArgs[2])
}

func TestRevenueSeries_DegradesToZeroPoints(t *testing.T) {
	repo := newRepository()
	repo.failing["series"] = true
	uc := newTestUsecase(repo, &fakeStorage{})

	series, err := uc.RevenueSeries(context.Background(), &requests.RevenueSeries{
		Granularity: constvars.ReportGranularityDay,
		Range:       requests.DateRange{From: testNow.AddDate(0, 0, -2), To: testNow},
	})
	require.NoError(t, err)
	require.Len(t, series.Points, 3)
	assert.True(t, series.Total.IsZero())
}

func TestExportRevenueReport(t *testing.T) {
	repo := newRepository()
	repo.points = []responses.RevenuePoint{
		{Period: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), PaymentCount: 2, Total: decimal.NewFromInt(1000)},
	}
	repo.modes = []responses.PaymentModeRevenue{{PaymentMode: constvars.PaymentModeCash, PaymentCount: 2, Total: decimal.NewFromInt(1000)}}
	repo.doctorStats = []responses.DoctorStat{{DoctorID: "d-1", DoctorName: "Dr. Iyer", SessionCount: 4, Revenue: decimal.NewFromInt(1000)}}
	storage := &fakeStorage{}
	uc := newTestUsecase(repo, storage)

	export, err := uc.ExportRevenueReport(context.Background(), &requests.ExportRevenueReport{
		Granularity: constvars.ReportGranularityDay,
		From:        "2026-10-01",
		To:          "2026-10-15",
		RequestedBy: "owner-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "reports/revenue/day_20261001_20261015_20261016_150405.xlsx", export.ObjectName)
	assert.Contains(t, export.URL, export.ObjectName)
	assert.True(t, export.ExpiresAt.Equal(testNow.Add(30*time.Minute)))

	body := storage.objects["clinic-reports/"+export.ObjectName]
	require.NotEmpty(t, body)
	assert.True(t, bytes.HasPrefix(body, []byte("PK")), "workbook is a zip container")
	assert.Equal(t, constvars.MIMEApplicationXLSX, storage.types["clinic-reports/"+export.ObjectName])
}

func TestExportRevenueReport_Failures(t *testing.T) {
	t.Run("storage", func(t *testing.T) {
		uc := newTestUsecase(newRepository(), &fakeStorage{err: errDown})
		_, err := uc.ExportRevenueReport(context.Background(), &requests.ExportRevenueReport{
			Granularity: constvars.ReportGranularityDay,
			From:        "2026-10-01",
			To:          "2026-10-02",
		})
		assert.ErrorIs(t, err, errDown)
	})

	t.Run("inverted range", func(t *testing.T) {
		storage := &fakeStorage{}
		uc := newTestUsecase(newRepository(), storage)
		_, err := uc.ExportRevenueReport(context.Background(), &requests.ExportRevenueReport{
			Granularity: constvars.ReportGranularityDay,
			From:        "2026-10-05",
			To:          "2026-10-01",
		})
		assert.True(t, exceptions.IsInvalidArgument(err))
		assert.Empty(t, storage.objects)
	})
}
