package reports

import (
	"bytes"
	"clinic-ledger-service/internal/app/config"
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/dto/responses"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/utils"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type reportUsecase struct {
	ReportRepository contracts.ReportRepository
	Renderer         contracts.ReportRenderer
	Storage          contracts.ObjectStorage
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
	now              func() time.Time
}

var (
	reportUsecaseInstance contracts.ReportUsecase
	onceReportUsecase     sync.Once
)

func NewReportUsecase(
	reportRepository contracts.ReportRepository,
	renderer contracts.ReportRenderer,
	storage contracts.ObjectStorage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ReportUsecase {
	onceReportUsecase.Do(func() {
		reportUsecaseInstance = newReportUsecase(reportRepository, renderer, storage, internalConfig, logger)
	})
	return reportUsecaseInstance
}

func newReportUsecase(
	reportRepository contracts.ReportRepository,
	renderer contracts.ReportRenderer,
	storage contracts.ObjectStorage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *reportUsecase {
	return &reportUsecase{
		ReportRepository: reportRepository,
		Renderer:         renderer,
		Storage:          storage,
		InternalConfig:   internalConfig,
		Log:              logger,
		now:              time.Now,
	}
}

// degrade logs a failed report section. The caller keeps the zero value
// for that section.
func (uc *reportUsecase) degrade(ctx context.Context, section string, err error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Warn("reportUsecase section degraded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReportSectionKey, section),
		zap.Error(err),
	)
}

func (uc *reportUsecase) Dashboard(ctx context.Context) (*responses.Dashboard, error) {
	now := uc.now()
	dashboard := &responses.Dashboard{PendingAmount: decimal.Zero}

	counts, err := uc.ReportRepository.CountPatientsByStatus(ctx)
	if err != nil {
		uc.degrade(ctx, "patients_by_status", err)
	}
	dashboard.ActivePatients = counts[constvars.PatientStatusActive]
	dashboard.NoPackagePatients = counts[constvars.PatientStatusNoPackage]
	dashboard.DischargedPatients = counts[constvars.PatientStatusDischarged]
	for _, count := range counts {
		dashboard.TotalPatients += count
	}

	if dashboard.TotalDoctors, err = uc.ReportRepository.CountDoctors(ctx); err != nil {
		uc.degrade(ctx, "doctors", err)
	}
	if dashboard.ActivePackages, err = uc.ReportRepository.CountActivePackages(ctx); err != nil {
		uc.degrade(ctx, "active_packages", err)
	}
	dashboard.SessionsToday, err = uc.ReportRepository.CountSessionsBetween(ctx, utils.StartOfDay(now), utils.EndOfDayExclusive(now))
	if err != nil {
		uc.degrade(ctx, "sessions_today", err)
	}

	dashboard.Revenue = uc.revenueSummary(ctx, now)

	pending, err := uc.ReportRepository.PendingPayments(ctx)
	if err != nil {
		uc.degrade(ctx, "pending_amount", err)
	}
	for _, item := range pending {
		dashboard.PendingAmount = dashboard.PendingAmount.Add(item.PendingAmount)
	}

	return dashboard, nil
}

func (uc *reportUsecase) RevenueSummary(ctx context.Context) (*responses.RevenueSummary, error) {
	summary := uc.revenueSummary(ctx, uc.now())
	return &summary, nil
}

func (uc *reportUsecase) revenueSummary(ctx context.Context, now time.Time) responses.RevenueSummary {
	summary := responses.RevenueSummary{
		AllTime:   decimal.Zero,
		Today:     decimal.Zero,
		ThisMonth: decimal.Zero,
	}

	var err error
	if summary.AllTime, err = uc.ReportRepository.SumRevenue(ctx); err != nil {
		uc.degrade(ctx, "revenue_all_time", err)
		summary.AllTime = decimal.Zero
	}
	if summary.Today, err = uc.ReportRepository.SumRevenueBetween(ctx, utils.StartOfDay(now), utils.EndOfDayExclusive(now)); err != nil {
		uc.degrade(ctx, "revenue_today", err)
		summary.Today = decimal.Zero
	}
	monthStart := utils.StartOfMonth(now)
	if summary.ThisMonth, err = uc.ReportRepository.SumRevenueBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
		uc.degrade(ctx, "revenue_this_month", err)
		summary.ThisMonth = decimal.Zero
	}
	return summary
}

// DoctorStats covers whole days from dateRange.From through dateRange.To.
func (uc *reportUsecase) DoctorStats(ctx context.Context, dateRange requests.DateRange) ([]responses.DoctorStat, error) {
	if err := validateRange(dateRange); err != nil {
		return nil, err
	}
	stats, err := uc.ReportRepository.DoctorStats(ctx, utils.StartOfDay(dateRange.From), utils.EndOfDayExclusive(dateRange.To))
	if err != nil {
		uc.degrade(ctx, "doctor_stats", err)
		return []responses.DoctorStat{}, nil
	}
	return stats, nil
}

func (uc *reportUsecase) RevenueByMode(ctx context.Context, dateRange requests.DateRange) ([]responses.PaymentModeRevenue, error) {
	if err := validateRange(dateRange); err != nil {
		return nil, err
	}
	modes, err := uc.ReportRepository.RevenueByMode(ctx, utils.StartOfDay(dateRange.From), utils.EndOfDayExclusive(dateRange.To))
	if err != nil {
		uc.degrade(ctx, "revenue_by_mode", err)
		return []responses.PaymentModeRevenue{}, nil
	}
	return modes, nil
}

// RevenueSeries returns one point per period in the range, including
// periods without payments.
func (uc *reportUsecase) RevenueSeries(ctx context.Context, request *requests.RevenueSeries) (*responses.RevenueSeries, error) {
	if !isGranularity(request.Granularity) {
		return nil, exceptions.ErrInvalidArgument(
			fmt.Errorf("granularity=%q", request.Granularity),
			constvars.ErrClientInvalidGranularity,
		)
	}
	if err := validateRange(request.Range); err != nil {
		return nil, err
	}

	from := truncate(request.Granularity, request.Range.From)
	to := utils.EndOfDayExclusive(request.Range.To)

	points, err := uc.ReportRepository.RevenueSeries(ctx, request.Granularity, from, to)
	if err != nil {
		uc.degrade(ctx, "revenue_series", err)
		points = nil
	}

	series := &responses.RevenueSeries{
		Granularity: request.Granularity,
		From:        utils.StartOfDay(request.Range.From),
		To:          utils.StartOfDay(request.Range.To),
		Points:      fillSeries(request.Granularity, from, to, points),
		Total:       decimal.Zero,
	}
	for _, point := range series.Points {
		series.Total = series.Total.Add(point.Total)
	}
	return series, nil
}

func (uc *reportUsecase) PendingPayments(ctx context.Context) ([]responses.PendingPayment, error) {
	pending, err := uc.ReportRepository.PendingPayments(ctx)
	if err != nil {
		uc.degrade(ctx, "pending_payments", err)
		return []responses.PendingPayment{}, nil
	}
	return pending, nil
}

// ExportRevenueReport renders the revenue series, payment-mode breakdown
// and doctor stats for the range into a workbook, stores it and returns a
// presigned download URL.
func (uc *reportUsecase) ExportRevenueReport(ctx context.Context, request *requests.ExportRevenueReport) (*responses.ReportExport, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reportUsecase.ExportRevenueReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, request.RequestedBy),
	)

	from, err := utils.ParseDate(request.From)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}
	to, err := utils.ParseDate(request.To)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}
	dateRange := requests.DateRange{From: from, To: to}

	series, err := uc.RevenueSeries(ctx, &requests.RevenueSeries{Granularity: request.Granularity, Range: dateRange})
	if err != nil {
		return nil, err
	}
	byMode, err := uc.RevenueByMode(ctx, dateRange)
	if err != nil {
		return nil, err
	}
	doctors, err := uc.DoctorStats(ctx, dateRange)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	report := &responses.RevenueReport{
		GeneratedAt: now,
		Series:      *series,
		ByMode:      byMode,
		Doctors:     doctors,
	}

	var buffer bytes.Buffer
	if err := uc.Renderer.RenderRevenueWorkbook(&buffer, report); err != nil {
		uc.Log.Error("reportUsecase.ExportRevenueReport error rendering workbook",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrReportRender(err)
	}

	bucketName := uc.InternalConfig.Minio.BucketName
	objectName := utils.GenerateReportObjectName(request.Granularity, from, to, now)
	size := int64(buffer.Len())
	if err := uc.Storage.PutObject(ctx, bucketName, objectName, &buffer, size, constvars.MIMEApplicationXLSX); err != nil {
		uc.Log.Error("reportUsecase.ExportRevenueReport error storing workbook",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUrlObjectExpiryInMinutes) * time.Minute
	url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, bucketName, objectName, expiry)
	if err != nil {
		uc.Log.Error("reportUsecase.ExportRevenueReport error presigning workbook",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("reportUsecase.ExportRevenueReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
		zap.Int64(constvars.LoggingResponseLengthKey, size),
	)
	return &responses.ReportExport{
		ObjectName: objectName,
		URL:        url,
		ExpiresAt:  now.Add(expiry),
	}, nil
}

func validateRange(dateRange requests.DateRange) error {
	if dateRange.From.After(dateRange.To) {
		return exceptions.ErrInvalidArgument(
			fmt.Errorf("from %s after to %s", dateRange.From.Format(constvars.AppDateFormat), dateRange.To.Format(constvars.AppDateFormat)),
			constvars.ErrClientInvalidDateRange,
		)
	}
	return nil
}

func isGranularity(granularity string) bool {
	switch granularity {
	case constvars.ReportGranularityDay, constvars.ReportGranularityMonth, constvars.ReportGranularityYear:
		return true
	}
	return false
}

func truncate(granularity string, t time.Time) time.Time {
	switch granularity {
	case constvars.ReportGranularityYear:
		return utils.StartOfYear(t)
	case constvars.ReportGranularityMonth:
		return utils.StartOfMonth(t)
	default:
		return utils.StartOfDay(t)
	}
}

func step(granularity string, t time.Time) time.Time {
	switch granularity {
	case constvars.ReportGranularityYear:
		return t.AddDate(1, 0, 0)
	case constvars.ReportGranularityMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func periodLabel(granularity string, point responses.RevenuePoint) string {
	switch granularity {
	case constvars.ReportGranularityYear:
		return point.Period.Format("2006")
	case constvars.ReportGranularityMonth:
		return point.Period.Format("2006-01")
	default:
		return point.Period.Format(constvars.AppDateFormat)
	}
}

// fillSeries lays the database points onto every period in [from, to).
// Periods are matched on their calendar label so the database session
// timezone does not matter.
func fillSeries(granularity string, from, to time.Time, points []responses.RevenuePoint) []responses.RevenuePoint {
	byLabel := make(map[string]responses.RevenuePoint, len(points))
	for _, point := range points {
		byLabel[periodLabel(granularity, point)] = point
	}

	filled := []responses.RevenuePoint{}
	for period := from; period.Before(to); period = step(granularity, period) {
		point := responses.RevenuePoint{Period: period, Total: decimal.Zero}
		if found, ok := byLabel[periodLabel(granularity, point)]; ok {
			point.PaymentCount = found.PaymentCount
			point.Total = found.Total
		}
		filled = append(filled, point)
	}
	return filled
}
