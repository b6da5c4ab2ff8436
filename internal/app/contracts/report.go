package contracts

import (
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/dto/responses"
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// ReportRepository is read-only. Time bounds are half-open: [from, to).
type ReportRepository interface {
	CountPatientsByStatus(ctx context.Context) (map[string]int, error)
	CountDoctors(ctx context.Context) (int, error)
	CountActivePackages(ctx context.Context) (int, error)
	CountSessionsBetween(ctx context.Context, from, to time.Time) (int, error)
	SumRevenue(ctx context.Context) (decimal.Decimal, error)
	SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	DoctorStats(ctx context.Context, from, to time.Time) ([]responses.DoctorStat, error)
	RevenueByMode(ctx context.Context, from, to time.Time) ([]responses.PaymentModeRevenue, error)
	RevenueSeries(ctx context.Context, granularity string, from, to time.Time) ([]responses.RevenuePoint, error)
	PendingPayments(ctx context.Context) ([]responses.PendingPayment, error)
}

type ReportRenderer interface {
	RenderRevenueWorkbook(w io.Writer, report *responses.RevenueReport) error
}

type ReportUsecase interface {
	Dashboard(ctx context.Context) (*responses.Dashboard, error)
	RevenueSummary(ctx context.Context) (*responses.RevenueSummary, error)
	DoctorStats(ctx context.Context, dateRange requests.DateRange) ([]responses.DoctorStat, error)
	RevenueByMode(ctx context.Context, dateRange requests.DateRange) ([]responses.PaymentModeRevenue, error)
	RevenueSeries(ctx context.Context, request *requests.RevenueSeries) (*responses.RevenueSeries, error)
	PendingPayments(ctx context.Context) ([]responses.PendingPayment, error)
	ExportRevenueReport(ctx context.Context, request *requests.ExportRevenueReport) (*responses.ReportExport, error)
}
