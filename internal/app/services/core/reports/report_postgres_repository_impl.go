package reports

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/pkg/dto/responses"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/queries"
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type reportPostgresRepository struct {
	DB contracts.DBTX
}

func NewReportPostgresRepository(db contracts.DBTX) contracts.ReportRepository {
	return &reportPostgresRepository{
		DB: db,
	}
}

func (repo *reportPostgresRepository) CountPatientsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.CountPatientsByStatus)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return counts, nil
}

func (repo *reportPostgresRepository) CountDoctors(ctx context.Context) (int, error) {
	return repo.count(ctx, queries.CountDoctors)
}

func (repo *reportPostgresRepository) CountActivePackages(ctx context.Context) (int, error) {
	return repo.count(ctx, queries.CountActivePackages)
}

func (repo *reportPostgresRepository) CountSessionsBetween(ctx context.Context, from, to time.Time) (int, error) {
	return repo.count(ctx, queries.CountSessionsBetween, from, to)
}

func (repo *reportPostgresRepository) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var count int
	if err := repo.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, exceptions.ErrPostgresDBFindData(err)
	}
	return count, nil
}

func (repo *reportPostgresRepository) SumRevenue(ctx context.Context) (decimal.Decimal, error) {
	return repo.sum(ctx, queries.SumRevenue)
}

func (repo *reportPostgresRepository) SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return repo.sum(ctx, queries.SumRevenueBetween, from, to)
}

func (repo *reportPostgresRepository) sum(ctx context.Context, query string, args ...interface{}) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := repo.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, exceptions.ErrPostgresDBFindData(err)
	}
	return total, nil
}

func (repo *reportPostgresRepository) DoctorStats(ctx context.Context, from, to time.Time) ([]responses.DoctorStat, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetDoctorStats, from, to)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	stats := []responses.DoctorStat{}
	for rows.Next() {
		var stat responses.DoctorStat
		if err := rows.Scan(&stat.DoctorID, &stat.DoctorName, &stat.PatientCount, &stat.SessionCount, &stat.Revenue); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return stats, nil
}

func (repo *reportPostgresRepository) RevenueByMode(ctx context.Context, from, to time.Time) ([]responses.PaymentModeRevenue, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetRevenueByMode, from, to)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	modes := []responses.PaymentModeRevenue{}
	for rows.Next() {
		var mode responses.PaymentModeRevenue
		if err := rows.Scan(&mode.PaymentMode, &mode.PaymentCount, &mode.Total); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		modes = append(modes, mode)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return modes, nil
}

func (repo *reportPostgresRepository) RevenueSeries(ctx context.Context, granularity string, from, to time.Time) ([]responses.RevenuePoint, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetRevenueSeries, granularity, from, to)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	points := []responses.RevenuePoint{}
	for rows.Next() {
		var point responses.RevenuePoint
		if err := rows.Scan(&point.Period, &point.PaymentCount, &point.Total); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return points, nil
}

func (repo *reportPostgresRepository) PendingPayments(ctx context.Context) ([]responses.PendingPayment, error) {
	rows, err := repo.DB.QueryContext(ctx, queries.GetPendingPayments)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	pending := []responses.PendingPayment{}
	for rows.Next() {
		var item responses.PendingPayment
		err := rows.Scan(
			&item.PatientID,
			&item.PatientName,
			&item.Phone,
			&item.TotalAmount,
			&item.PaidAmount,
			&item.PendingAmount,
		)
		if err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		pending = append(pending, item)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return pending, nil
}
