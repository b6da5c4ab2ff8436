package utils

import (
	"clinic-ledger-service/internal/pkg/constvars"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func GenerateID() string {
	return uuid.NewString()
}

// GenerateReportObjectName builds the object key for an exported revenue
// workbook, e.g. reports/revenue/month_20260101_20260131_20261016_101500.xlsx
func GenerateReportObjectName(granularity string, from, to, now time.Time) string {
	return fmt.Sprintf("%s/%s_%s_%s_%s.xlsx",
		constvars.ReportExportObjectPrefix,
		strings.ToLower(granularity),
		from.Format("20060102"),
		to.Format("20060102"),
		now.Format("20060102_150405"),
	)
}
