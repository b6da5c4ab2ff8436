package reports

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/pkg/dto/responses"
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
)

const (
	sheetRevenue = "Revenue"
	sheetModes   = "Payment Modes"
	sheetDoctors = "Doctors"
)

type excelReportRenderer struct{}

func NewExcelReportRenderer() contracts.ReportRenderer {
	return &excelReportRenderer{}
}

// RenderRevenueWorkbook writes one sheet per report section.
func (r *excelReportRenderer) RenderRevenueWorkbook(w io.Writer, report *responses.RevenueReport) error {
	file := excelize.NewFile()

	file.NewSheet(sheetRevenue)
	file.NewSheet(sheetModes)
	file.NewSheet(sheetDoctors)
	file.DeleteSheet("Sheet1")

	writeRevenueSheet(file, report)
	writeModesSheet(file, report.ByMode)
	writeDoctorsSheet(file, report.Doctors)

	file.SetActiveSheet(file.GetSheetIndex(sheetRevenue))
	return file.Write(w)
}

func writeRevenueSheet(file *excelize.File, report *responses.RevenueReport) {
	series := report.Series
	file.SetCellValue(sheetRevenue, "A1", "Generated At")
	file.SetCellValue(sheetRevenue, "B1", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	file.SetCellValue(sheetRevenue, "A2", "Granularity")
	file.SetCellValue(sheetRevenue, "B2", series.Granularity)
	file.SetCellValue(sheetRevenue, "A3", "From")
	file.SetCellValue(sheetRevenue, "B3", series.From.Format("2006-01-02"))
	file.SetCellValue(sheetRevenue, "A4", "To")
	file.SetCellValue(sheetRevenue, "B4", series.To.Format("2006-01-02"))

	headers := map[string]string{
		"A6": "Period",
		"B6": "Payments",
		"C6": "Revenue",
	}
	for axis, value := range headers {
		file.SetCellValue(sheetRevenue, axis, value)
	}

	row := 7
	for _, point := range series.Points {
		file.SetCellValue(sheetRevenue, fmt.Sprintf("A%d", row), periodLabel(series.Granularity, point))
		file.SetCellValue(sheetRevenue, fmt.Sprintf("B%d", row), point.PaymentCount)
		file.SetCellValue(sheetRevenue, fmt.Sprintf("C%d", row), point.Total.InexactFloat64())
		row++
	}
	file.SetCellValue(sheetRevenue, fmt.Sprintf("A%d", row), "Total")
	file.SetCellValue(sheetRevenue, fmt.Sprintf("C%d", row), series.Total.InexactFloat64())
}

func writeModesSheet(file *excelize.File, modes []responses.PaymentModeRevenue) {
	headers := map[string]string{
		"A1": "Payment Mode",
		"B1": "Payments",
		"C1": "Revenue",
	}
	for axis, value := range headers {
		file.SetCellValue(sheetModes, axis, value)
	}

	for i, mode := range modes {
		row := i + 2
		file.SetCellValue(sheetModes, fmt.Sprintf("A%d", row), mode.PaymentMode)
		file.SetCellValue(sheetModes, fmt.Sprintf("B%d", row), mode.PaymentCount)
		file.SetCellValue(sheetModes, fmt.Sprintf("C%d", row), mode.Total.InexactFloat64())
	}
}

func writeDoctorsSheet(file *excelize.File, doctors []responses.DoctorStat) {
	headers := map[string]string{
		"A1": "Doctor",
		"B1": "Patients",
		"C1": "Sessions",
		"D1": "Revenue",
	}
	for axis, value := range headers {
		file.SetCellValue(sheetDoctors, axis, value)
	}

	for i, doctor := range doctors {
		row := i + 2
		file.SetCellValue(sheetDoctors, fmt.Sprintf("A%d", row), doctor.DoctorName)
		file.SetCellValue(sheetDoctors, fmt.Sprintf("B%d", row), doctor.PatientCount)
		file.SetCellValue(sheetDoctors, fmt.Sprintf("C%d", row), doctor.SessionCount)
		file.SetCellValue(sheetDoctors, fmt.Sprintf("D%d", row), doctor.Revenue.InexactFloat64())
	}
}
