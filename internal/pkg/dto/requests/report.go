package requests

type RevenueSeries struct {
	Granularity string `validate:"required,oneof=day month year"`
	Range       DateRange
}

type ExportRevenueReport struct {
	Granularity string `json:"granularity" validate:"required,oneof=day month year"`
	From        string `json:"from" validate:"required,datetime=2006-01-02"`
	To          string `json:"to" validate:"required,datetime=2006-01-02"`
	RequestedBy string `json:"-"`
}
