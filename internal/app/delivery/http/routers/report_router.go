package routers

import (
	"clinic-ledger-service/internal/app/delivery/http/controllers"
	"clinic-ledger-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachReportRoutes(router chi.Router, middlewares *middlewares.Middlewares, reportController *controllers.ReportController) {
	router.Get("/dashboard", reportController.Dashboard)
	router.Get("/revenue", reportController.RevenueSummary)
	router.Get("/doctors", reportController.DoctorStats)
	router.Get("/payment-modes", reportController.RevenueByMode)
	router.Get("/revenue-series", reportController.RevenueSeries)
	router.Get("/pending-payments", reportController.PendingPayments)
	router.With(middlewares.ExportRateLimit).Post("/revenue/export", reportController.ExportRevenueReport)
}
