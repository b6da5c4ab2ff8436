package routers

import (
	"clinic-ledger-service/internal/app/config"
	"clinic-ledger-service/internal/app/delivery/http/controllers"
	"clinic-ledger-service/internal/app/delivery/http/middlewares"
	"clinic-ledger-service/internal/pkg/constvars"
	"fmt"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Controllers struct {
	Patient *controllers.PatientController
	Doctor  *controllers.DoctorController
	Package *controllers.PackageController
	Session *controllers.SessionController
	Payment *controllers.PaymentController
	Report  *controllers.ReportController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	ctrls *Controllers,
) {
	allowedOrigins := []string{"*"}
	if origins := strings.TrimSpace(internalConfig.App.CorsAllowedOrigins); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}
	corsOptions := cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", constvars.HeaderAuthorization, "Content-Type", constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID, constvars.HeaderRetryAfter},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.GlobalRateLimit())
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)
	if limit := internalConfig.App.RequestBodyLimitInMegabyte; limit > 0 {
		router.Use(chiMiddleware.RequestSize(int64(limit) << 20))
	}
	router.Use(middlewares.RequestTimeout)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Use(middlewares.Authenticate)
			r.Use(middlewares.Authorize)

			r.Route("/patients", func(r chi.Router) {
				attachPatientRoutes(r, ctrls.Patient)
			})

			r.Route("/doctors", func(r chi.Router) {
				attachDoctorRoutes(r, ctrls.Doctor)
			})

			r.Route("/packages", func(r chi.Router) {
				attachPackageRoutes(r, ctrls.Package)
			})

			r.Route("/sessions", func(r chi.Router) {
				attachSessionRoutes(r, ctrls.Session)
			})

			r.Route("/payments", func(r chi.Router) {
				attachPaymentRoutes(r, ctrls.Payment)
			})

			r.Route("/reports", func(r chi.Router) {
				attachReportRoutes(r, middlewares, ctrls.Report)
			})
		})
	})
}
