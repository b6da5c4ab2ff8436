package routers

import (
	"clinic-ledger-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, patientController *controllers.PatientController) {
	router.Post("/", patientController.RegisterPatient)
	router.Get("/", patientController.ListPatients)
	router.Get("/{patient_id}", patientController.GetPatient)
	router.Put("/{patient_id}", patientController.UpdatePatient)
	router.Get("/{patient_id}/packages", patientController.ListPackages)
	router.Get("/{patient_id}/sessions", patientController.ListSessions)
	router.Get("/{patient_id}/payments", patientController.ListPayments)
}
