package routers

import (
	"clinic-ledger-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, doctorController *controllers.DoctorController) {
	router.Post("/", doctorController.RegisterDoctor)
	router.Get("/", doctorController.ListDoctors)
	router.Get("/{doctor_id}", doctorController.GetDoctor)
	router.Put("/{doctor_id}", doctorController.UpdateDoctor)
}
