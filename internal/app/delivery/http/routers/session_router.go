package routers

import (
	"clinic-ledger-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachSessionRoutes(router chi.Router, sessionController *controllers.SessionController) {
	router.Post("/", sessionController.RecordSession)
	router.Get("/{session_id}", sessionController.GetSession)
}
