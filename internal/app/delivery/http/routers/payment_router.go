package routers

import (
	"clinic-ledger-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, paymentController *controllers.PaymentController) {
	router.Post("/", paymentController.RecordPayment)
	router.Get("/{payment_id}", paymentController.GetPayment)
	router.Put("/{payment_id}", paymentController.UpdatePayment)
}
