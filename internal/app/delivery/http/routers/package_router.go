package routers

import (
	"clinic-ledger-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPackageRoutes(router chi.Router, packageController *controllers.PackageController) {
	router.Post("/", packageController.CreatePackage)
	router.Get("/{package_id}", packageController.GetPackage)
	router.Put("/{package_id}", packageController.UpdatePackage)
	router.Delete("/{package_id}", packageController.DeletePackage)
	router.Post("/{package_id}/close", packageController.ClosePackage)
}
