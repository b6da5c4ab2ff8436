package controllers

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type PackageController struct {
	Log            *zap.Logger
	PackageUsecase contracts.PackageUsecase
}

func NewPackageController(logger *zap.Logger, packageUsecase contracts.PackageUsecase) *PackageController {
	return &PackageController{
		Log:            logger,
		PackageUsecase: packageUsecase,
	}
}

func (ctrl *PackageController) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var request requests.CreatePackage
	if !decodeRequest(ctrl.Log, w, r, "PackageController.CreatePackage", &request) {
		return
	}

	result, err := ctrl.PackageUsecase.CreatePackage(r.Context(), &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PackageCreatedSuccess, result)
}

func (ctrl *PackageController) GetPackage(w http.ResponseWriter, r *http.Request) {
	packageID, err := utils.URLParamID(r, constvars.URLParamPackageID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.PackageUsecase.GetPackage(r.Context(), packageID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PackageGetSuccess, result)
}

func (ctrl *PackageController) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	packageID, err := utils.URLParamID(r, constvars.URLParamPackageID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	var request requests.UpdatePackage
	if !decodeRequest(ctrl.Log, w, r, "PackageController.UpdatePackage", &request) {
		return
	}
	if identity, ok := utils.GetIdentity(r.Context()); ok {
		request.UpdatedBy = identity.UserID
	}

	result, err := ctrl.PackageUsecase.UpdatePackage(r.Context(), packageID, &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PackageUpdatedSuccess, result)
}

func (ctrl *PackageController) ClosePackage(w http.ResponseWriter, r *http.Request) {
	packageID, err := utils.URLParamID(r, constvars.URLParamPackageID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	var request requests.ClosePackage
	if !decodeRequest(ctrl.Log, w, r, "PackageController.ClosePackage", &request) {
		return
	}
	if identity, ok := utils.GetIdentity(r.Context()); ok {
		request.ClosedBy = identity.UserID
	}

	result, err := ctrl.PackageUsecase.ClosePackage(r.Context(), packageID, &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PackageClosedSuccess, result)
}

func (ctrl *PackageController) DeletePackage(w http.ResponseWriter, r *http.Request) {
	packageID, err := utils.URLParamID(r, constvars.URLParamPackageID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := ctrl.PackageUsecase.DeletePackage(r.Context(), packageID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PackageDeletedSuccess, nil)
}
