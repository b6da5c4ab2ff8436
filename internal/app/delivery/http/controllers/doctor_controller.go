package controllers

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/utils"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

type DoctorController struct {
	Log           *zap.Logger
	DoctorUsecase contracts.DoctorUsecase
}

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase) *DoctorController {
	return &DoctorController{
		Log:           logger,
		DoctorUsecase: doctorUsecase,
	}
}

func (ctrl *DoctorController) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	var request requests.RegisterDoctor
	if !decodeRequest(ctrl.Log, w, r, "DoctorController.RegisterDoctor", &request) {
		return
	}

	result, err := ctrl.DoctorUsecase.RegisterDoctor(r.Context(), &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.DoctorCreatedSuccess, result)
}

func (ctrl *DoctorController) ListDoctors(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if raw := r.URL.Query().Get(constvars.QueryParamsActiveOnly); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamValidation(err, constvars.QueryParamsActiveOnly))
			return
		}
		activeOnly = parsed
	}

	result, err := ctrl.DoctorUsecase.ListDoctors(r.Context(), activeOnly)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorListSuccess, result)
}

func (ctrl *DoctorController) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := utils.URLParamID(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.DoctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorGetSuccess, result)
}

func (ctrl *DoctorController) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := utils.URLParamID(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	var request requests.UpdateDoctor
	if !decodeRequest(ctrl.Log, w, r, "DoctorController.UpdateDoctor", &request) {
		return
	}

	result, err := ctrl.DoctorUsecase.UpdateDoctor(r.Context(), doctorID, &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DoctorUpdatedSuccess, result)
}
