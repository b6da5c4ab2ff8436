package controllers

import (
	"clinic-ledger-service/internal/app/config"
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type PatientController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	PatientUsecase contracts.PatientUsecase
	PackageUsecase contracts.PackageUsecase
	SessionUsecase contracts.SessionUsecase
	PaymentUsecase contracts.PaymentUsecase
}

func NewPatientController(
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	patientUsecase contracts.PatientUsecase,
	packageUsecase contracts.PackageUsecase,
	sessionUsecase contracts.SessionUsecase,
	paymentUsecase contracts.PaymentUsecase,
) *PatientController {
	return &PatientController{
		Log:            logger,
		InternalConfig: internalConfig,
		PatientUsecase: patientUsecase,
		PackageUsecase: packageUsecase,
		SessionUsecase: sessionUsecase,
		PaymentUsecase: paymentUsecase,
	}
}

func (ctrl *PatientController) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var request requests.RegisterPatient
	if !decodeRequest(ctrl.Log, w, r, "PatientController.RegisterPatient", &request) {
		return
	}

	result, err := ctrl.PatientUsecase.RegisterPatient(r.Context(), &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PatientCreatedSuccess, result)
}

func (ctrl *PatientController) ListPatients(w http.ResponseWriter, r *http.Request) {
	filter := requests.PatientFilter{
		Status:     r.URL.Query().Get(constvars.QueryParamsStatus),
		Pagination: utils.BuildPaginationRequest(r),
	}
	if err := utils.ValidateStruct(filter); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamValidation(err, constvars.QueryParamsStatus))
		return
	}

	result, total, err := ctrl.PatientUsecase.ListPatients(r.Context(), filter)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := paginationResponse(ctrl.InternalConfig.App.BaseUrl, r, filter.Pagination, total)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.PatientListSuccess, pagination, result)
}

func (ctrl *PatientController) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := utils.URLParamID(r, constvars.URLParamPatientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.PatientUsecase.GetPatient(r.Context(), patientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientGetSuccess, result)
}

func (ctrl *PatientController) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := utils.URLParamID(r, constvars.URLParamPatientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	var request requests.UpdatePatient
	if !decodeRequest(ctrl.Log, w, r, "PatientController.UpdatePatient", &request) {
		return
	}

	result, err := ctrl.PatientUsecase.UpdatePatient(r.Context(), patientID, &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PatientUpdatedSuccess, result)
}

func (ctrl *PatientController) ListPackages(w http.ResponseWriter, r *http.Request) {
	patientID, err := utils.URLParamID(r, constvars.URLParamPatientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.PackageUsecase.ListPackagesByPatient(r.Context(), patientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PackageListSuccess, result)
}

func (ctrl *PatientController) ListSessions(w http.ResponseWriter, r *http.Request) {
	patientID, err := utils.URLParamID(r, constvars.URLParamPatientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationRequest(r)
	result, total, err := ctrl.SessionUsecase.ListSessionsByPatient(r.Context(), patientID, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.SessionListSuccess,
		paginationResponse(ctrl.InternalConfig.App.BaseUrl, r, pagination, total), result)
}

func (ctrl *PatientController) ListPayments(w http.ResponseWriter, r *http.Request) {
	patientID, err := utils.URLParamID(r, constvars.URLParamPatientID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationRequest(r)
	result, total, err := ctrl.PaymentUsecase.ListPaymentsByPatient(r.Context(), patientID, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.PaymentListSuccess,
		paginationResponse(ctrl.InternalConfig.App.BaseUrl, r, pagination, total), result)
}
