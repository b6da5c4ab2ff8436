package controllers

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type ReportController struct {
	Log           *zap.Logger
	ReportUsecase contracts.ReportUsecase
	now           func() time.Time
}

func NewReportController(logger *zap.Logger, reportUsecase contracts.ReportUsecase) *ReportController {
	return &ReportController{
		Log:           logger,
		ReportUsecase: reportUsecase,
		now:           time.Now,
	}
}

func (ctrl *ReportController) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := ctrl.ReportUsecase.Dashboard(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReportGetSuccess, result)
}

func (ctrl *ReportController) RevenueSummary(w http.ResponseWriter, r *http.Request) {
	result, err := ctrl.ReportUsecase.RevenueSummary(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReportGetSuccess, result)
}

func (ctrl *ReportController) DoctorStats(w http.ResponseWriter, r *http.Request) {
	dateRange, err := utils.BuildDateRangeRequest(r, ctrl.now())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.ReportUsecase.DoctorStats(r.Context(), dateRange)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReportGetSuccess, result)
}

func (ctrl *ReportController) RevenueByMode(w http.ResponseWriter, r *http.Request) {
	dateRange, err := utils.BuildDateRangeRequest(r, ctrl.now())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.ReportUsecase.RevenueByMode(r.Context(), dateRange)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReportGetSuccess, result)
}

func (ctrl *ReportController) RevenueSeries(w http.ResponseWriter, r *http.Request) {
	dateRange, err := utils.BuildDateRangeRequest(r, ctrl.now())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := requests.RevenueSeries{
		Granularity: r.URL.Query().Get(constvars.QueryParamsGranularity),
		Range:       dateRange,
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamValidation(err, constvars.QueryParamsGranularity))
		return
	}

	result, err := ctrl.ReportUsecase.RevenueSeries(r.Context(), &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReportGetSuccess, result)
}

func (ctrl *ReportController) PendingPayments(w http.ResponseWriter, r *http.Request) {
	result, err := ctrl.ReportUsecase.PendingPayments(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReportGetSuccess, result)
}

func (ctrl *ReportController) ExportRevenueReport(w http.ResponseWriter, r *http.Request) {
	var request requests.ExportRevenueReport
	if !decodeRequest(ctrl.Log, w, r, "ReportController.ExportRevenueReport", &request) {
		return
	}
	if identity, ok := utils.GetIdentity(r.Context()); ok {
		request.RequestedBy = identity.UserID
	}

	result, err := ctrl.ReportUsecase.ExportRevenueReport(r.Context(), &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ReportExportSuccess, result)
}
