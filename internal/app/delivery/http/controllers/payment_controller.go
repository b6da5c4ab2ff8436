package controllers

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
}

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase) *PaymentController {
	return &PaymentController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
	}
}

func (ctrl *PaymentController) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var request requests.RecordPayment
	if !decodeRequest(ctrl.Log, w, r, "PaymentController.RecordPayment", &request) {
		return
	}
	if identity, ok := utils.GetIdentity(r.Context()); ok {
		request.CreatedBy = identity.UserID
	}

	result, err := ctrl.PaymentUsecase.RecordPayment(r.Context(), &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PaymentCreatedSuccess, result)
}

func (ctrl *PaymentController) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := utils.URLParamID(r, constvars.URLParamPaymentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.PaymentUsecase.GetPayment(r.Context(), paymentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentGetSuccess, result)
}

func (ctrl *PaymentController) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := utils.URLParamID(r, constvars.URLParamPaymentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	var request requests.UpdatePayment
	if !decodeRequest(ctrl.Log, w, r, "PaymentController.UpdatePayment", &request) {
		return
	}

	result, err := ctrl.PaymentUsecase.UpdatePayment(r.Context(), paymentID, &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentUpdatedSuccess, result)
}
