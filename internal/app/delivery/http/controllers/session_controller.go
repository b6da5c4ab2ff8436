package controllers

import (
	"clinic-ledger-service/internal/app/contracts"
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type SessionController struct {
	Log            *zap.Logger
	SessionUsecase contracts.SessionUsecase
}

func NewSessionController(logger *zap.Logger, sessionUsecase contracts.SessionUsecase) *SessionController {
	return &SessionController{
		Log:            logger,
		SessionUsecase: sessionUsecase,
	}
}

func (ctrl *SessionController) RecordSession(w http.ResponseWriter, r *http.Request) {
	var request requests.RecordSession
	if !decodeRequest(ctrl.Log, w, r, "SessionController.RecordSession", &request) {
		return
	}
	if identity, ok := utils.GetIdentity(r.Context()); ok {
		request.CreatedBy = identity.UserID
	}

	result, err := ctrl.SessionUsecase.RecordSession(r.Context(), &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SessionCreatedSuccess, result)
}

func (ctrl *SessionController) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := utils.URLParamID(r, constvars.URLParamSessionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.SessionUsecase.GetSession(r.Context(), sessionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SessionGetSuccess, result)
}
