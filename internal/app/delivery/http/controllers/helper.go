package controllers

import (
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/dto/responses"
	"clinic-ledger-service/internal/pkg/exceptions"
	"clinic-ledger-service/internal/pkg/utils"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// decodeRequest reads the JSON body into dst and validates it. On failure
// the error response is already written and false is returned.
func decodeRequest(log *zap.Logger, w http.ResponseWriter, r *http.Request, handler string, dst interface{}) bool {
	requestID := utils.GetRequestID(r.Context())

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Error(handler+" error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrCannotParseJSON(err))
		return false
	}

	if err := utils.ValidateStruct(dst); err != nil {
		log.Info(handler+" validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrInputValidation(err))
		return false
	}
	return true
}

func paginationResponse(baseURL string, r *http.Request, pagination requests.Pagination, total int) *responses.Pagination {
	return utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, baseURL+r.URL.Path)
}
