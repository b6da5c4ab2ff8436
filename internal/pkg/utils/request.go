package utils

import (
	"clinic-ledger-service/internal/pkg/constvars"
	"clinic-ledger-service/internal/pkg/dto/requests"
	"clinic-ledger-service/internal/pkg/exceptions"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func BuildPaginationRequest(r *http.Request) requests.Pagination {
	page, err := strconv.Atoi(r.URL.Query().Get(constvars.QueryParamsPage))
	if err != nil || page <= 0 {
		page = constvars.AppDefaultPage
	}

	pageSize, err := strconv.Atoi(r.URL.Query().Get(constvars.QueryParamsPageSize))
	if err != nil || pageSize <= 0 {
		pageSize = constvars.AppDefaultPageSize
	}
	if pageSize > constvars.AppMaxPageSize {
		pageSize = constvars.AppMaxPageSize
	}

	return requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

func ValidateUrlParamID(param string) error {
	if param == "" {
		return errors.New("parameter is missing from url path")
	}

	_, err := uuid.Parse(param)
	if err != nil {
		return err
	}

	return nil
}

// URLParamID reads a uuid path parameter.
func URLParamID(r *http.Request, name string) (string, error) {
	param := chi.URLParam(r, name)
	if err := ValidateUrlParamID(param); err != nil {
		return "", exceptions.ErrURLParamIDValidation(err, name)
	}
	return param, nil
}

// BuildDateRangeRequest reads the from/to query parameters. A missing from
// defaults to the first day of the current month and a missing to defaults
// to today. Both bounds are inclusive calendar days.
func BuildDateRangeRequest(r *http.Request, now time.Time) (requests.DateRange, error) {
	dateRange := requests.DateRange{
		From: StartOfMonth(now),
		To:   StartOfDay(now),
	}

	if raw := r.URL.Query().Get(constvars.QueryParamsFrom); raw != "" {
		from, err := ParseDate(raw)
		if err != nil {
			return dateRange, exceptions.ErrQueryParamValidation(err, constvars.QueryParamsFrom)
		}
		dateRange.From = from
	}

	if raw := r.URL.Query().Get(constvars.QueryParamsTo); raw != "" {
		to, err := ParseDate(raw)
		if err != nil {
			return dateRange, exceptions.ErrQueryParamValidation(err, constvars.QueryParamsTo)
		}
		dateRange.To = to
	}

	if dateRange.From.After(dateRange.To) {
		return dateRange, exceptions.ErrInvalidArgument(nil, constvars.ErrClientInvalidDateRange)
	}

	return dateRange, nil
}
