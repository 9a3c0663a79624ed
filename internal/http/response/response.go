package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"talenthub/internal/common"
)

type ErrorCollector interface {
	IncErrors()
}

var errorCollector ErrorCollector

func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

type errorBody struct {
	Error *common.Error `json:"error"`
}

func Error(w http.ResponseWriter, err error) {
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		appErr = common.NewError(common.CodeInternal, "internal error", err)
	}
	status := statusFor(appErr.Code)
	if status >= http.StatusInternalServerError && errorCollector != nil {
		errorCollector.IncErrors()
	}
	JSON(w, status, errorBody{Error: appErr})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation, common.CodeInvalidStatus:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeDuplicate:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
