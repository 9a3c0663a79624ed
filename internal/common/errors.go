package common

import "errors"

type Code string

const (
	CodeValidation    Code = "validation"
	CodeDuplicate     Code = "duplicate"
	CodeNotFound      Code = "not_found"
	CodeInvalidStatus Code = "invalid_status"
	CodeForbidden     Code = "forbidden"
	CodeUnauthorized  Code = "unauthorized"
	CodeRateLimited   Code = "rate_limited"
	CodeInternal      Code = "internal"
)

type Error struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
