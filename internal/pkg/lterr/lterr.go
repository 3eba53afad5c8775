package lterr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeNotReady       = "NOT_READY"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeDataIntegrity  = "DATA_INTEGRITY"
	CodeInternalError  = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrNotReady is returned when the dataset has not completed its initial load.
	ErrNotReady = New(fiber.StatusServiceUnavailable, CodeNotReady, "draw history is not loaded yet; retry shortly")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrDataIntegrity is returned when a draw record is too malformed to compute over.
	// Malformed draws are never silently skipped: dropping one would corrupt the
	// interval and frequency statistics without warning.
	ErrDataIntegrity = New(fiber.StatusUnprocessableEntity, CodeDataIntegrity, "draw history integrity violation: a draw record is missing required fields")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]interface{}

type LottoError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *LottoError {
	return &LottoError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e LottoError) Msg(format string, parts ...interface{}) *LottoError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e LottoError) WithExtras(extras Extras) *LottoError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations interface{}) *LottoError {
	// copy ErrInvalidReq as e
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *LottoError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
