package rpc

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Tomlord1122/portfolio-backend/internal/service"
	"github.com/Tomlord1122/portfolio-backend/internal/validate"
)

// Error codes carried in failed responses.
const (
	CodeParseError         = "PARSE_ERROR"
	CodeBadRequest         = "BAD_REQUEST"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotSupported = "METHOD_NOT_SUPPORTED"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

var statusByCode = map[string]int{
	CodeParseError:         http.StatusBadRequest,
	CodeBadRequest:         http.StatusBadRequest,
	CodeNotFound:           http.StatusNotFound,
	CodeMethodNotSupported: http.StatusMethodNotAllowed,
	CodeInternal:           http.StatusInternalServerError,
}

// Error is a typed procedure failure. The server writes it and the client
// returns it.
type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc %s: %s", e.Code, e.Message)
}

// Status is the HTTP status used to transport e.
func (e *Error) Status() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err is a NOT_FOUND procedure failure.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsBadRequest reports whether err is a validation failure.
func IsBadRequest(err error) bool { return hasCode(err, CodeBadRequest) }

func hasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// toError maps a service error onto the procedure error taxonomy. The second
// result is false for failures whose cause must not leave the process.
func toError(err error) (*Error, bool) {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr, true
	}
	var verr *validate.Error
	if errors.As(err, &verr) {
		return &Error{Code: CodeBadRequest, Message: "Invalid input", Details: verr.Fields}, true
	}
	if errors.Is(err, service.ErrNotFound) {
		return &Error{Code: CodeNotFound, Message: err.Error()}, true
	}
	return &Error{Code: CodeInternal, Message: "Internal server error"}, false
}
