package cli

import (
	"encoding/json"
	"io"

	domainerrors "campuscart/internal/domain/errors"

	"github.com/pkg/errors"
)

// Response unified command output structure
type Response struct {
	Success bool       `json:"success"`
	Message string     `json:"message"` // User-friendly message
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`    // Business error code, e.g., "EMPTY_CART"
	Details string `json:"details"` // Detailed error description
}

// Exit codes by business error code.
var exitCodes = map[string]int{
	domainerrors.ErrValidationFailed.ErrorCode(): 2,
	domainerrors.ErrForbidden.ErrorCode():        3,
	domainerrors.ErrNotFound.ErrorCode():         4,
	domainerrors.ErrEmptyCart.ErrorCode():        5,
	domainerrors.ErrBlockedLogin.ErrorCode():     6,
}

// Success successful response
func Success(data any, message string) Response {
	if message == "" {
		message = "Success"
	}

	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Failure maps err to a response and a process exit code.
func Failure(err error) (Response, int) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		code, ok := exitCodes[appErr.ErrorCode()]
		if !ok {
			code = 1
		}

		return Response{
			Success: false,
			Message: appErr.Message(),
			Error: &ErrorInfo{
				Code:    appErr.ErrorCode(),
				Details: appErr.Details(),
			},
		}, code
	}

	return Response{
		Success: false,
		Message: "Internal error",
		Error: &ErrorInfo{
			Code:    "INTERNAL_ERROR",
			Details: err.Error(),
		},
	}, 1
}

// Write renders resp as indented JSON.
func Write(w io.Writer, resp Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return errors.Wrap(enc.Encode(resp), "write response")
}
