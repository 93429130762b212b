/*
Package resp provides helpers for sending standardized HTTP JSON responses.

Every response carries a success flag and a message; successful responses may
attach a payload, failed ones include the business error code.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"github.com/TaiefArnob/InstaVista/internal/pkg/errs"
	"github.com/TaiefArnob/InstaVista/internal/pkg/logx"
)

// JSONResponse is the envelope returned to clients.
type JSONResponse struct {
	// Success reports whether the request was handled without error.
	Success bool `json:"success"`

	// Message is the client-facing status description or error message.
	Message string `json:"message"`

	// Code is the business error code, present only on failures.
	Code int `json:"code,omitempty"`

	// Data is the optional response payload.
	Data any `json:"data,omitempty"`
}

// RespondJSON sets the Content-Type and writes the payload with the given status.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends a 200 response with the given message and payload.
func RespondSuccess(w http.ResponseWriter, r *http.Request, message string, data any) {
	RespondStatus(w, r, http.StatusOK, message, data)
}

// RespondStatus sends a successful response with an explicit HTTP status,
// used by handlers that return 201 on resource creation.
func RespondStatus(w http.ResponseWriter, r *http.Request, httpStatus int, message string, data any) {
	res := JSONResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
	RespondJSON(w, r, httpStatus, res)
}

// RespondError sends a response describing the given application error.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	res := JSONResponse{
		Success: false,
		Message: customErr.Message,
		Code:    customErr.Code,
	}
	RespondJSON(w, r, customErr.Status, res)
}
