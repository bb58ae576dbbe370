// Package httputil holds the JSON response helpers shared by the API handlers.
// The dashboard client decodes the same error envelope, so the wire shape here
// is part of the API contract.
package httputil

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// ErrorResponse is the error envelope every endpoint returns.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// WriteErrorResponse sends the error envelope, filling details from err when
// one is given.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, details error) {
	resp := ErrorResponse{
		Code:    statusCode,
		Message: message,
	}
	if details != nil {
		resp.Details = details.Error()
	}
	writeJSON(w, statusCode, resp)
}

// WriteJSONResponse sends body as JSON. A nil body sends the status alone.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	if body == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		return
	}
	writeJSON(w, statusCode, body)
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	sonic.ConfigDefault.NewEncoder(w).Encode(body)
}
