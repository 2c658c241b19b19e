// Package httputil holds the JSON response helpers shared by every handler.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "maintain/pkg/domain-errors"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Message string `json:"error_message"`
	Code    any    `json:"error_code,omitempty"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteRaw writes an already encoded JSON body.
func WriteRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// WriteError translates err into the error envelope. Errors without a domain
// classification, and internal errors, are reported without their detail.
func WriteError(w http.ResponseWriter, err error) {
	de, ok := dErrors.As(err)
	if !ok || de.Code == dErrors.CodeInternal {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	status := dErrors.ToHTTPStatus(de.Code)
	resp := ErrorResponse{Message: de.Message, Code: status}
	if de.ExternalCode != "" {
		resp.Code = de.ExternalCode
	}
	WriteJSON(w, status, resp)
}

