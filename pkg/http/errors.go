package http

import (
	"encoding/json"
	"net/http"
)

// Machine-readable error codes returned in ErrorBody.Code.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeRateLimited        = "RATE_LIMITED"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse is the envelope of every non-2xx response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a stable code, a human message, the request's
// correlation id (null when unknown) and per-field details (null unless the
// failure is a field validation).
type ErrorBody struct {
	Code          string        `json:"code"`
	Message       string        `json:"message"`
	CorrelationID *string       `json:"correlationId"`
	Details       []FieldDetail `json:"details"`
}

type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	// Encoding errors are not exposed to the client
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an error envelope for r, attaching its correlation id.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	WriteErrorWithDetails(w, r, statusCode, code, message, nil)
}

// WriteErrorWithDetails writes an error envelope with field-level details.
func WriteErrorWithDetails(w http.ResponseWriter, r *http.Request, statusCode int, code, message string, details []FieldDetail) {
	body := ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}
	if r != nil {
		body.CorrelationID = CorrelationIDPtr(r.Context())
	}
	WriteJSON(w, statusCode, ErrorResponse{Error: body})
}

func WriteValidationError(w http.ResponseWriter, r *http.Request, message string, details []FieldDetail) {
	WriteErrorWithDetails(w, r, http.StatusBadRequest, CodeValidation, message, details)
}

func WriteConflict(w http.ResponseWriter, r *http.Request, code, message string) {
	WriteError(w, r, http.StatusConflict, code, message)
}

func WriteTooManyRequests(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusTooManyRequests, CodeRateLimited, "Too many requests, please retry later")
}

// WriteInternalError never includes error text in the body.
func WriteInternalError(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
}
