package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/BradenHooton/storefront/internal/models"
	pkghttp "github.com/BradenHooton/storefront/pkg/http"
)

const (
	msgInvalidParameters = "Invalid request parameters"
	msgInvalidBody       = "Invalid request body"
	msgEmailExists       = "A user with this email address already exists"
)

// writeServiceError maps a service outcome onto the error envelope.
// Anything not explicitly classified becomes a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *models.ValidationError
	var dup *models.EmailAlreadyExistsError

	switch {
	case errors.As(err, &verr):
		msg := verr.Message
		if msg == "" {
			msg = msgInvalidParameters
		}
		pkghttp.WriteValidationError(w, r, msg, toDetails(verr.Violations))
	case errors.As(err, &dup):
		pkghttp.WriteConflict(w, r, pkghttp.CodeEmailAlreadyExists, msgEmailExists)
	default:
		if !errors.Is(err, models.ErrInternalServer) {
			logger.ErrorContext(r.Context(), "unhandled error",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
		}
		pkghttp.WriteInternalError(w, r)
	}
}

func toDetails(violations []models.FieldViolation) []pkghttp.FieldDetail {
	if len(violations) == 0 {
		return nil
	}
	details := make([]pkghttp.FieldDetail, 0, len(violations))
	for _, v := range violations {
		details = append(details, pkghttp.FieldDetail{Field: v.Field, Message: v.Message})
	}
	return details
}
