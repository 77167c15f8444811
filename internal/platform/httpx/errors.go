package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// GenericError is echoed to callers instead of internal error text.
const GenericError = "internal server error"

// RespondError maps domain errors to the API envelope. message is the
// operation level text ("Failed to create order"); the underlying cause is
// logged, never returned.
func RespondError(w http.ResponseWriter, logger *slog.Logger, message string, err error) {
	var verr *shared.ValidationError
	switch {
	case errors.As(err, &verr):
		JSON(w, http.StatusUnprocessableEntity, Envelope{
			Success: false,
			Message: "Validation failed",
			Errors:  verr.Fields,
		})
	case errors.Is(err, shared.ErrValidation):
		JSON(w, http.StatusUnprocessableEntity, Envelope{Success: false, Message: "Validation failed"})
	case errors.Is(err, shared.ErrNotFound):
		Failure(w, http.StatusNotFound, message, "resource not found")
	default:
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error(message, slog.Any("error", err))
		Failure(w, http.StatusInternalServerError, message, GenericError)
	}
}
