package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

const seatsExhaustedMessage = "No seats left for this event"

// failure names the user-facing messages for one operation.
type failure struct {
	notFound string // 404 message; empty means a not-found error is unexpected
	failed   string // message for validation and storage failures
}

// writeError maps a service error to a response. Only unexpected errors are logged.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, f failure) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		helpers.WriteJSONError(w, http.StatusBadRequest, f.failed, verr.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, f.failed, err.Error())
	case errors.Is(err, domain.ErrNotFound) && f.notFound != "":
		helpers.WriteJSONError(w, http.StatusNotFound, f.notFound, "")
	case errors.Is(err, domain.ErrSeatsExhausted):
		helpers.WriteJSONError(w, http.StatusBadRequest, seatsExhaustedMessage, "")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, f.failed, "internal server error")
	}
}
