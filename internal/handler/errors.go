package handler

import (
	"errors"
	"net/http"

	"workbench/internal/domain"
	"workbench/internal/httputil"
)

// HandleError maps domain errors to RFC 7807 responses. The extras carry
// request context (app id, principal) so the caller can render an
// actionable message; errors are never swallowed.
func HandleError(w http.ResponseWriter, err error, extras map[string]interface{}) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondErrorWithExtras(w, http.StatusUnauthorized, err.Error(), extras)
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondErrorWithExtras(w, http.StatusForbidden, err.Error(), extras)
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, err.Error(), extras)
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondErrorWithExtras(w, http.StatusNotFound, err.Error(), extras)
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, err.Error(), extras)
	case errors.Is(err, domain.ErrTransactionFailed):
		httputil.RespondErrorWithExtras(w, http.StatusInternalServerError, err.Error(), extras)
	default:
		httputil.RespondErrorWithExtras(w, http.StatusInternalServerError, "internal server error", extras)
	}
}
