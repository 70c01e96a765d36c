package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"notebook/internal/domain"
	"notebook/internal/httputil"
)

// handleError converts domain errors to problem responses. Failures that
// are not domain errors are logged through the handler's logger.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		notFound   *domain.NotFoundError
		forbidden  *domain.ForbiddenError
		validation *domain.ValidationError
		reference  *domain.ReferenceError
		conflict   *domain.ConflictError
		unauth     *domain.UnauthorizedError
	)

	switch {
	case errors.As(err, &notFound):
		httputil.WriteProblem(w, httputil.Problem{
			Kind:   httputil.KindNotFound,
			Detail: err.Error(),
			Fields: map[string]interface{}{"resource": notFound.Resource, "id": notFound.ID},
		})
	case errors.As(err, &forbidden):
		// The reason stays in the server log
		httputil.WriteProblem(w, httputil.Problem{
			Kind:   httputil.KindForbidden,
			Detail: "access denied",
			Fields: map[string]interface{}{"resource": forbidden.Resource, "id": forbidden.ID},
		})
	case errors.As(err, &validation):
		httputil.RespondError(w, httputil.KindInvalidInput, validation.Message)
	case errors.As(err, &reference):
		httputil.WriteProblem(w, httputil.Problem{
			Kind:   httputil.KindReferenceInvalid,
			Detail: err.Error(),
			Fields: map[string]interface{}{"field": reference.Field, "id": reference.ID},
		})
	case errors.As(err, &conflict):
		httputil.WriteProblem(w, httputil.Problem{
			Kind:   httputil.KindConflict,
			Detail: err.Error(),
			Fields: map[string]interface{}{"field": conflict.Field},
		})
	case errors.As(err, &unauth):
		httputil.RespondError(w, httputil.KindUnauthorized, unauth.Message)
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", httputil.GetRequestID(r.Context()),
		)
		httputil.RespondError(w, httputil.KindStorage, "internal server error")
	}
}

// requireUser returns the authenticated user id or writes a 401
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := httputil.GetUserID(r)
	if !ok {
		httputil.RespondError(w, httputil.KindUnauthorized, "authentication required")
		return 0, false
	}
	return userID, true
}

// pathID parses a positive id path parameter or writes a 400
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := httputil.PathID(r, name)
	if err != nil {
		httputil.RespondError(w, httputil.KindInvalidInput, err.Error())
		return 0, false
	}
	return id, true
}

// parseBody decodes the JSON body or writes a 400
func parseBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		httputil.RespondError(w, httputil.KindInvalidInput, err.Error())
		return false
	}
	return true
}
