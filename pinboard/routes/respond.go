package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"pinboard/pinboard/controllers"
	"pinboard/pinboard/middlewares"
	"pinboard/pinboard/types"
	"pinboard/pinboard/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requestError is a client mistake detected while reading the request.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string {
	return e.msg
}

func badRequest(msg string) error {
	return &requestError{status: http.StatusBadRequest, msg: msg}
}

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, status, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status and the {success:false} envelope.
// Unclassified errors are logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		logging.ErrorLogger.Error("request failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeJSON(w, status, types.MessageResponse{Success: false, Message: msg})
}

func classify(err error) (int, string) {
	var reqErr *requestError
	var valErr *types.ValidationError
	switch {
	case errors.As(err, &reqErr):
		return reqErr.status, reqErr.msg
	case errors.As(err, &valErr):
		return http.StatusBadRequest, valErr.Error()
	case errors.Is(err, controllers.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, controllers.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, controllers.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, controllers.ErrEmailTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, controllers.ErrImageRequired):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, controllers.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType, err.Error()
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// callerID returns the authenticated user. Routes behind AuthMiddleware
// always have one.
func callerID(r *http.Request) (uuid.UUID, error) {
	id, ok := middlewares.IdentityFrom(r.Context())
	if !ok {
		return uuid.Nil, &requestError{status: http.StatusUnauthorized, msg: "Unauthorized"}
	}
	return id.UserID, nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, badRequest("invalid " + name)
	}
	return id, nil
}

// normalizer is a request body that trims its own fields before validation.
type normalizer interface {
	Normalize()
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return badRequest("invalid JSON body")
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}
	return types.Validate(dst)
}
