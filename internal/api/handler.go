package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/smsgate/middlewares"
)

// HandlerFunc is an http handler that reports failures as errors.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

func (a *API) wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		he := toHTTPError(err)
		he.RequestID = middlewares.GetRequestID(r.Context())

		if he.Code >= http.StatusInternalServerError {
			a.logger.ErrorContext(r.Context(), "request failed",
				slog.String("path", r.URL.Path),
				slog.Int("status", he.Code),
				slog.Any("error", err),
			)
		}

		writeJSON(w, he.Code, he)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
