package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the body into dst and writes the error response itself.
// Malformed clock times and weekdays inside the body surface as validation
// errors rather than a generic bad request.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidClockTime), errors.Is(err, schedule.ErrInvalidWeekday):
			response.HandleError(w, validator.ValidationErrors{{Field: "work_days", Message: err.Error()}})
		case errors.Is(err, io.EOF):
			response.BadRequest(w, "Request body is required", nil)
		default:
			slog.Debug("Failed to decode request body", "path", r.URL.Path, "error", err)
			response.BadRequest(w, "Invalid request format", nil)
		}
		return false
	}
	return true
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

func optionalQueryParam(r *http.Request, key string) *string {
	if val := r.URL.Query().Get(key); val != "" {
		return &val
	}
	return nil
}

// pathUUID returns the named chi URL param when it is a valid UUID.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if !validator.IsValidUUID(id) {
		response.HandleError(w, validator.ValidationErrors{{Field: name, Message: name + " must be a valid UUID"}})
		return "", false
	}
	return id, true
}
