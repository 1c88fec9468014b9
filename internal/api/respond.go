package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vishnu-R2005/Doctor-appointment-system/internal/scheduling"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the service's sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 and the detail stays out of the response body.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scheduling.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errBody(err))
	case errors.Is(err, scheduling.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	case errors.Is(err, scheduling.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, scheduling.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, scheduling.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errBody(err))
	case errors.Is(err, scheduling.ErrDuplicateEmail):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "email already registered"})
	case errors.Is(err, scheduling.ErrSlotUnavailable):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "slot unavailable"})
	case errors.Is(err, scheduling.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, errBody(err))
	default:
		log.Printf("[api] internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
	}
}

func errBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
