package daemon

import (
	"encoding/json"
	"errors"
	"net/http"

	"framethumb/internal/extract"

	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func newID(prefix string) string {
	return prefix + uuid.NewString()
}

// classify maps extraction errors to an HTTP status and a metrics label.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errOutputInUse):
		return http.StatusConflict, "conflict"
	case errors.Is(err, extract.ErrInvalidPath):
		return http.StatusBadRequest, "invalid_path"
	case errors.Is(err, extract.ErrInvalidFrame):
		return http.StatusBadRequest, "invalid_frame"
	case errors.Is(err, extract.ErrInvalidSize):
		return http.StatusBadRequest, "invalid_size"
	case errors.Is(err, extract.ErrOutOfRange):
		return http.StatusBadRequest, "out_of_range"
	case errors.Is(err, extract.ErrInvalidStep):
		return http.StatusBadRequest, "invalid_step"
	case errors.Is(err, extract.ErrSourceUnavailable):
		return http.StatusUnprocessableEntity, "source_unavailable"
	case errors.Is(err, extract.ErrDecode):
		return http.StatusUnprocessableEntity, "decode"
	case errors.Is(err, extract.ErrOutputDir):
		return http.StatusInternalServerError, "io"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
