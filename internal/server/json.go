package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lalegende/sondage/internal/poll"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeMutationError maps a failed store update to a response: validation
// failures carry their message to the user, everything else (including a
// failed write to the storage slot) is logged and answered generically.
func writeMutationError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var verr *poll.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Msg)
		return
	}
	logger.Error("mutation failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
