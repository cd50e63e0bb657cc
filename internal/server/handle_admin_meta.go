package server

import (
	"log/slog"
	"net/http"

	"github.com/lalegende/sondage/internal/poll"
	"github.com/lalegende/sondage/internal/store"
)

func handleAdminUpdateMeta(logger *slog.Logger, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch poll.MetaPatch
		if err := readJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		doc, err := st.Update(r.Context(), func(doc poll.Document) (poll.Document, error) {
			return poll.UpdateMeta(doc, patch)
		})
		if err != nil {
			writeMutationError(w, logger, err)
			return
		}

		// The admin surface sees the full settings, admin code included.
		writeJSON(w, http.StatusOK, doc.Meta)
	}
}
