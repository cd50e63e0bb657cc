package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/lalegende/sondage/internal/poll"
	"github.com/lalegende/sondage/internal/store"
)

// exportFilename is the fixed name of the export artifact.
const exportFilename = "legend3_sondage.json"

// Photos are embedded data: URLs, so imported documents can be large.
const maxImportBytes = 32 << 20

// ImportResponse summarizes an accepted import.
type ImportResponse struct {
	Players int `json:"players"`
	Votes   int `json:"votes"`
}

func handleExport(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := st.Snapshot()
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func handleImport(logger *slog.Logger, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read import file")
			return
		}

		// Shape check before anything is replaced; a bad candidate leaves
		// the current document untouched.
		doc, err := poll.ParseDocument(data)
		if err != nil {
			writeMutationError(w, logger, err)
			return
		}

		if err := st.Replace(r.Context(), doc); err != nil {
			writeMutationError(w, logger, err)
			return
		}

		logger.Info("document imported", "players", len(doc.Players), "votes", len(doc.Votes))
		writeJSON(w, http.StatusOK, ImportResponse{
			Players: len(doc.Players),
			Votes:   len(doc.Votes),
		})
	}
}

func handleReset(logger *slog.Logger, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := st.Reset(r.Context()); err != nil {
			writeMutationError(w, logger, err)
			return
		}
		logger.Info("document reset to seeded default")
		w.WriteHeader(http.StatusOK)
	}
}
