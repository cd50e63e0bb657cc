package server

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/lalegende/sondage/internal/poll"
	"github.com/lalegende/sondage/internal/store"
)

// PlayerRequest is the request body for creating a player. Photo, when set,
// must be a self-contained data: URL.
type PlayerRequest struct {
	Name  string `json:"name"`
	Team  string `json:"team"`
	Photo string `json:"photo"`
}

func playerExists(doc poll.Document, id string) bool {
	return slices.ContainsFunc(doc.Players, func(p poll.Player) bool { return p.ID == id })
}

func findPlayer(doc poll.Document, id string) (poll.Player, bool) {
	for _, p := range doc.Players {
		if p.ID == id {
			return p, true
		}
	}
	return poll.Player{}, false
}

func handleAdminCreatePlayer(logger *slog.Logger, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PlayerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var created poll.Player
		_, err := st.Update(r.Context(), func(doc poll.Document) (poll.Document, error) {
			doc, p, err := poll.AddPlayer(doc, poll.PlayerInput{
				Name:  req.Name,
				Team:  req.Team,
				Photo: req.Photo,
			})
			created = p
			return doc, err
		})
		if err != nil {
			writeMutationError(w, logger, err)
			return
		}

		logger.Info("player created", "player_id", created.ID, "name", created.Name)
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleAdminUpdatePlayer(logger *slog.Logger, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")

		var patch poll.PlayerPatch
		if err := readJSON(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if !playerExists(st.Snapshot(), playerID) {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}

		doc, err := st.Update(r.Context(), func(doc poll.Document) (poll.Document, error) {
			return poll.EditPlayer(doc, playerID, patch)
		})
		if err != nil {
			writeMutationError(w, logger, err)
			return
		}

		p, _ := findPlayer(doc, playerID)
		writeJSON(w, http.StatusOK, p)
	}
}

func handleAdminDeletePlayer(logger *slog.Logger, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := chi.URLParam(r, "playerID")

		if !playerExists(st.Snapshot(), playerID) {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}

		// Hard delete. Votes for this player stay and become orphaned.
		_, err := st.Update(r.Context(), func(doc poll.Document) (poll.Document, error) {
			return poll.DeletePlayer(doc, playerID), nil
		})
		if err != nil {
			writeMutationError(w, logger, err)
			return
		}

		logger.Info("player deleted", "player_id", playerID)
		w.WriteHeader(http.StatusNoContent)
	}
}
