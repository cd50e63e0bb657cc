package server

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/lalegende/sondage/internal/poll"
	"github.com/lalegende/sondage/internal/store"
)

// AdminVoteItem is a vote joined with its player's name for the moderation
// table. Orphaned votes (player deleted) keep their row and are flagged.
type AdminVoteItem struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Orphaned   bool   `json:"orphaned,omitempty"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Txid       string `json:"txid"`
	Amount     int    `json:"amount"`
	At         string `json:"at"`
	Status     string `json:"status"`
}

// VoteStatusRequest is the request body for PUT /api/admin/votes/{voteID}/status.
type VoteStatusRequest struct {
	Status string `json:"status"`
}

func handleAdminListVotes(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := st.Snapshot()

		names := make(map[string]string, len(doc.Players))
		for _, p := range doc.Players {
			names[p.ID] = p.Name
		}

		// Newest first.
		items := make([]AdminVoteItem, 0, len(doc.Votes))
		for i := len(doc.Votes) - 1; i >= 0; i-- {
			v := doc.Votes[i]
			name, ok := names[v.PlayerID]
			if !ok {
				name = "unknown player"
			}
			items = append(items, AdminVoteItem{
				ID:         v.ID,
				PlayerID:   v.PlayerID,
				PlayerName: name,
				Orphaned:   !ok,
				Name:       v.Name,
				Phone:      v.Phone,
				Txid:       v.Txid,
				Amount:     v.Amount,
				At:         v.At,
				Status:     v.Status,
			})
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func handleAdminSetVoteStatus(logger *slog.Logger, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		voteID := chi.URLParam(r, "voteID")

		var req VoteStatusRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		snap := st.Snapshot()
		if !slices.ContainsFunc(snap.Votes, func(v poll.Vote) bool { return v.ID == voteID }) {
			writeError(w, http.StatusNotFound, "vote not found")
			return
		}

		doc, err := st.Update(r.Context(), func(doc poll.Document) (poll.Document, error) {
			return poll.SetVoteStatus(doc, voteID, req.Status)
		})
		if err != nil {
			writeMutationError(w, logger, err)
			return
		}

		logger.Info("vote status changed", "vote_id", voteID, "status", req.Status)
		for _, v := range doc.Votes {
			if v.ID == voteID {
				writeJSON(w, http.StatusOK, v)
				return
			}
		}
	}
}
