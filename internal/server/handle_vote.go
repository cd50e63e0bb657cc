package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lalegende/sondage/internal/poll"
	"github.com/lalegende/sondage/internal/store"
)

// VoteRequest is the request body for POST /api/votes. The txid is the
// voter's claimed Wave transaction reference; it is only ever checked by a
// human organizer in the Wave app.
type VoteRequest struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Txid     string `json:"txid"`
	Amount   int    `json:"amount"`
}

// VoteResponse is the created vote, always pending.
type VoteResponse struct {
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
	Amount   int    `json:"amount"`
	At       string `json:"at"`
	Status   string `json:"status"`
}

func handleSubmitVote(logger *slog.Logger, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VoteRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var created poll.Vote
		_, err := st.Update(r.Context(), func(doc poll.Document) (poll.Document, error) {
			doc, v, err := poll.SubmitVote(doc, poll.VoteInput{
				PlayerID: req.PlayerID,
				Name:     req.Name,
				Phone:    req.Phone,
				Txid:     req.Txid,
				Amount:   req.Amount,
			}, time.Now())
			created = v
			return doc, err
		})
		if err != nil {
			writeMutationError(w, logger, err)
			return
		}

		logger.Info("vote submitted", "vote_id", created.ID, "player_id", created.PlayerID)
		writeJSON(w, http.StatusCreated, VoteResponse{
			ID:       created.ID,
			PlayerID: created.PlayerID,
			Amount:   created.Amount,
			At:       created.At,
			Status:   created.Status,
		})
	}
}
