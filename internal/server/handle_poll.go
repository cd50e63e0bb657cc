package server

import (
	"net/http"

	"github.com/lalegende/sondage/internal/poll"
	"github.com/lalegende/sondage/internal/store"
)

// PublicMeta is the tournament header shown to voters. The admin code never
// leaves the admin surface.
type PublicMeta struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	WaveNumber string `json:"waveNumber"`
	VotePrice  int    `json:"votePrice"`
	CoverNote  string `json:"coverNote"`
}

// PlayerSummary is a player with their approved-vote count.
type PlayerSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Team          string `json:"team,omitempty"`
	Photo         string `json:"photo,omitempty"`
	ApprovedVotes int    `json:"approvedVotes"`
}

// LeaderboardEntry is a ranked player.
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	ID            string `json:"id"`
	Name          string `json:"name"`
	Team          string `json:"team,omitempty"`
	ApprovedVotes int    `json:"approvedVotes"`
}

// PollResponse is the full public snapshot.
type PollResponse struct {
	Meta        PublicMeta         `json:"meta"`
	Players     []PlayerSummary    `json:"players"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

func publicMeta(m poll.Meta) PublicMeta {
	return PublicMeta{
		Title:      m.Title,
		Subtitle:   m.Subtitle,
		WaveNumber: m.WaveNumber,
		VotePrice:  m.VotePrice,
		CoverNote:  m.CoverNote,
	}
}

func playerSummaries(players []poll.Player, counts map[string]int) []PlayerSummary {
	out := make([]PlayerSummary, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerSummary{
			ID:            p.ID,
			Name:          p.Name,
			Team:          p.Team,
			Photo:         p.Photo,
			ApprovedVotes: counts[p.ID],
		})
	}
	return out
}

func leaderboard(doc poll.Document) []LeaderboardEntry {
	counts := poll.ApprovedCounts(doc.Players, doc.Votes)
	ranked := poll.RankedPlayers(doc.Players, doc.Votes)

	out := make([]LeaderboardEntry, 0, len(ranked))
	for i, p := range ranked {
		out = append(out, LeaderboardEntry{
			Rank:          i + 1,
			ID:            p.ID,
			Name:          p.Name,
			Team:          p.Team,
			ApprovedVotes: counts[p.ID],
		})
	}
	return out
}

func handlePoll(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := st.Snapshot()
		counts := poll.ApprovedCounts(doc.Players, doc.Votes)

		writeJSON(w, http.StatusOK, PollResponse{
			Meta:        publicMeta(doc.Meta),
			Players:     playerSummaries(doc.Players, counts),
			Leaderboard: leaderboard(doc),
		})
	}
}

func handleListPlayers(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := st.Snapshot()
		counts := poll.ApprovedCounts(doc.Players, doc.Votes)
		writeJSON(w, http.StatusOK, playerSummaries(doc.Players, counts))
	}
}

func handleLeaderboard(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, leaderboard(st.Snapshot()))
	}
}
