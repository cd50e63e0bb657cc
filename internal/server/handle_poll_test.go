package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/lalegende/sondage/internal/poll"
	"github.com/lalegende/sondage/internal/store"
)

func approveVote(t *testing.T, st *store.Store, voteID string) {
	t.Helper()
	_, err := st.Update(context.Background(), func(doc poll.Document) (poll.Document, error) {
		return poll.SetVoteStatus(doc, voteID, poll.StatusApproved)
	})
	if err != nil {
		t.Fatalf("approve vote: %v", err)
	}
}

func TestPollSnapshotHidesAdminCode(t *testing.T) {
	r, _, _ := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/poll", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if strings.Contains(w.Body.String(), "adminCode") || strings.Contains(w.Body.String(), "LEG3") {
		t.Errorf("public snapshot leaks the admin code")
	}

	var resp PollResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Meta.Title == "" || resp.Meta.VotePrice != 200 {
		t.Errorf("meta = %+v", resp.Meta)
	}
}

func TestPlayersIncludeApprovedCounts(t *testing.T) {
	r, st, _ := testRouter(t)
	p := addTestPlayer(t, st, "A")
	v := addTestVote(t, st, p.ID)
	approveVote(t, st, v.ID)
	// Pending votes never count.
	addTestVote(t, st, p.ID)

	w := doJSON(t, r, http.MethodGet, "/api/players", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var players []PlayerSummary
	json.NewDecoder(w.Body).Decode(&players)
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}
	if players[0].ApprovedVotes != 1 {
		t.Errorf("approvedVotes = %d, want 1", players[0].ApprovedVotes)
	}
}

func TestLeaderboardStableOrder(t *testing.T) {
	r, st, _ := testRouter(t)

	a := addTestPlayer(t, st, "A")
	b := addTestPlayer(t, st, "B")
	c := addTestPlayer(t, st, "C")
	for _, id := range []string{a.ID, a.ID, b.ID, b.ID, c.ID} {
		v := addTestVote(t, st, id)
		approveVote(t, st, v.ID)
	}

	w := doJSON(t, r, http.MethodGet, "/api/leaderboard", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var entries []LeaderboardEntry
	json.NewDecoder(w.Body).Decode(&entries)
	want := []string{a.ID, b.ID, c.ID}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, id := range want {
		if entries[i].ID != id {
			t.Errorf("rank %d = %q, want %q", i+1, entries[i].Name, id)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("rank field = %d, want %d", entries[i].Rank, i+1)
		}
	}
}

func TestLeaderboardToleratesOrphanVotes(t *testing.T) {
	r, st, _ := testRouter(t)

	p := addTestPlayer(t, st, "A")
	v := addTestVote(t, st, p.ID)
	approveVote(t, st, v.ID)

	// Delete the player; the approved vote dangles.
	if _, err := st.Update(context.Background(), func(doc poll.Document) (poll.Document, error) {
		return poll.DeletePlayer(doc, p.ID), nil
	}); err != nil {
		t.Fatalf("delete player: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/leaderboard", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var entries []LeaderboardEntry
	json.NewDecoder(w.Body).Decode(&entries)
	if len(entries) != 0 {
		t.Errorf("deleted player still ranked: %+v", entries)
	}
}

func TestVoteTimestampFormat(t *testing.T) {
	_, st, _ := testRouter(t)
	p := addTestPlayer(t, st, "A")
	v := addTestVote(t, st, p.ID)

	if _, err := time.Parse("2006-01-02T15:04:05.000Z", v.At); err != nil {
		t.Errorf("at = %q is not ISO-8601: %v", v.At, err)
	}
}
