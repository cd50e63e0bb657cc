package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/lalegende/sondage/internal/poll"
)

func TestSubmitVote(t *testing.T) {
	r, st, _ := testRouter(t)
	p := addTestPlayer(t, st, "A")

	w := doJSON(t, r, http.MethodPost, "/api/votes", VoteRequest{
		PlayerID: p.ID,
		Name:     "Koffi Armel",
		Phone:    "07 00 00 00 00",
		Txid:     "TX123456789",
		Amount:   200,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp VoteResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Status != poll.StatusPending {
		t.Errorf("status = %q, want pending", resp.Status)
	}
	if resp.Amount != 200 {
		t.Errorf("amount = %d, want 200", resp.Amount)
	}

	snap := st.Snapshot()
	if len(snap.Votes) != 1 || snap.Votes[0].ID != resp.ID {
		t.Errorf("vote not committed to store")
	}
}

func TestSubmitVoteBelowPrice(t *testing.T) {
	r, st, _ := testRouter(t)
	p := addTestPlayer(t, st, "A")

	w := doJSON(t, r, http.MethodPost, "/api/votes", VoteRequest{
		PlayerID: p.ID, Name: "X", Phone: "07", Txid: "TX", Amount: 150,
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(st.Snapshot().Votes) != 0 {
		t.Errorf("rejected vote was committed")
	}
}

func TestSubmitVoteUnknownPlayer(t *testing.T) {
	r, _, _ := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/votes", VoteRequest{
		PlayerID: "missing", Name: "X", Phone: "07", Txid: "TX", Amount: 200,
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSubmitVoteMissingFields(t *testing.T) {
	r, st, _ := testRouter(t)
	p := addTestPlayer(t, st, "A")

	w := doJSON(t, r, http.MethodPost, "/api/votes", VoteRequest{
		PlayerID: p.ID, Name: "X", Amount: 200,
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSubmitVoteInvalidBody(t *testing.T) {
	r, _, _ := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/votes", "not an object", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
