package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/lalegende/sondage/internal/poll"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Sondage Meilleur Joueur API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the best-player poll with manual Wave payment verification.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of the storage backend.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/poll
	getPoll, _ := r.NewOperationContext(http.MethodGet, "/api/poll")
	getPoll.SetSummary("Poll snapshot")
	getPoll.SetDescription("Returns the public poll state: settings, players with approved counts, and the leaderboard.")
	getPoll.AddRespStructure(PollResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getPoll)

	// GET /api/players
	getPlayers, _ := r.NewOperationContext(http.MethodGet, "/api/players")
	getPlayers.SetSummary("List players")
	getPlayers.SetDescription("Returns all players with their approved-vote counts.")
	getPlayers.AddRespStructure([]PlayerSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getPlayers)

	// GET /api/leaderboard
	getLeaderboard, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard")
	getLeaderboard.SetSummary("Leaderboard")
	getLeaderboard.SetDescription("Returns players ranked by approved votes; ties keep insertion order.")
	getLeaderboard.AddRespStructure([]LeaderboardEntry{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getLeaderboard)

	// POST /api/votes
	postVote, _ := r.NewOperationContext(http.MethodPost, "/api/votes")
	postVote.SetSummary("Submit vote")
	postVote.SetDescription("Submits a vote with the claimed Wave transaction id. The vote stays pending until an organizer verifies the payment.")
	postVote.AddReqStructure(VoteRequest{})
	postVote.AddRespStructure(VoteResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postVote.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postVote)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Unlocks admin mode with the shared organizer code. Sets admin_session cookie. Not an authentication boundary.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Admin mode status")
	getMe.SetDescription("Reports whether the caller holds a valid admin session. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// POST /api/admin/players
	createPlayer, _ := r.NewOperationContext(http.MethodPost, "/api/admin/players")
	createPlayer.SetSummary("Add player")
	createPlayer.SetDescription("Adds a player to the poll. Requires admin_session cookie.")
	createPlayer.AddReqStructure(PlayerRequest{})
	createPlayer.AddRespStructure(poll.Player{}, openapi.WithHTTPStatus(http.StatusCreated))
	createPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createPlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createPlayer)

	// PUT /api/admin/players/{playerID}
	updatePlayer, _ := r.NewOperationContext(http.MethodPut, "/api/admin/players/{playerID}")
	updatePlayer.SetSummary("Edit player")
	updatePlayer.SetDescription("Merges the given fields into the player. Requires admin_session cookie.")
	updatePlayer.AddReqStructure(poll.PlayerPatch{})
	updatePlayer.AddRespStructure(poll.Player{}, openapi.WithHTTPStatus(http.StatusOK))
	updatePlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updatePlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updatePlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updatePlayer)

	// DELETE /api/admin/players/{playerID}
	deletePlayer, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/players/{playerID}")
	deletePlayer.SetSummary("Delete player")
	deletePlayer.SetDescription("Removes the player. Existing votes for the player stay and are shown as orphaned. Requires admin_session cookie.")
	deletePlayer.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deletePlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deletePlayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deletePlayer)

	// GET /api/admin/votes
	listVotes, _ := r.NewOperationContext(http.MethodGet, "/api/admin/votes")
	listVotes.SetSummary("List votes")
	listVotes.SetDescription("Returns all votes, newest first, joined with player names. Requires admin_session cookie.")
	listVotes.AddRespStructure([]AdminVoteItem{}, openapi.WithHTTPStatus(http.StatusOK))
	listVotes.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listVotes)

	// PUT /api/admin/votes/{voteID}/status
	setStatus, _ := r.NewOperationContext(http.MethodPut, "/api/admin/votes/{voteID}/status")
	setStatus.SetSummary("Set vote status")
	setStatus.SetDescription("Approves, rejects or re-pends a vote after checking the payment in the Wave app. Requires admin_session cookie.")
	setStatus.AddReqStructure(VoteStatusRequest{})
	setStatus.AddRespStructure(poll.Vote{}, openapi.WithHTTPStatus(http.StatusOK))
	setStatus.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	setStatus.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	setStatus.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(setStatus)

	// PUT /api/admin/meta
	updateMeta, _ := r.NewOperationContext(http.MethodPut, "/api/admin/meta")
	updateMeta.SetSummary("Update settings")
	updateMeta.SetDescription("Merges the given fields into the tournament settings. Requires admin_session cookie.")
	updateMeta.AddReqStructure(poll.MetaPatch{})
	updateMeta.AddRespStructure(poll.Meta{}, openapi.WithHTTPStatus(http.StatusOK))
	updateMeta.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updateMeta.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updateMeta)

	// GET /api/admin/export
	getExport, _ := r.NewOperationContext(http.MethodGet, "/api/admin/export")
	getExport.SetSummary("Export document")
	getExport.SetDescription("Downloads the whole poll document as legend3_sondage.json. Requires admin_session cookie.")
	getExport.AddRespStructure(poll.Document{}, openapi.WithHTTPStatus(http.StatusOK))
	getExport.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getExport)

	// POST /api/admin/import
	postImport, _ := r.NewOperationContext(http.MethodPost, "/api/admin/import")
	postImport.SetSummary("Import document")
	postImport.SetDescription("Replaces the whole poll document with an exported one. Rejected wholesale if the shape does not match. Requires admin_session cookie.")
	postImport.AddReqStructure(poll.Document{})
	postImport.AddRespStructure(ImportResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postImport.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postImport.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postImport)

	// POST /api/admin/reset
	postReset, _ := r.NewOperationContext(http.MethodPost, "/api/admin/reset")
	postReset.SetSummary("Reset document")
	postReset.SetDescription("Reinstalls the seeded default document. Requires admin_session cookie.")
	postReset.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	postReset.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postReset)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
