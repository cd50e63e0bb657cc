package server

import (
	"net/http"

	"github.com/lalegende/sondage/internal/poll"
	"github.com/lalegende/sondage/internal/store"
)

// AdminLoginRequest is the request body for POST /api/admin/login.
type AdminLoginRequest struct {
	Code string `json:"code"`
}

// AdminMeResponse is the response for GET /api/admin/me.
type AdminMeResponse struct {
	Admin bool `json:"admin"`
}

func handleAdminLogin(st *store.Store, sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminLoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		// Always the same message, whether the code is wrong or none is
		// configured.
		if !poll.Authenticate(req.Code, st.Snapshot().Meta.AdminCode) {
			writeError(w, http.StatusUnauthorized, "code incorrect")
			return
		}

		// Session cookie without MaxAge: admin mode lasts for the browser
		// session and is never persisted.
		http.SetCookie(w, &http.Cookie{
			Name:     adminCookieName,
			Value:    sessions.Create(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, AdminMeResponse{Admin: true})
	}
}

func handleAdminLogout(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, ok := adminToken(r); ok {
			sessions.Delete(token)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     adminCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		w.WriteHeader(http.StatusOK)
	}
}

func handleAdminMe(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := adminToken(r)
		if !ok || !sessions.Valid(token) {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		writeJSON(w, http.StatusOK, AdminMeResponse{Admin: true})
	}
}
