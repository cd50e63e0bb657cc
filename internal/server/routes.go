package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/lalegende/sondage/internal/store"
)

func addRoutes(r chi.Router, logger *slog.Logger, st *store.Store, sessions *Sessions, spaDir string) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Sondage Meilleur Joueur API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, st))

	r.Route("/api", func(r chi.Router) {
		// Public voting surface.
		r.Get("/poll", handlePoll(st))
		r.Get("/players", handleListPlayers(st))
		r.Get("/leaderboard", handleLeaderboard(st))
		r.Post("/votes", handleSubmitVote(logger, st))

		r.Route("/admin", func(r chi.Router) {
			// The gate itself is open; everything else needs a session.
			r.Post("/login", handleAdminLogin(st, sessions))
			r.Post("/logout", handleAdminLogout(sessions))
			r.Get("/me", handleAdminMe(sessions))

			r.Group(func(r chi.Router) {
				r.Use(adminAuthMiddleware(sessions))

				r.Post("/players", handleAdminCreatePlayer(logger, st))
				r.Put("/players/{playerID}", handleAdminUpdatePlayer(logger, st))
				r.Delete("/players/{playerID}", handleAdminDeletePlayer(logger, st))

				r.Get("/votes", handleAdminListVotes(st))
				r.Put("/votes/{voteID}/status", handleAdminSetVoteStatus(logger, st))

				r.Put("/meta", handleAdminUpdateMeta(logger, st))

				r.Get("/export", handleExport(st))
				r.Post("/import", handleImport(logger, st))
				r.Post("/reset", handleReset(logger, st))
			})
		})
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}
