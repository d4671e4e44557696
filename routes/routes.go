package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cybertour/tournament-api/handlers"
	"github.com/cybertour/tournament-api/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
	participationHandler *handlers.ParticipationHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/register", authHandler.Register)
	router.Post("/token", authHandler.Token)

	router.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Get("/me", userHandler.Me)
			r.Post("/me/avatar", userHandler.UploadAvatar)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{id}", tournamentHandler.Get)
		r.Get("/{id}/matches", tournamentHandler.ListMatches)
		r.Get("/{id}/participants", tournamentHandler.ListParticipants)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Post("/", tournamentHandler.Create)
			r.Put("/{id}", tournamentHandler.Update)
			r.Delete("/{id}", tournamentHandler.Delete)
			r.Post("/{id}/banner", tournamentHandler.UploadBanner)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.List)
		r.Get("/{id}/players", teamHandler.ListPlayers)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Post("/", teamHandler.Create)
			r.Post("/{id}/players", teamHandler.AddPlayer)
			r.Post("/{id}/logo", teamHandler.UploadLogo)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Post("/", matchHandler.Create)
		r.Put("/{id}/score", matchHandler.RecordScore)
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Post("/participations", participationHandler.Register)
	})
}
