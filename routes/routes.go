package routes

import (
	"net/http"
	"time"

	"github.com/Dosada05/tennis-league/handlers"
	"github.com/Dosada05/tennis-league/middleware"
	"github.com/Dosada05/tennis-league/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/tennis-league/docs" // регистрирует swagger-спецификацию
)

func SetupRoutes(
	router chi.Router,
	jwtSecret string,
	allowedOrigins []string,
	authHandler *handlers.AuthHandler,
	matchHandler *handlers.MatchHandler,
	teamHandler *handlers.TeamHandler,
	leagueHandler *handlers.LeagueHandler,
	standingsHandler *handlers.StandingsHandler,
	adminHandler *handlers.AdminHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// WebSocket живет вне /api: без таймаута и без JSON-ответов.
	router.Get("/ws/{room}", webSocketHandler.ServeWs)

	router.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Post("/auth/login", authHandler.Login)

		r.Get("/matches", matchHandler.ListMatches)
		r.Get("/matches/{matchID}", matchHandler.GetMatch)

		r.Get("/schedule", standingsHandler.Schedule)
		r.Get("/schedule/dates", standingsHandler.ScheduleDates)
		r.Get("/standings", standingsHandler.Standings)

		r.Get("/teams", teamHandler.ListTeams)
		r.Get("/teams/{teamID}", teamHandler.GetTeam)

		r.Get("/leagues", leagueHandler.ListLeagues)
		r.Get("/leagues/{leagueID}", leagueHandler.GetLeague)

		// Защищенные маршруты только для администратора
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(string(models.RoleAdmin)))

			r.Get("/matches", matchHandler.ListAdminMatches)
			r.Post("/matches", matchHandler.CreateMatch)
			r.Patch("/matches/{matchID}", matchHandler.UpdateMatch)
			r.Delete("/matches/{matchID}", matchHandler.DeleteMatch)

			r.Post("/teams", teamHandler.CreateTeam)
			r.Post("/teams/rename", teamHandler.RenameTeam)
			r.Patch("/teams/{teamID}", teamHandler.UpdateTeam)
			r.Delete("/teams/{teamID}", teamHandler.DeleteTeam)

			r.Post("/leagues", leagueHandler.CreateLeague)
			r.Patch("/leagues/{leagueID}", leagueHandler.UpdateLeague)
			r.Delete("/leagues/{leagueID}", leagueHandler.DeleteLeague)

			r.Post("/stats/recalculate", adminHandler.RecalculateStats)
			r.Post("/setup", adminHandler.Setup)
			r.Post("/reset-matches", adminHandler.ResetMatches)
		})
	})
}
