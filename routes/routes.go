package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Dosada05/scrabble-director/handlers"
	"github.com/Dosada05/scrabble-director/middleware"
)

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	Logger         *slog.Logger
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	tournamentHandler *handlers.TournamentHandler,
	participantHandler *handlers.ParticipantHandler,
	roundHandler *handlers.RoundHandler,
	teamHandler *handlers.TeamHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/ws", webSocketHandler.ServeWs)

	router.Route("/tournament", func(r chi.Router) {
		// Публичные маршруты: просмотр и представление
		r.Get("/", tournamentHandler.GetTournament)
		r.Get("/rounds/{roundNo}", tournamentHandler.GetRound)
		r.Get("/participants/{participantID}", teamHandler.GetRoster)
		r.Get("/participants/{participantID}/results", tournamentHandler.GetParticipantResults)
		r.Get("/boards", teamHandler.GetBoards)

		// Защищенные маршруты только для директора. Снимок общий для всего
		// процесса, поэтому загрузка и сортировка тоже здесь.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(opts.JWTSecret))
			r.Use(middleware.Authorize(middleware.RoleDirector))

			r.Post("/load", tournamentHandler.Load)
			r.Post("/sort", tournamentHandler.Sort)
			r.Post("/actions", tournamentHandler.DispatchAction)

			r.Post("/participants", participantHandler.Add)
			r.Put("/participants/{participantID}", participantHandler.Edit)
			r.Post("/participants/{participantID}/toggle", participantHandler.ToggleOffed)
			r.Delete("/participants/{participantID}", participantHandler.Delete)

			r.Post("/rounds/{roundNo}/results", roundHandler.Score)
			r.Delete("/rounds/{roundNo}/results/{resultID}", roundHandler.DeleteResult)
			r.Post("/rounds/{roundNo}/{op}", roundHandler.RunPairing)
		})
	})
}
