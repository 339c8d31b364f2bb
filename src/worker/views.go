package worker

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"fittrack/src/clients/syncremote"
	"fittrack/src/config"
	"fittrack/src/repositories"
	"fittrack/src/services"
	"fittrack/src/utils/middlewares"
	"fittrack/src/utils/requests"
	"fittrack/src/worker/handlers"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	Config  *config.Config
	Logger  *logrus.Logger
}

func NewServer(cfg *config.Config, db *sql.DB, syncService services.SyncServiceI, logger *logrus.Logger) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handlers.NewHandler(db, syncService, logger),
		Config:  cfg,
		Logger:  logger,
	}
	server.InitRoutes()
	return server
}

// NewSyncService builds the outbox sync service over the local store. The
// remote client is only wired when sync.remoteUrl is set.
func NewSyncService(cfg *config.Config, db *sql.DB, logger *logrus.Logger) *services.SyncService {
	var remote syncremote.SyncRemoteClientI
	if cfg.Sync.RemoteURL != "" {
		api := requests.NewExternalAPIService(&http.Client{Timeout: cfg.Service.RequestTimeout})
		remote = syncremote.NewClient(cfg.Sync, api)
	}

	return services.NewSyncService(
		repositories.NewSyncLogRepository(db),
		remote,
		services.SyncOptions{
			ClientID:  cfg.Sync.ClientID,
			Interval:  cfg.Sync.Interval,
			BatchSize: cfg.Sync.BatchSize,
			Retention: cfg.Sync.Retention,
		},
		logger,
	)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middlewares.RequestLogger(s.Logger))
	s.Router.Use(middleware.Recoverer)

	s.Router.Get("/alive", s.Handler.Alive)

	s.Router.Route("/api/sync", func(r chi.Router) {
		r.Get("/status", s.Handler.GetSyncStatus)
		r.Get("/stats", s.Handler.GetSyncStats)
		r.Get("/events", s.Handler.StreamSyncStatus)
		r.Post("/now", s.Handler.SyncNow)
		r.Post("/start", s.Handler.StartSync)
		r.Post("/stop", s.Handler.StopSync)
		r.Post("/retry", s.Handler.RetryFailedSync)
	})

	s.Router.Route("/api/users", func(r chi.Router) {
		r.Post("/", s.Handler.CreateUser)
		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", s.Handler.GetUser)
			r.Put("/profile", s.Handler.UpsertProfile)
			r.Get("/profile", s.Handler.GetProfile)

			r.Post("/meals", s.Handler.CreateMeal)
			r.Get("/meals", s.Handler.ListMeals)
			r.Delete("/meals/{mealID}", s.Handler.DeleteMeal)

			r.Post("/workouts", s.Handler.CreateWorkout)
			r.Get("/workouts", s.Handler.ListWorkouts)

			r.Post("/weights", s.Handler.AddWeight)
			r.Get("/weights", s.Handler.ListWeights)
			r.Put("/water", s.Handler.SetWater)
			r.Get("/water", s.Handler.GetWater)
			r.Put("/sleep", s.Handler.SetSleep)
			r.Get("/sleep", s.Handler.GetSleep)

			r.Post("/goals", s.Handler.CreateGoal)
			r.Get("/goals", s.Handler.ListGoals)
			r.Patch("/goals/{goalID}", s.Handler.UpdateGoalStatus)

			r.Get("/summary", s.Handler.GetSummary)
		})
	})
}

func NewHTTPServer(server *Server) *http.Server {
	timeout := server.Config.Service.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpServer := &http.Server{
		Addr:         ":" + server.Config.Service.Port,
		ReadTimeout:  timeout,
		WriteTimeout: 2*time.Minute + timeout,
		Handler:      server,
	}
	return httpServer
}
