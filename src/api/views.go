package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"fittrack/src/api/controllers"
	"fittrack/src/api/handlers"
	"fittrack/src/config"
	"fittrack/src/utils/middlewares"
	"fittrack/src/utils/ratelimit"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	Config  *config.Config
	Logger  *logrus.Logger
	Limiter ratelimit.Limiter
}

func NewServer(cfg *config.Config, deps *Dependencies, logger *logrus.Logger) *Server {
	limiter := deps.Limiter
	if limiter == nil {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	handler := handlers.NewHandler(
		controllers.NewHealthController(cfg, deps.DB, deps.Redis),
		controllers.NewGroceryController(deps.Kroger),
		controllers.NewRecipesController(deps.Edamam),
		controllers.NewMealPlanController(deps.AIML),
		controllers.NewSyncController(deps.RemoteSync, cfg.Sync.APIKey),
		logger,
		cfg.Service.RequestTimeout,
	)

	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		Config:  cfg,
		Logger:  logger,
		Limiter: limiter,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	if s.Config.Service.TrustProxy {
		s.Router.Use(middleware.RealIP)
	}
	s.Router.Use(middlewares.RequestLogger(s.Logger))
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins: s.Config.Service.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	}).Handler)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middlewares.RateLimit(s.Limiter, s.Logger))

			r.Get("/ping", s.Handler.Ping)
			r.Get("/health", s.Handler.GetHealth)

			r.Get("/locations", s.Handler.GetLocations)
			r.Get("/products", s.Handler.SearchProducts)
			r.Get("/recipes", s.Handler.SearchRecipes)
			r.Post("/image-meal-plan", s.Handler.PostImageMealPlan)

			r.Get("/swagger.json", s.Handler.GetSwagger)
			r.Get("/docs", s.Handler.GetDocs)
		})

		// authenticated by the sync API key instead of the per-IP quota
		r.Route("/sync", func(r chi.Router) {
			r.Post("/push", s.Handler.PushChanges)
			r.Get("/clients/{clientID}", s.Handler.GetClientSync)
			r.Delete("/clients/{clientID}/logs", s.Handler.DeleteClientSyncLogs)
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
		WriteTimeout: timeout + 5*time.Second,
		Handler:      server,
	}
	return httpServer
}
