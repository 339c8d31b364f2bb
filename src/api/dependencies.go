package api

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"fittrack/src/api/controllers"
	"fittrack/src/clients/aiml"
	"fittrack/src/clients/edamam"
	"fittrack/src/clients/kroger"
	"fittrack/src/config"
	"fittrack/src/database"
	"fittrack/src/repositories"
	"fittrack/src/services"
	"fittrack/src/utils/ratelimit"
	redis_utils "fittrack/src/utils/redis"
	"fittrack/src/utils/requests"
)

// Dependencies are the collaborators of the API server. Nil clients are
// reported as not configured.
type Dependencies struct {
	Kroger     kroger.KrogerServiceClientI
	Edamam     edamam.EdamamServiceClientI
	AIML       aiml.AIMLServiceClientI
	RemoteSync services.RemoteSyncServiceI
	DB         controllers.Pinger
	Redis      controllers.Pinger
	Limiter    ratelimit.Limiter

	closers []func()
}

// NewDependencies builds the clients and stores named in cfg. External APIs
// without credentials are left nil.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Dependencies, error) {
	deps := &Dependencies{}
	api := requests.NewExternalAPIService(&http.Client{Timeout: cfg.Service.RequestTimeout})

	var redisHandler *redis_utils.RedisHandler
	if cfg.Databases.Redis.Configured() {
		handler, err := redis_utils.NewRedisHandler(ctx, cfg.Databases.Redis)
		if err != nil {
			return nil, err
		}
		redisHandler = handler
		deps.Redis = handler
		deps.closers = append(deps.closers, func() { _ = handler.Close() })
		deps.Limiter = ratelimit.NewRedisLimiter(handler, cfg.RateLimit.Limit, cfg.RateLimit.Window)
		logger.Info("Using Redis rate limiter")
	} else {
		deps.Limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	if cfg.Databases.SQL.Configured() {
		pool, err := database.SetupDB(ctx, cfg)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.DB = pool
		deps.closers = append(deps.closers, pool.Close)
		deps.RemoteSync = services.NewRemoteSyncService(
			repositories.NewRemoteChangeRepository(pool),
			repositories.NewClientSyncRepository(pool),
			logger,
		)
	}

	clients := cfg.ExternalClients
	if clients.Kroger.Configured() {
		deps.Kroger = kroger.NewClient(clients.Kroger, api)
	}
	if clients.Edamam.Configured() {
		var cache edamam.ResponseCache
		if redisHandler != nil {
			cache = redisHandler
		}
		deps.Edamam = edamam.NewClient(clients.Edamam, api, cache, logger)
	}
	if clients.AIML.Configured() {
		deps.AIML = aiml.NewClient(clients.AIML)
	}
	return deps, nil
}

// Close releases the stores opened by NewDependencies.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}
