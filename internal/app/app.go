package app

import (
	"context"
	"log"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis"
	"github.com/humanbelnik/watchnext/internal/config"
	http_auth "github.com/humanbelnik/watchnext/internal/delivery/http/auth"
	http_catalog "github.com/humanbelnik/watchnext/internal/delivery/http/catalog"
	http_init "github.com/humanbelnik/watchnext/internal/delivery/http/init"
	http_auth_middleware "github.com/humanbelnik/watchnext/internal/delivery/http/middleware/auth"
	http_voting "github.com/humanbelnik/watchnext/internal/delivery/http/voting"
	http_watchlist "github.com/humanbelnik/watchnext/internal/delivery/http/watchlist"
	infra_catalog_imdb "github.com/humanbelnik/watchnext/internal/infra/catalog/imdb"
	infra_memory_kv "github.com/humanbelnik/watchnext/internal/infra/memory/kv"
	infra_pg_init "github.com/humanbelnik/watchnext/internal/infra/postgres/init"
	infra_postgres_watchlist "github.com/humanbelnik/watchnext/internal/infra/postgres/watchlist"
	infra_redis_catalog "github.com/humanbelnik/watchnext/internal/infra/redis/catalog"
	infra_redis_init "github.com/humanbelnik/watchnext/internal/infra/redis/init"
	infra_redis_kv "github.com/humanbelnik/watchnext/internal/infra/redis/kv"
	infra_redis_watchlist "github.com/humanbelnik/watchnext/internal/infra/redis/watchlist"
	service_local_auth "github.com/humanbelnik/watchnext/internal/service/auth/local"
	"github.com/humanbelnik/watchnext/internal/service/watchlist"
	usecase_catalog "github.com/humanbelnik/watchnext/internal/usecase/catalog"
	usecase_vote "github.com/humanbelnik/watchnext/internal/usecase/vote"
	usecase_watchlist "github.com/humanbelnik/watchnext/internal/usecase/watchlist"
)

func Go(cfg *config.Config) {
	logger := slog.Default()

	var redisConn *redis.Client
	redisClient := func() *redis.Client {
		if redisConn == nil {
			redisConn = infra_redis_init.MustEstablishConn(cfg.Redis)
		}
		return redisConn
	}

	var fetcher usecase_vote.CatalogFetcher = infra_catalog_imdb.New(cfg.Catalog,
		infra_catalog_imdb.WithLogger(logger))
	switch cfg.Catalog.Cache {
	case config.BackendRedis:
		fetcher = infra_redis_catalog.New(redisClient(), fetcher, "catalog", cfg.Catalog.CacheTTL,
			infra_redis_catalog.WithLogger(logger))
	case config.BackendNone, "":
	default:
		log.Fatalf("unknown CATALOG_CACHE %q", cfg.Catalog.Cache)
	}

	watchlistOpts := []usecase_watchlist.UsecaseOption{usecase_watchlist.WithLogger(logger)}
	switch cfg.Storage.WatchlistPersistence {
	case config.BackendRedis:
		watchlistOpts = append(watchlistOpts,
			usecase_watchlist.WithSnapshotRepository(infra_redis_watchlist.New(redisClient(), "watchlist")))
	case config.BackendPostgres:
		pgRepo := infra_postgres_watchlist.New(infra_pg_init.MustEstablishConn(cfg.Postgres))
		if err := pgRepo.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("failed to prepare watchlist schema: %v", err)
		}
		watchlistOpts = append(watchlistOpts, usecase_watchlist.WithSnapshotRepository(pgRepo))
	case config.BackendNone, "":
	default:
		log.Fatalf("unknown WATCHLIST_PERSISTENCE %q", cfg.Storage.WatchlistPersistence)
	}

	watchlistUC := usecase_watchlist.New(watchlist.New(), watchlistOpts...)
	if err := watchlistUC.Restore(context.Background()); err != nil {
		logger.Error("failed to restore watchlist, starting empty", slog.String("error", err.Error()))
	}
	voteUC := usecase_vote.New(fetcher, cfg.Catalog.PersonID, usecase_vote.WithLogger(logger))
	catalogUC := usecase_catalog.New(fetcher, cfg.Catalog.PersonID, usecase_catalog.WithLogger(logger))

	var credentials service_local_auth.CredentialStore
	var sessions service_local_auth.SessionCache
	switch cfg.Auth.Store {
	case config.BackendRedis:
		credentials = infra_redis_kv.New(redisClient(), "credentials")
		sessions = infra_redis_kv.New(redisClient(), "session_cache")
	case config.BackendMemory, "":
		credentials = infra_memory_kv.New()
		sessions = infra_memory_kv.New()
	default:
		log.Fatalf("unknown AUTH_STORE %q", cfg.Auth.Store)
	}
	authService := service_local_auth.New(credentials, sessions,
		service_local_auth.WithSessionTTL(cfg.Auth.SessionTTL))

	var guards []gin.HandlerFunc
	if cfg.Auth.Required {
		guards = append(guards, http_auth_middleware.New(authService).AuthRequired())
	}

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_auth.New(authService))
	controllerPool.Add(http_catalog.New(catalogUC))
	controllerPool.Add(http_watchlist.New(watchlistUC,
		http_watchlist.WithLogger(logger),
		http_watchlist.WithGuards(guards...)))
	controllerPool.Add(http_voting.New(voteUC, watchlistUC,
		http_voting.WithLogger(logger),
		http_voting.WithGuards(guards...)))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Host, cfg.HTTP.Port)
}
