package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/bloghub/internal/auth"
	"github.com/geocoder89/bloghub/internal/config"
	"github.com/geocoder89/bloghub/internal/db"
	httpx "github.com/geocoder89/bloghub/internal/http"
	"github.com/geocoder89/bloghub/internal/http/handlers"
	"github.com/geocoder89/bloghub/internal/observability"
	"github.com/geocoder89/bloghub/internal/redisclient"
	"github.com/geocoder89/bloghub/internal/repo/memory"
	"github.com/geocoder89/bloghub/internal/repo/postgres"
	"github.com/geocoder89/bloghub/internal/service"
	"github.com/geocoder89/bloghub/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env, cfg.LogLevel)

	bootCtx, cancelBoot := config.WithTimeout(10 * time.Second)
	defer cancelBoot()

	shutdownTracer, err := observability.InitTracer(bootCtx, observability.TracerConfig{
		Endpoint:    cfg.OTLPEndpoint,
		Env:         cfg.Env,
		SampleRatio: cfg.OTelSampleRatio,
	})
	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	ready := map[string]handlers.Pinger{}

	// storage
	var (
		articleStore service.ArticleStore
		userStore    interface {
			service.CredentialStore
			session.CredentialReader
		}
		pool *pgxpool.Pool
	)

	switch cfg.StorageDriver {
	case config.StorageMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		articleStore = memory.NewArticlesRepo()
		userStore = memory.NewUsersRepo()

	case config.StoragePostgres:
		pool, err = db.NewPool(bootCtx, db.PoolConfig{
			URL:         cfg.DBURL,
			MaxConns:    int32(cfg.DBMaxConns),
			MaxConnIdle: time.Duration(cfg.DBMaxConnIdleMinutes) * time.Minute,
		})
		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := db.EnsureSchema(bootCtx, pool); err != nil {
			log.Error("schema bootstrap failed", "err", err)
			os.Exit(1)
		}

		articleStore = postgres.NewArticlesRepo(pool, prom)
		userStore = postgres.NewUsersRepo(pool, prom)
		ready["postgres"] = pool.Ping

	default:
		log.Error("unknown storage driver", "driver", cfg.StorageDriver)
		os.Exit(1)
	}

	// sessions
	var sessions session.Store

	switch cfg.SessionStore {
	case config.SessionStoreMemory:
		sessions = session.NewMemoryStore()

	case config.SessionStorePostgres:
		if pool == nil {
			log.Error("postgres session store needs STORAGE_DRIVER=postgres")
			os.Exit(1)
		}
		sessions = postgres.NewSessionsRepo(pool, prom)

	case config.SessionStoreRedis:
		rdb := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(bootCtx); err != nil {
			log.Error("redis connect failed", "addr", cfg.RedisAddr, "err", err)
			os.Exit(1)
		}

		sessions = session.NewRedisStore(rdb.Raw())
		ready["redis"] = rdb.Ping

	default:
		log.Error("unknown session store", "store", cfg.SessionStore)
		os.Exit(1)
	}

	tokens := auth.NewManager(cfg.SessionSecret, cfg.SessionTTL())
	gate := session.NewGate(userStore, sessions, tokens)

	router, err := httpx.NewRouter(log, cfg, httpx.Deps{
		Articles: service.NewArticleService(articleStore),
		Users:    service.NewUserService(userStore),
		Gate:     gate,
		Policy:   session.DefaultPolicy(),
		Prom:     prom,
		Gatherer: reg,
		Ready:    ready,
	})
	if err != nil {
		log.Error("router init failed", "err", err)
		os.Exit(1)
	}

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "storage", cfg.StorageDriver, "sessions", cfg.SessionStore)
		err := srv.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

