package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/edusuite/schoolms/pkg/config"
	"github.com/edusuite/schoolms/pkg/dbrouter"
	"github.com/edusuite/schoolms/pkg/httpserver"
	"github.com/edusuite/schoolms/pkg/logger"
	"github.com/edusuite/schoolms/pkg/pg"
	"github.com/edusuite/schoolms/pkg/trust"
)

func main() {
	ctx := context.Background()

	var (
		pgCfg    pg.Config
		trustCfg trust.Config
		httpCfg  httpserver.Config
	)
	config.MustLoad(&pgCfg)
	config.MustLoad(&trustCfg)
	config.MustLoad(&httpCfg)

	log := logger.New(
		logger.WithEnvironment(os.Getenv("APP_ENV"), "schoolms"),
		logger.WithContextExtractors(trust.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	// The system dataset is the one dependency the process cannot run
	// without: every tenant lookup goes through it.
	system, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		log.ErrorContext(ctx, "system dataset unreachable, aborting startup", logger.Error(err))
		os.Exit(1)
	}
	if err := pg.Migrate(ctx, system, pgCfg, log); err != nil {
		log.ErrorContext(ctx, "system migrations failed, aborting startup", logger.Error(err))
		os.Exit(1)
	}

	readyChecks := []func(context.Context) error{pg.Healthcheck(system)}
	validatorOpts := []trust.ValidatorOption{trust.WithCacheTTL(trustCfg.CacheTTL)}
	if trustCfg.CacheRedisURL != "" {
		redisOpts, err := redis.ParseURL(trustCfg.CacheRedisURL)
		if err != nil {
			log.ErrorContext(ctx, "invalid trust cache redis url, aborting startup", logger.Error(err))
			os.Exit(1)
		}
		client := redis.NewClient(redisOpts)
		validatorOpts = append(validatorOpts,
			trust.WithCache(trust.NewRedisCache(client, "")))
		readyChecks = append(readyChecks, func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}
	validator := trust.NewValidator(trust.NewPGDirectory(system), validatorOpts...)
	registry := dbrouter.New(system, dbrouter.NewPoolOpener(pgCfg), dbrouter.WithLogger(log))

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(trust.Middleware(
		trust.NewResolverFromConfig(trustCfg),
		validator,
		trust.WithLogger(log),
		trust.WithWarmup(func(ctx context.Context, t *trust.Trust) error {
			_, err := registry.Acquire(ctx, t)
			return err
		}),
	))

	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log, readyChecks...))

	r.Route("/platform", func(r chi.Router) {
		r.Use(trust.RequireSystemScope(nil))
		r.Get("/trusts", listTrusts(registry))
	})
	r.Route("/api", func(r chi.Router) {
		r.Use(trust.RequireTrustScope(nil))
		r.Get("/students/count", countStudents(registry))
		r.Post("/students", createStudent(registry))
	})

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(l *slog.Logger) {
			registry.Close()
			_ = validator.Close()
			l.Info("connection registry closed")
		}),
	)
	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "http server exited with error", logger.Error(err))
		os.Exit(1)
	}
}
