package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/pick-grader/internal/config"
	"github.com/riskibarqy/pick-grader/internal/domain/pick"
	"github.com/riskibarqy/pick-grader/internal/domain/user"
	"github.com/riskibarqy/pick-grader/internal/infrastructure/events"
	"github.com/riskibarqy/pick-grader/internal/infrastructure/lock"
	cacherepo "github.com/riskibarqy/pick-grader/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/pick-grader/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pick-grader/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pick-grader/internal/interfaces/httpapi"
	"github.com/riskibarqy/pick-grader/internal/observability"
	"github.com/riskibarqy/pick-grader/internal/platform/logging"
	"github.com/riskibarqy/pick-grader/internal/platform/resilience"
	"github.com/riskibarqy/pick-grader/internal/usecase"
)

const lockKeyPrefix = "pick-grader:lock:"

// App holds the servers and the resources they own.
type App struct {
	Server        *http.Server
	MetricsServer *http.Server

	closers []func(context.Context) error
}

// New wires repositories, infrastructure and the HTTP surface from cfg.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}
	var health []observability.HealthFunc

	pickRepo, userRepo, err := a.buildRepositories(ctx, cfg, logger, &health)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	if cfg.CacheEnabled {
		pickRepo = cacherepo.NewPickRepository(pickRepo, cfg.CacheTTL)
		userRepo = cacherepo.NewUserRepository(userRepo, cfg.CacheTTL)
	}

	locker := a.buildLocker(cfg, logger, &health)

	publisher, err := a.buildPublisher(cfg, logger)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewGradingMetrics(registry)
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("register grading metrics: %w", err)
	}
	if cfg.MetricsAddr != "" {
		a.MetricsServer = observability.NewMetricsServer(cfg.MetricsAddr, registry, combineHealth(health))
	}

	service := usecase.NewScoreEntryService(
		pickRepo,
		userRepo,
		locker,
		publisher,
		metrics,
		usecase.ScoreEntryConfig{
			LockTTL:      cfg.LockTTL,
			PointWorkers: cfg.PointWorkers,
			BatchWorkers: cfg.BatchWorkers,
		},
		logger.Named("score_entry"),
	)

	handler := httpapi.NewHandler(service, logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, logger.Named("http"), cfg.CORSAllowedOrigins)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) onClose(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

func (a *App) buildRepositories(
	ctx context.Context,
	cfg config.Config,
	logger *logging.Logger,
	health *[]observability.HealthFunc,
) (pick.Repository, user.Repository, error) {
	if cfg.DBURL == "" {
		users := memory.NewUserRepository(memory.SeedUsers())
		var seeded []pick.Pick
		if cfg.SeedEnabled {
			seeded = memory.SeedPicks(time.Now())
		}
		logger.Warn("DB_URL empty, using in-memory repositories", "seeded_picks", len(seeded))
		return memory.NewPickRepository(seeded, users), users, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	a.onClose(func(context.Context) error { return db.Close() })
	*health = append(*health, db.PingContext)

	if cfg.SeedEnabled {
		if err := postgres.BootstrapSeed(ctx, db, time.Now()); err != nil {
			return nil, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
	}

	logger.Info("postgres repositories ready", "db", dbNameFromURL(cfg.DBURL))
	return postgres.NewPickRepository(db), postgres.NewUserRepository(db), nil
}

func (a *App) buildLocker(cfg config.Config, logger *logging.Logger, health *[]observability.HealthFunc) usecase.SubmissionLocker {
	if !cfg.RedisEnabled() {
		logger.Info("REDIS_ADDR empty, submission locks are process local")
		return lock.NewMemoryLocker()
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.RedisAddr},
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	a.onClose(func(context.Context) error { return client.Close() })
	*health = append(*health, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})

	logger.Info("redis submission locks enabled", "addr", cfg.RedisAddr)
	return lock.NewRedisLocker(client, lockKeyPrefix)
}

func (a *App) buildPublisher(cfg config.Config, logger *logging.Logger) (usecase.EventPublisher, error) {
	if !cfg.KafkaEnabled() {
		return usecase.NewNoopEventPublisher(), nil
	}

	publisher, err := events.NewKafkaPublisher(events.KafkaPublisherConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaTopic,
		WriteTimeout: cfg.KafkaWriteTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.KafkaCircuitEnabled,
			FailureThreshold: cfg.KafkaCircuitFailureCount,
			OpenTimeout:      cfg.KafkaCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.KafkaCircuitHalfOpenMaxReq,
		},
	}, logger.Named("kafka"))
	if err != nil {
		return nil, fmt.Errorf("build kafka publisher: %w", err)
	}
	a.onClose(func(context.Context) error { return publisher.Close() })

	logger.Info("kafka graded events enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	return publisher, nil
}

func combineHealth(checks []observability.HealthFunc) observability.HealthFunc {
	return func(ctx context.Context) error {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
