package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AgentTarik/gosat-api/internal/api"
	"github.com/AgentTarik/gosat-api/internal/auth"
	"github.com/AgentTarik/gosat-api/internal/config"
	"github.com/AgentTarik/gosat-api/internal/cpf"
	"github.com/AgentTarik/gosat-api/internal/events"
	"github.com/AgentTarik/gosat-api/internal/gateway"
	"github.com/AgentTarik/gosat-api/internal/kafka"
	"github.com/AgentTarik/gosat-api/internal/middleware"
	"github.com/AgentTarik/gosat-api/internal/storage"
	"github.com/AgentTarik/gosat-api/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := telemetry.NewLogger(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	telemetry.InitMetrics()
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	for _, t := range cfg.MissingDestinations() {
		log.Warn("partner destination not configured",
			zap.String("target", t.String()),
			zap.String("key", t.ConfigKey()),
		)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// store: postgres when DATABASE_URL is set, in memory otherwise
	var (
		repo   storage.LoanRequestRepo
		dbPing func(context.Context) error
	)
	if cfg.Database.URL != "" {
		pg, err := storage.NewPostgres(cfg.Database.URL)
		if err != nil {
			return err
		}
		defer pg.Close()
		if cfg.Database.AutoMigrate {
			applied, err := pg.Migrate(ctx)
			if err != nil {
				return err
			}
			log.Info("migrations applied", zap.Strings("versions", applied))
		}
		repo, dbPing = pg, pg.Ping
	} else {
		mem := storage.NewMemoryStore()
		repo, dbPing = mem, mem.Ping
		log.Info("DATABASE_URL not set, using in-memory store")
	}

	// validator
	cv := cpf.NewValidator(cfg.CPF.AllowTestValues)
	v, err := api.NewValidate(cv)
	if err != nil {
		return err
	}

	dispatcher := gateway.New(gateway.Config{
		Destinations:      cfg.Partners.Destinations,
		AllowUnregistered: cfg.Partners.AllowUnregistered,
		Timeout:           cfg.Partners.Timeout,
	}, log)
	partners := make(map[string]bool)
	for _, t := range gateway.Targets() {
		partners[t.String()] = dispatcher.Configured(t)
	}

	// events worker
	schema, err := kafka.NewValidator()
	if err != nil {
		return fmt.Errorf("event schema: %w", err)
	}
	var pub events.Publisher = events.LogPublisher{Log: log}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		pub = producer
	}
	worker := events.NewWorker(log, pub, schema, cfg.Kafka.QueueSize)

	// handlers with dependencies
	h := &api.Handlers{
		Log:          log,
		CPF:          cv,
		Gateway:      dispatcher,
		LoanRequests: repo,
		V:            v,
		DBPing:       dbPing,
		Version:      cfg.AppVersion,
		Partners:     partners,
		KafkaEnabled: cfg.Kafka.Enabled(),
		RateLimited:  cfg.Rate.Enabled,
		Enqueue: func(e events.Event) {
			worker.Enqueue(e)
		},
	}
	if cfg.Kafka.Enabled() {
		brokers, topic := cfg.Kafka.Brokers, cfg.Kafka.Topic
		h.PollEvents = func(ctx context.Context, limit int) ([]kafka.MessageView, error) {
			return kafka.Poll(ctx, brokers, topic, limit)
		}
	}

	// gin engine
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.CORS())
	r.Use(telemetry.PrometheusMiddleware())

	if cfg.Rate.Enabled {
		rl, err := rateLimiter(ctx, cfg.Rate, log)
		if err != nil {
			return err
		}
		r.Use(rl)
	}

	authOpts := auth.Options{
		Token:       cfg.Auth.BearerToken,
		TokenHash:   cfg.Auth.BearerTokenHash,
		JWTSecret:   cfg.Auth.JWTSecret,
		JWTIssuer:   cfg.Auth.JWTIssuer,
		JWTAudience: cfg.Auth.JWTAudience,
	}
	if cfg.Auth.BearerToken == "" && cfg.Auth.BearerTokenHash == "" && cfg.Auth.JWTSecret == "" {
		log.Warn("no bearer token configured, protected routes will answer 500")
	}
	api.SetupRoutes(r, h, auth.RequireBearer(authOpts))

	// inicia worker
	go worker.Run(ctx)

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Info("server started", zap.String("addr", cfg.ListenAddr), zap.String("version", cfg.AppVersion))

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
	cancel()
	ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctxTimeout)
	log.Info("server stopped")
	return nil
}

// rateLimiter builds the per-client limiter, with redis decision stats when an address is set.
func rateLimiter(ctx context.Context, cfg config.RateConfig, log *zap.Logger) (gin.HandlerFunc, error) {
	store := middleware.NewLimiterStore(cfg.RPS, cfg.Burst)
	store.StartJanitor(ctx)

	opts := middleware.RateLimitOptions{
		Store:      store,
		KeyHeader:  cfg.KeyHeader,
		TrustXFF:   cfg.TrustXFF,
		RetryAfter: cfg.RetryAfter,
		Log:        log,
	}

	if cfg.StatsRedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.StatsRedisAddr,
			Password: cfg.StatsRedisPass,
			DB:       cfg.StatsRedisDB,
		})
		go func() {
			<-ctx.Done()
			_ = rdb.Close()
		}()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			return nil, fmt.Errorf("redis stats ping: %w", err)
		}
		opts.Stats = middleware.NewRedisRateStats(rdb, cfg.StatsPrefix, cfg.StatsTTL)
		log.Info("rate limit stats enabled", zap.String("redis", cfg.StatsRedisAddr))
	}

	log.Info("rate limit enabled", zap.Float64("rps", cfg.RPS), zap.Int("burst", cfg.Burst))
	return middleware.RateLimit(opts), nil
}
