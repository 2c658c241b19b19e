package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"maintain/internal/audit"
	chargeclient "maintain/internal/charge/client"
	chargehandler "maintain/internal/charge/handler"
	chargeservice "maintain/internal/charge/service"
	"maintain/internal/maintain/cache"
	maintainhandler "maintain/internal/maintain/handler"
	"maintain/internal/maintain/schema"
	maintainservice "maintain/internal/maintain/service"
	"maintain/internal/maintain/store"
	"maintain/internal/platform/config"
	"maintain/internal/platform/httpserver"
	"maintain/internal/platform/logger"
	"maintain/internal/platform/metrics"
	"maintain/internal/platform/middleware"
	"maintain/internal/platform/redis"
	httptransport "maintain/internal/transport/http"
)

const shutdownGrace = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.AppName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	checks := map[string]httptransport.HealthCheck{}

	st, tx, db, err := buildStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		checks["database"] = db.PingContext
	}

	opts := []maintainservice.Option{
		maintainservice.WithTx(tx),
		maintainservice.WithLogger(log),
	}
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		checks["redis"] = redisClient.Health
		opts = append(opts, maintainservice.WithListCache(cache.NewRedisListCache(redisClient.Client, cfg.Redis.ListCacheTTL)))
		log.Info("reference list cache enabled", "ttl", cfg.Redis.ListCacheTTL)
	}

	publisher, closeAudit, err := buildAudit(cfg.Audit, log)
	if err != nil {
		return err
	}
	defer closeAudit()

	upstream := &http.Client{Timeout: cfg.Upstream.Timeout}
	charges := chargeservice.New(
		chargeclient.NewMintClient(cfg.Upstream.MintURL, upstream),
		chargeclient.NewSearchClient(cfg.Upstream.SearchURL, upstream),
		chargeservice.WithAudit(publisher),
		chargeservice.WithMetrics(chargeservice.NewMetrics(reg)),
		chargeservice.WithLogger(log),
	)

	var validator middleware.JWTValidator
	if cfg.JWTSigningKey != "" {
		validator = middleware.NewHMACValidator(cfg.JWTSigningKey)
	} else {
		log.Warn("JWT_SIGNING_KEY not set, API authentication disabled")
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		AppName:      cfg.AppName,
		Commit:       cfg.Commit,
		Logger:       log,
		Metrics:      m,
		JWTValidator: validator,
		HealthChecks: checks,
	},
		maintainhandler.New(
			maintainservice.NewCategoryService(st, opts...),
			maintainservice.NewReferenceService(st, opts...),
			schema.MustNew(),
			log,
		),
		chargehandler.New(charges, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting maintain-api", "addr", cfg.Addr, "commit", cfg.Commit)
		return httpserver.Run(gctx, srv, shutdownGrace)
	})
	return g.Wait()
}

// buildStore selects Postgres when DATABASE_URL is set and the in-memory
// store otherwise.
func buildStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (maintainservice.Store, maintainservice.StoreTx, *sql.DB, error) {
	if cfg.URL == "" {
		log.Warn("DATABASE_URL not set, using in-memory store")
		st := store.NewInMemory()
		return st, maintainservice.NewInMemoryStoreTx(st), nil, nil
	}

	db, err := store.Open(ctx, cfg.URL, cfg.MaxOpenConns, cfg.ConnMaxLifetime)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.ApplySchema {
		if err := store.ApplySchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		log.Info("database schema applied")
	}
	return store.NewPostgres(db), newMaintainPostgresTx(db), db, nil
}

// buildAudit publishes to Kafka when brokers are configured and to the log
// otherwise.
func buildAudit(cfg config.AuditConfig, log *slog.Logger) (*audit.Publisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return audit.NewPublisher(audit.NewLogSink(log)), func() {}, nil
	}
	client, err := audit.NewKafkaClient(cfg.KafkaBrokers, cfg.Topic)
	if err != nil {
		return nil, nil, err
	}
	log.Info("audit events published to kafka", "topic", cfg.Topic, "brokers", cfg.KafkaBrokers)
	return audit.NewPublisher(audit.NewKafkaSink(client, cfg.Topic)), func() { closeKafka(client) }, nil
}

func closeKafka(client *kgo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = client.Flush(ctx)
	client.Close()
}
