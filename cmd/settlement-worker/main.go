package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/football-predictions-poc/internal/settlement"
	"github.com/radieske/football-predictions-poc/internal/settlement-worker/consumer"
	"github.com/radieske/football-predictions-poc/internal/settlement/notify"
	srepo "github.com/radieske/football-predictions-poc/internal/settlement/repo"
	"github.com/radieske/football-predictions-poc/internal/shared/cache"
	"github.com/radieske/football-predictions-poc/internal/shared/config"
	"github.com/radieske/football-predictions-poc/internal/shared/db"
	"github.com/radieske/football-predictions-poc/internal/shared/kafka"
	"github.com/radieske/football-predictions-poc/internal/shared/logger"
	"github.com/radieske/football-predictions-poc/internal/shared/metrics"
	"github.com/radieske/football-predictions-poc/internal/wallet"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	// Redis (Pub/Sub das liquidações)
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka: reader do match_completed, writers pro bet_settled e DLQ
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicMatchCompleted, "settlement-worker")
	defer reader.Close()
	settledWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer settledWriter.Close()
	dlqWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMatchCompletedDLQ)
	defer dlqWriter.Close()

	// Métricas Prometheus do pipeline de liquidação
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "settlement_messages_consumed_total", Help: "eventos match_completed consumidos"})
	settled := prometheus.NewCounter(prometheus.CounterOpts{Name: "settlement_bets_settled_total", Help: "apostas liquidadas"})
	swept := prometheus.NewCounter(prometheus.CounterOpts{Name: "settlement_matches_swept_total", Help: "partidas liquidadas pela varredura"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "settlement_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, settled, swept, errorsBy)

	repository := srepo.NewPostgres(pg)
	notifier := &notify.Publisher{
		Log:     log,
		Writer:  settledWriter,
		Rdb:     rdb,
		Channel: cfg.RedisPubSubChannel,
	}
	engine := settlement.NewEngine(log, repository, wallet.NewPostgres(pg),
		settlement.WithNotifier(notifier),
	)

	worker := &consumer.Worker{
		Log:           log,
		Reader:        reader,
		Settler:       engine,
		Sweeper:       repository,
		DLQ:           dlqWriter,
		SweepInterval: cfg.SweepInterval,
		OnConsumed:    func() { consumed.Inc() },
		OnSettled:     func(n int) { settled.Add(float64(n)) },
		OnSwept:       func() { swept.Inc() },
		OnError:       func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})

	// shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go worker.RunSweeper(ctx)

	log.Info("settlement-worker started")
	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("worker stopped with error", zap.Error(err))
	}
	log.Info("settlement-worker stopped")
}
