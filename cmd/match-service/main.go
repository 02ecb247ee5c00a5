package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	mcache "github.com/radieske/football-predictions-poc/internal/match-service/cache"
	mhttp "github.com/radieske/football-predictions-poc/internal/match-service/http"
	"github.com/radieske/football-predictions-poc/internal/match-service/producer"
	mrepo "github.com/radieske/football-predictions-poc/internal/match-service/repo"
	"github.com/radieske/football-predictions-poc/internal/settlement"
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

	// Redis (cache do feed de próximas partidas)
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka writers: match_completed (worker) e bet_settled (hub WS)
	matchWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMatchCompleted)
	defer matchWriter.Close()
	settledWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer settledWriter.Close()

	// deps
	repository := mrepo.NewPostgres(pg)
	feedCache := mcache.New(rdb, 30*time.Second)
	publ := producer.NewKafkaPublisher(matchWriter, cfg.TopicMatchCompleted)

	notifier := &notify.Publisher{
		Log:     log,
		Writer:  settledWriter,
		Rdb:     rdb,
		Channel: cfg.RedisPubSubChannel,
	}
	engine := settlement.NewEngine(log, srepo.NewPostgres(pg), wallet.NewPostgres(pg),
		settlement.WithNotifier(notifier),
	)

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

	// HTTP público
	api := mhttp.NewServer(log, repository, engine, publ, feedCache)
	addr := ":" + cfg.HTTPPort
	log.Info("match-service listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, api.Router()); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
