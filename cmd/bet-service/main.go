package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	bhttp "github.com/radieske/football-predictions-poc/internal/bet-service/http"
	brepo "github.com/radieske/football-predictions-poc/internal/bet-service/repo"
	"github.com/radieske/football-predictions-poc/internal/bet-service/ws"
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

	// Redis (Pub/Sub das liquidações -> hub WS)
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka writer do bet_settled (liquidação administrativa)
	settledWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer settledWriter.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hub WebSocket alimentado pelo Redis Pub/Sub
	hub := ws.NewHub(func(r *http.Request) bool { return true })
	ws.StartRedisSubscriber(ctx, log, rdb, cfg.RedisPubSubChannel, hub)

	notifier := &notify.Publisher{
		Log:     log,
		Writer:  settledWriter,
		Rdb:     rdb,
		Channel: cfg.RedisPubSubChannel,
	}
	engine := settlement.NewEngine(log, srepo.NewPostgres(pg), wallet.NewPostgres(pg),
		settlement.WithNotifier(notifier),
	)

	repository := brepo.NewPostgres(pg)

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
	api := bhttp.NewServer(log, repository, engine, hub.HandleWS)
	addr := ":" + cfg.HTTPPort
	log.Info("bet-service listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, api.Router()); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
