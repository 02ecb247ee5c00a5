package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	mdto "github.com/radieske/football-predictions-poc/internal/match-service/dto"
	"github.com/radieske/football-predictions-poc/internal/shared/config"
	"github.com/radieske/football-predictions-poc/internal/shared/logger"
	"github.com/radieske/football-predictions-poc/internal/shared/metrics"
)

// Métricas Prometheus do gerador de previsões
var (
	predictionsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulator_predictions_sent_total",
		Help: "Previsões publicadas no match-service",
	})
	simulatorErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simulator_errors_total",
		Help: "Erros por estágio",
	}, []string{"stage"})
)

var outcomes = []string{"home_win", "draw", "away_win"}

// Gera uma previsão pseudo-aleatória para a partida, com placar coerente
// com o resultado previsto
func randomPrediction(matchID int64, modelVersion string) mdto.CreatePredictionRequest {
	outcome := outcomes[rand.Intn(len(outcomes))]

	var home, away int
	switch outcome {
	case "home_win":
		home = 1 + rand.Intn(3)
		away = rand.Intn(home)
	case "away_win":
		away = 1 + rand.Intn(3)
		home = rand.Intn(away)
	default:
		home = rand.Intn(3)
		away = home
	}

	reasoning := fmt.Sprintf("simulated form analysis favours %s", outcome)
	return mdto.CreatePredictionRequest{
		MatchID:              matchID,
		PredictedOutcome:     outcome,
		ConfidencePercentage: 50 + rand.Intn(46), // 50-95
		PredictedHomeScore:   &home,
		PredictedAwayScore:   &away,
		Reasoning:            &reasoning,
		ModelVersion:         modelVersion,
	}
}

// simulator consulta partidas agendadas e publica uma previsão pra cada uma
type simulator struct {
	log      *zap.Logger
	client   *http.Client
	matchURL string
	model    string
}

func (s *simulator) tick(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.matchURL+"/v1/matches?status=scheduled&limit=20", nil)
	if err != nil {
		return
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("list scheduled matches", zap.Error(err))
		simulatorErrors.WithLabelValues("list").Inc()
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.log.Warn("list scheduled matches", zap.Int("status", resp.StatusCode))
		simulatorErrors.WithLabelValues("list").Inc()
		return
	}

	var matches []mdto.MatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		simulatorErrors.WithLabelValues("decode").Inc()
		return
	}

	for _, m := range matches {
		if err := s.publish(ctx, randomPrediction(m.ID, s.model)); err != nil {
			s.log.Warn("publish prediction", zap.Int64("matchId", m.ID), zap.Error(err))
			simulatorErrors.WithLabelValues("publish").Inc()
			continue
		}
		predictionsSent.Inc()
	}
}

func (s *simulator) publish(ctx context.Context, p mdto.CreatePredictionRequest) error {
	body, _ := json.Marshal(p)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.matchURL+"/v1/predictions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	prometheus.MustRegister(predictionsSent, simulatorErrors)

	sim := &simulator{
		log:      log,
		client:   &http.Client{Timeout: 5 * time.Second},
		matchURL: cfg.MatchServiceURL,
		model:    cfg.SimulatorModelVersion,
	}

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return nil
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("prediction-simulator started",
		zap.Duration("interval", cfg.SimulatorInterval),
		zap.String("model", cfg.SimulatorModelVersion),
	)

	ticker := time.NewTicker(cfg.SimulatorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("prediction-simulator stopped")
			return
		case <-ticker.C:
			sim.tick(ctx)
		}
	}
}
