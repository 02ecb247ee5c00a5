package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/football-predictions-poc/internal/domain"
	"github.com/radieske/football-predictions-poc/pkg/contracts/events"
)

// Settler é o motor de liquidação
type Settler interface {
	SettleMatch(ctx context.Context, matchID int64) ([]domain.Bet, error)
}

// Sweeper lista partidas encerradas que ainda têm apostas pendentes
type Sweeper interface {
	ListUnsettledMatches(ctx context.Context, limit int) ([]int64, error)
}

// Worker consome eventos match_completed e re-executa a liquidação.
// Como a transição de apostas é condicionada a pending, repetir a
// liquidação de uma partida já liquidada é um no-op seguro; o worker é a
// rede de segurança pra falhas da liquidação síncrona.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa.
type Worker struct {
	Log     *zap.Logger
	Reader  *kafka.Reader
	Settler Settler
	Sweeper Sweeper
	DLQ     *kafka.Writer // opcional

	SweepInterval time.Duration
	SweepLimit    int

	OnConsumed func()       // métricas (counter++)
	OnSettled  func(int)    // métricas: apostas liquidadas no lote
	OnSwept    func()       // métricas: partidas pegas pela varredura
	OnError    func(string) // métricas por fase
}

// Run inicia o loop principal de consumo dos eventos match_completed
func (w *Worker) Run(ctx context.Context) error {
	for {
		m, err := w.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			w.Log.Warn("kafka read failed", zap.Error(err))
			if w.OnError != nil {
				w.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if w.OnConsumed != nil {
			w.OnConsumed()
		}

		var ev events.MatchCompleted
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			w.Log.Warn("invalid message", zap.Error(err))
			if w.OnError != nil {
				w.OnError("decode")
			}
			w.toDLQ(ctx, m)
			continue
		}

		if err := w.settleWithRetry(ctx, ev.MatchID); err != nil {
			w.Log.Error("settle match", zap.Int64("matchId", ev.MatchID), zap.Error(err))
			if w.OnError != nil {
				w.OnError("settle")
			}
			w.toDLQ(ctx, m)
		}
	}
}

// settleWithRetry tenta a liquidação com backoff simples. Erros de
// pré-condição (partida inexistente / não liquidável) não são transientes e
// não merecem retry.
func (w *Worker) settleWithRetry(ctx context.Context, matchID int64) error {
	const retries = 3
	var err error
	for i := 0; i < retries; i++ {
		var settled []domain.Bet
		settled, err = w.Settler.SettleMatch(ctx, matchID)
		if err == nil {
			if w.OnSettled != nil {
				w.OnSettled(len(settled))
			}
			return nil
		}
		if errors.Is(err, domain.ErrMatchNotFound) || errors.Is(err, domain.ErrMatchNotSettleable) {
			return err
		}
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}
	return err
}

// RunSweeper varre periodicamente partidas encerradas com apostas ainda
// pendentes (ex: crash entre o placar e a liquidação) e as liquida
func (w *Worker) RunSweeper(ctx context.Context) {
	if w.Sweeper == nil {
		return
	}
	limit := w.SweepLimit
	if limit <= 0 {
		limit = 50
	}
	ticker := time.NewTicker(w.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ids, err := w.Sweeper.ListUnsettledMatches(ctx, limit)
			if err != nil {
				w.Log.Warn("sweep query", zap.Error(err))
				if w.OnError != nil {
					w.OnError("sweep")
				}
				continue
			}
			for _, id := range ids {
				if _, err := w.Settler.SettleMatch(ctx, id); err != nil {
					w.Log.Warn("sweep settle", zap.Int64("matchId", id), zap.Error(err))
					if w.OnError != nil {
						w.OnError("sweep_settle")
					}
					continue
				}
				if w.OnSwept != nil {
					w.OnSwept()
				}
			}
		}
	}
}

func (w *Worker) toDLQ(ctx context.Context, m kafka.Message) {
	if w.DLQ == nil {
		return
	}
	if err := w.DLQ.WriteMessages(ctx, kafka.Message{Key: m.Key, Value: m.Value}); err != nil {
		w.Log.Error("dlq write", zap.Error(err))
	}
}
