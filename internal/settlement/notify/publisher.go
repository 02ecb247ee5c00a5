package notify

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/football-predictions-poc/internal/domain"
	"github.com/radieske/football-predictions-poc/pkg/contracts/events"
)

// Publisher divulga apostas liquidadas no Kafka (tópico bet_settled) e no
// canal Redis Pub/Sub consumido pelo hub WebSocket do bet-service.
// Best-effort: falhas são logadas e nunca interrompem a liquidação.
type Publisher struct {
	Log     *zap.Logger
	Writer  *kafkago.Writer // opcional
	Rdb     *redis.Client   // opcional
	Channel string
}

func (p *Publisher) BetSettled(ctx context.Context, bet domain.Bet) {
	payout := int64(0)
	if bet.Status == domain.BetStatusWon {
		payout = bet.PotentialReturnCents
	}
	e := events.BetSettled{
		BetID:        bet.ID,
		UserID:       bet.UserID,
		PredictionID: bet.PredictionID,
		Status:       string(bet.Status),
		AmountCents:  bet.AmountCents,
		PayoutCents:  payout,
	}
	if bet.SettledAt != nil {
		e.SettledAt = *bet.SettledAt
	}
	b, _ := json.Marshal(e)

	if p.Writer != nil {
		msg := kafkago.Message{Key: []byte(strconv.FormatInt(bet.ID, 10)), Value: b}
		if err := p.Writer.WriteMessages(ctx, msg); err != nil {
			p.Log.Warn("publish bet_settled", zap.Int64("betId", bet.ID), zap.Error(err))
		}
	}
	if p.Rdb != nil {
		if err := p.Rdb.Publish(ctx, p.Channel, b).Err(); err != nil {
			p.Log.Warn("broadcast bet_settled", zap.Int64("betId", bet.ID), zap.Error(err))
		}
	}
}
