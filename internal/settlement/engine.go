package settlement

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/football-predictions-poc/internal/domain"
)

// Repo é o acesso a dados usado pelo motor de liquidação
type Repo interface {
	GetMatch(ctx context.Context, id int64) (*domain.Match, error)
	ListPendingBets(ctx context.Context, matchID int64) ([]domain.PendingBet, error)
	// SettleBet transiciona pending -> status com compare-and-set; retorna
	// false quando a aposta já não estava pendente (corrida benigna).
	SettleBet(ctx context.Context, betID int64, status domain.BetStatus, settledAt time.Time) (bool, error)
}

// Ledger aplica créditos de saldo de forma atômica
type Ledger interface {
	Credit(ctx context.Context, userID int64, amountCents int64, ref string) error
}

// Notifier divulga apostas liquidadas (Kafka, Redis Pub/Sub pro hub WS).
// Falha de notificação nunca interrompe a liquidação.
type Notifier interface {
	BetSettled(ctx context.Context, bet domain.Bet)
}

// Engine é o motor de liquidação: único ponto do sistema que transiciona
// apostas e credita retornos, invocado tanto pelo registro de placar quanto
// pela liquidação administrativa e pelo worker.
type Engine struct {
	log    *zap.Logger
	repo   Repo
	ledger Ledger

	eval        EvalFunc
	unsupported UnsupportedBetPolicy
	notifier    Notifier

	// Callbacks de métricas, opcionais
	OnSettled  func(status string)
	OnCredited func()
	OnSkipped  func()
}

type Option func(*Engine)

// WithEvalFunc substitui o avaliador padrão
func WithEvalFunc(fn EvalFunc) Option {
	return func(e *Engine) { e.eval = fn }
}

// WithUnsupportedBetPolicy define o destino das modalidades não avaliáveis
func WithUnsupportedBetPolicy(p UnsupportedBetPolicy) Option {
	return func(e *Engine) { e.unsupported = p }
}

// WithNotifier conecta a divulgação de apostas liquidadas
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

func NewEngine(log *zap.Logger, repo Repo, ledger Ledger, opts ...Option) *Engine {
	e := &Engine{
		log:         log,
		repo:        repo,
		ledger:      ledger,
		eval:        DefaultEvaluate,
		unsupported: PolicyLose,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SettleMatch liquida todas as apostas pendentes de uma partida encerrada.
// Retorna somente as apostas transicionadas por ESTA chamada; apostas já
// liquidadas são puladas, então repetir a chamada é um no-op seguro.
//
// Ordem: transições primeiro, créditos depois. Uma falha no meio deixa o
// lote parcialmente liquidado em estado válido; nova chamada só enxerga as
// linhas ainda pendentes.
func (e *Engine) SettleMatch(ctx context.Context, matchID int64) ([]domain.Bet, error) {
	match, err := e.repo.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status != domain.MatchStatusCompleted || match.HomeScore == nil || match.AwayScore == nil {
		return nil, domain.ErrMatchNotSettleable
	}

	actual, err := ResolveOutcome(match.HomeScore, match.AwayScore)
	if err != nil {
		return nil, fmt.Errorf("resolve outcome: %w", err)
	}

	pending, err := e.repo.ListPendingBets(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list pending bets: %w", err)
	}
	if len(pending) == 0 {
		return []domain.Bet{}, nil
	}

	// Um único timestamp pro lote inteiro
	now := time.Now().UTC()

	settled := make([]domain.Bet, 0, len(pending))
	credits := make(map[int64]int64)
	creditOrder := make([]int64, 0)

	for _, pb := range pending {
		won, supported := e.eval(pb, actual)
		if !supported {
			if e.unsupported == PolicyLeavePending {
				if e.OnSkipped != nil {
					e.OnSkipped()
				}
				continue
			}
			won = false
		}

		status := domain.BetStatusLost
		if won {
			status = domain.BetStatusWon
		}

		ok, err := e.repo.SettleBet(ctx, pb.ID, status, now)
		if err != nil {
			return nil, fmt.Errorf("settle bet %d: %w", pb.ID, err)
		}
		if !ok {
			// outra execução venceu a corrida; já liquidada, não é erro
			if e.OnSkipped != nil {
				e.OnSkipped()
			}
			continue
		}

		b := pb.Bet
		b.Status = status
		b.SettledAt = &now
		settled = append(settled, b)
		if e.OnSettled != nil {
			e.OnSettled(string(status))
		}

		if won {
			// crédito = potential_return integral; o valor apostado já
			// saiu do saldo na criação da aposta
			if _, seen := credits[pb.UserID]; !seen {
				creditOrder = append(creditOrder, pb.UserID)
			}
			credits[pb.UserID] += pb.PotentialReturnCents
		}
	}

	// Créditos só depois de todas as transições do lote registradas,
	// um delta agregado por usuário
	ref := fmt.Sprintf("settlement:match:%d", matchID)
	for _, userID := range creditOrder {
		if err := e.ledger.Credit(ctx, userID, credits[userID], ref); err != nil {
			return nil, fmt.Errorf("credit user %d: %w", userID, err)
		}
		if e.OnCredited != nil {
			e.OnCredited()
		}
	}

	if e.notifier != nil {
		for _, b := range settled {
			e.notifier.BetSettled(ctx, b)
		}
	}

	e.log.Info("match settled",
		zap.Int64("matchId", matchID),
		zap.String("outcome", string(actual)),
		zap.Int("bets", len(settled)),
	)
	return settled, nil
}
