package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/radieske/football-predictions-poc/internal/domain"
)

// Postgres implementa a persistência de usuários e apostas
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) CreateUser(ctx context.Context, username, email string, initialBalanceCents int64) (*domain.User, error) {
	u := domain.User{Username: username, Email: email, TotalBalanceCents: initialBalanceCents}
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO users(username, email, total_balance_cents) VALUES($1,$2,$3)
		 RETURNING id, created_at`,
		username, email, initialBalanceCents).Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return nil, domain.ErrUserTaken
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (p *Postgres) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := p.db.QueryRowContext(ctx,
		`SELECT id, username, email, total_balance_cents, created_at FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.TotalBalanceCents, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserStats agrega o desempenho de apostas do usuário em uma consulta
func (p *Postgres) GetUserStats(ctx context.Context, userID int64) (*domain.UserStats, error) {
	user, err := p.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := domain.UserStats{User: *user}
	err = p.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'won'),
		       COUNT(*) FILTER (WHERE status = 'lost'),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COALESCE(SUM(potential_return_cents - amount_cents) FILTER (WHERE status = 'won'), 0),
		       COALESCE(SUM(amount_cents) FILTER (WHERE status = 'lost'), 0)
		FROM bets WHERE user_id=$1`, userID).
		Scan(&stats.TotalBets, &stats.WonBets, &stats.LostBets, &stats.PendingBets,
			&stats.TotalWinningsCents, &stats.TotalLossesCents)
	if err != nil {
		return nil, err
	}

	if settled := stats.WonBets + stats.LostBets; settled > 0 {
		stats.WinRate = float64(stats.WonBets) / float64(settled) * 100
	}
	stats.NetProfitCents = stats.TotalWinningsCents - stats.TotalLossesCents
	return &stats, nil
}

// CreateBetParams agrupa os campos já validados/convertidos do handler
type CreateBetParams struct {
	UserID               int64
	PredictionID         int64
	AmountCents          int64
	BetType              domain.BetType
	BetValue             string
	Odds                 decimal.Decimal
	PotentialReturnCents int64
}

// CreateBet debita o saldo e insere a aposta pendente na mesma transação.
// Lock pessimista na linha do usuário: saldo insuficiente nunca passa, e a
// falha não deixa nem aposta nem débito pra trás.
func (p *Postgres) CreateBet(ctx context.Context, in CreateBetParams) (*domain.Bet, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var predictionID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM predictions WHERE id=$1`, in.PredictionID).Scan(&predictionID)
	if err == sql.ErrNoRows {
		return nil, domain.ErrPredictionNotFound
	} else if err != nil {
		return nil, err
	}

	var balance int64
	err = tx.QueryRowContext(ctx,
		`SELECT total_balance_cents FROM users WHERE id=$1 FOR UPDATE`, in.UserID).Scan(&balance)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	if balance < in.AmountCents {
		return nil, domain.ErrInsufficientBalance
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE users SET total_balance_cents = total_balance_cents - $1 WHERE id=$2`,
		in.AmountCents, in.UserID); err != nil {
		return nil, err
	}

	b := domain.Bet{
		UserID:               in.UserID,
		PredictionID:         in.PredictionID,
		AmountCents:          in.AmountCents,
		BetType:              in.BetType,
		BetValue:             in.BetValue,
		Odds:                 in.Odds,
		PotentialReturnCents: in.PotentialReturnCents,
		Status:               domain.BetStatusPending,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO bets(user_id, prediction_id, amount_cents, bet_type, bet_value,
		                 odds, potential_return_cents, status)
		VALUES($1,$2,$3,$4,$5,$6,$7,'pending') RETURNING id, created_at`,
		in.UserID, in.PredictionID, in.AmountCents, in.BetType, in.BetValue,
		in.Odds, in.PotentialReturnCents).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return nil, err
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO wallet_ledger(id, user_id, operation_type, amount_cents, description)
		 VALUES($1,$2,'DEBIT',$3,$4)`,
		uuid.NewString(), in.UserID, in.AmountCents, fmt.Sprintf("bet:%d", b.ID)); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (p *Postgres) GetBet(ctx context.Context, id int64) (*domain.Bet, error) {
	var b domain.Bet
	err := p.db.QueryRowContext(ctx, `
		SELECT id, user_id, prediction_id, amount_cents, bet_type, bet_value,
		       odds, potential_return_cents, status, settled_at, created_at
		FROM bets WHERE id=$1`, id).
		Scan(&b.ID, &b.UserID, &b.PredictionID, &b.AmountCents, &b.BetType, &b.BetValue,
			&b.Odds, &b.PotentialReturnCents, &b.Status, &b.SettledAt, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrBetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (p *Postgres) ListUserBets(ctx context.Context, userID int64, status *domain.BetStatus, limit, offset int) ([]domain.Bet, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, prediction_id, amount_cents, bet_type, bet_value,
		       odds, potential_return_cents, status, settled_at, created_at
		FROM bets
		WHERE user_id=$1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		userID, (*string)(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Bet
	for rows.Next() {
		var b domain.Bet
		if err := rows.Scan(&b.ID, &b.UserID, &b.PredictionID, &b.AmountCents, &b.BetType,
			&b.BetValue, &b.Odds, &b.PotentialReturnCents, &b.Status, &b.SettledAt,
			&b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}
