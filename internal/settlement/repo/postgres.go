package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/radieske/football-predictions-poc/internal/domain"
)

// Postgres implementa as consultas de liquidação
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) GetMatch(ctx context.Context, id int64) (*domain.Match, error) {
	var m domain.Match
	err := p.db.QueryRowContext(ctx, `
		SELECT id, home_team_id, away_team_id, match_date, home_score, away_score,
		       status, gameweek, season, created_at
		FROM matches WHERE id=$1`, id).
		Scan(&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.MatchDate, &m.HomeScore, &m.AwayScore,
			&m.Status, &m.Gameweek, &m.Season, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListPendingBets retorna as apostas pendentes da partida com o resultado
// previsto da previsão vinculada (a partida é alcançada via prediction.match_id)
func (p *Postgres) ListPendingBets(ctx context.Context, matchID int64) ([]domain.PendingBet, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT b.id, b.user_id, b.prediction_id, b.amount_cents, b.bet_type, b.bet_value,
		       b.odds, b.potential_return_cents, b.status, b.created_at,
		       pr.match_id, pr.predicted_outcome
		FROM bets b
		JOIN predictions pr ON pr.id = b.prediction_id
		WHERE pr.match_id=$1 AND b.status='pending'
		ORDER BY b.id`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PendingBet
	for rows.Next() {
		var pb domain.PendingBet
		if err := rows.Scan(&pb.ID, &pb.UserID, &pb.PredictionID, &pb.AmountCents, &pb.BetType,
			&pb.BetValue, &pb.Odds, &pb.PotentialReturnCents, &pb.Status, &pb.CreatedAt,
			&pb.MatchID, &pb.PredictedOutcome); err != nil {
			return nil, err
		}
		out = append(out, pb)
	}
	return out, rows.Err()
}

// SettleBet transiciona a aposta condicionada a ainda estar pendente.
// É o mecanismo de correção sob liquidações concorrentes: no máximo uma
// execução ganha a transição de cada aposta.
func (p *Postgres) SettleBet(ctx context.Context, betID int64, status domain.BetStatus, settledAt time.Time) (bool, error) {
	res, err := p.db.ExecContext(ctx,
		`UPDATE bets SET status=$1, settled_at=$2 WHERE id=$3 AND status='pending'`,
		status, settledAt, betID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListUnsettledMatches lista partidas encerradas que ainda têm apostas
// pendentes, pra varredura periódica do worker
func (p *Postgres) ListUnsettledMatches(ctx context.Context, limit int) ([]int64, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT DISTINCT pr.match_id
		FROM bets b
		JOIN predictions pr ON pr.id = b.prediction_id
		JOIN matches m ON m.id = pr.match_id
		WHERE b.status='pending'
		  AND m.status='completed'
		  AND m.home_score IS NOT NULL AND m.away_score IS NOT NULL
		ORDER BY pr.match_id
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
