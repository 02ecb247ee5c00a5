package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/radieske/football-predictions-poc/internal/domain"
)

// Postgres implementa a persistência de times, partidas e previsões
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) CreateTeam(ctx context.Context, name, code string, logoURL *string) (*domain.Team, error) {
	t := domain.Team{Name: name, Code: code, LogoURL: logoURL}
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO teams(name, code, logo_url) VALUES($1,$2,$3) RETURNING id, created_at`,
		name, code, logoURL).Scan(&t.ID, &t.CreatedAt)
	if isUniqueViolation(err) {
		return nil, domain.ErrTeamCodeTaken
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (p *Postgres) ListTeams(ctx context.Context) ([]domain.Team, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, name, code, logo_url, created_at FROM teams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Code, &t.LogoURL, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateMatch insere uma partida agendada; os dois times precisam existir
func (p *Postgres) CreateMatch(ctx context.Context, homeTeamID, awayTeamID int64, matchDate time.Time, gameweek int, season string) (*domain.Match, error) {
	var teamCount int
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM teams WHERE id = ANY($1)`,
		pq.Array([]int64{homeTeamID, awayTeamID})).Scan(&teamCount)
	if err != nil {
		return nil, err
	}
	if teamCount != 2 {
		return nil, domain.ErrTeamNotFound
	}

	m := domain.Match{
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		MatchDate:  matchDate,
		Status:     domain.MatchStatusScheduled,
		Gameweek:   gameweek,
		Season:     season,
	}
	err = p.db.QueryRowContext(ctx, `
		INSERT INTO matches(home_team_id, away_team_id, match_date, status, gameweek, season)
		VALUES($1,$2,$3,'scheduled',$4,$5) RETURNING id, created_at`,
		homeTeamID, awayTeamID, matchDate, gameweek, season).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MatchFilter restringe a listagem de partidas
type MatchFilter struct {
	Gameweek *int
	Season   *string
	Status   *domain.MatchStatus
	Limit    int
	Offset   int
}

func (p *Postgres) ListMatches(ctx context.Context, f MatchFilter) ([]domain.Match, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, home_team_id, away_team_id, match_date, home_score, away_score,
		       status, gameweek, season, created_at
		FROM matches
		WHERE ($1::int IS NULL OR gameweek = $1)
		  AND ($2::text IS NULL OR season = $2)
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY match_date
		LIMIT $4 OFFSET $5`,
		f.Gameweek, f.Season, (*string)(f.Status), f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Match
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.MatchDate, &m.HomeScore,
			&m.AwayScore, &m.Status, &m.Gameweek, &m.Season, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpdateMatchResult grava o placar final e marca a partida como encerrada.
// É a pré-condição que libera a liquidação; a invocação do motor fica no handler.
func (p *Postgres) UpdateMatchResult(ctx context.Context, id int64, homeScore, awayScore int) (*domain.Match, error) {
	var m domain.Match
	err := p.db.QueryRowContext(ctx, `
		UPDATE matches SET home_score=$1, away_score=$2, status='completed'
		WHERE id=$3
		RETURNING id, home_team_id, away_team_id, match_date, home_score, away_score,
		          status, gameweek, season, created_at`,
		homeScore, awayScore, id).
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

// CreatePrediction insere uma previsão; partida precisa existir e não pode
// estar encerrada
func (p *Postgres) CreatePrediction(ctx context.Context, in domain.Prediction) (*domain.Prediction, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var status domain.MatchStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM matches WHERE id=$1`, in.MatchID).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, domain.ErrMatchNotFound
	} else if err != nil {
		return nil, err
	}
	if status == domain.MatchStatusCompleted {
		return nil, domain.ErrMatchCompleted
	}

	out := in
	err = tx.QueryRowContext(ctx, `
		INSERT INTO predictions(match_id, predicted_outcome, confidence_percentage,
		                        predicted_home_score, predicted_away_score, reasoning, model_version)
		VALUES($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at`,
		in.MatchID, in.PredictedOutcome, in.ConfidencePercentage,
		in.PredictedHomeScore, in.PredictedAwayScore, in.Reasoning, in.ModelVersion).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *Postgres) ListPredictions(ctx context.Context, matchID *int64) ([]domain.Prediction, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, match_id, predicted_outcome, confidence_percentage,
		       predicted_home_score, predicted_away_score, reasoning, model_version, created_at
		FROM predictions
		WHERE ($1::bigint IS NULL OR match_id = $1)
		ORDER BY created_at DESC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Prediction
	for rows.Next() {
		var pr domain.Prediction
		if err := rows.Scan(&pr.ID, &pr.MatchID, &pr.PredictedOutcome, &pr.ConfidencePercentage,
			&pr.PredictedHomeScore, &pr.PredictedAwayScore, &pr.Reasoning, &pr.ModelVersion,
			&pr.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

// ListUpcomingWithPredictions monta o feed de próximas partidas: partida,
// times e a previsão mais recente (se houver), ordenado por data
func (p *Postgres) ListUpcomingWithPredictions(ctx context.Context, limit int) ([]domain.UpcomingMatch, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT m.id, m.home_team_id, m.away_team_id, m.match_date, m.home_score, m.away_score,
		       m.status, m.gameweek, m.season, m.created_at,
		       ht.id, ht.name, ht.code, ht.logo_url, ht.created_at,
		       aw.id, aw.name, aw.code, aw.logo_url, aw.created_at,
		       pr.id, pr.match_id, pr.predicted_outcome, pr.confidence_percentage,
		       pr.predicted_home_score, pr.predicted_away_score, pr.reasoning,
		       pr.model_version, pr.created_at
		FROM matches m
		JOIN teams ht ON ht.id = m.home_team_id
		JOIN teams aw ON aw.id = m.away_team_id
		LEFT JOIN LATERAL (
			SELECT * FROM predictions
			WHERE match_id = m.id
			ORDER BY created_at DESC
			LIMIT 1
		) pr ON TRUE
		WHERE m.status = 'scheduled'
		ORDER BY m.match_date
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UpcomingMatch
	for rows.Next() {
		var um domain.UpcomingMatch
		var prID sql.NullInt64
		var prMatchID sql.NullInt64
		var prOutcome sql.NullString
		var prConfidence sql.NullInt64
		var prHome, prAway sql.NullInt64
		var prReasoning sql.NullString
		var prModel sql.NullString
		var prCreated sql.NullTime

		if err := rows.Scan(
			&um.Match.ID, &um.Match.HomeTeamID, &um.Match.AwayTeamID, &um.Match.MatchDate,
			&um.Match.HomeScore, &um.Match.AwayScore, &um.Match.Status, &um.Match.Gameweek,
			&um.Match.Season, &um.Match.CreatedAt,
			&um.HomeTeam.ID, &um.HomeTeam.Name, &um.HomeTeam.Code, &um.HomeTeam.LogoURL, &um.HomeTeam.CreatedAt,
			&um.AwayTeam.ID, &um.AwayTeam.Name, &um.AwayTeam.Code, &um.AwayTeam.LogoURL, &um.AwayTeam.CreatedAt,
			&prID, &prMatchID, &prOutcome, &prConfidence,
			&prHome, &prAway, &prReasoning, &prModel, &prCreated,
		); err != nil {
			return nil, err
		}

		if prID.Valid {
			pr := domain.Prediction{
				ID:                   prID.Int64,
				MatchID:              prMatchID.Int64,
				PredictedOutcome:     domain.Outcome(prOutcome.String),
				ConfidencePercentage: int(prConfidence.Int64),
				ModelVersion:         prModel.String,
				CreatedAt:            prCreated.Time,
			}
			if prHome.Valid {
				v := int(prHome.Int64)
				pr.PredictedHomeScore = &v
			}
			if prAway.Valid {
				v := int(prAway.Int64)
				pr.PredictedAwayScore = &v
			}
			if prReasoning.Valid {
				v := prReasoning.String
				pr.Reasoning = &v
			}
			um.Prediction = &pr
		}
		out = append(out, um)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}
