package events

// Evento publicado no tópico "match_completed" após o registro do placar final.
// Dispara a liquidação assíncrona (rede de segurança; a liquidação síncrona
// já aconteceu no match-service).
type MatchCompleted struct {
	MatchID   int64  `json:"match_id"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Gameweek  int    `json:"gameweek"`
	Season    string `json:"season"`
	TsUnixMs  int64  `json:"ts_unix_ms"`
}
