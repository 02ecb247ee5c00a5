package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/football-predictions-poc/internal/bet-service/dto"
	"github.com/radieske/football-predictions-poc/internal/bet-service/repo"
	"github.com/radieske/football-predictions-poc/internal/domain"
	"github.com/radieske/football-predictions-poc/internal/shared/money"
)

// Saldo virtual inicial default (1000.00)
const defaultInitialBalanceCents = 100_000

// Repo define as operações de persistência usadas pelos handlers
type Repo interface {
	CreateUser(ctx context.Context, username, email string, initialBalanceCents int64) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserStats(ctx context.Context, userID int64) (*domain.UserStats, error)
	CreateBet(ctx context.Context, in repo.CreateBetParams) (*domain.Bet, error)
	GetBet(ctx context.Context, id int64) (*domain.Bet, error)
	ListUserBets(ctx context.Context, userID int64, status *domain.BetStatus, limit, offset int) ([]domain.Bet, error)
}

// Settler é o motor de liquidação, exposto aqui pra re-liquidação
// administrativa
type Settler interface {
	SettleMatch(ctx context.Context, matchID int64) ([]domain.Bet, error)
}

type Server struct {
	log     *zap.Logger
	repo    Repo
	settler Settler
	ws      http.HandlerFunc // hub WebSocket, opcional
}

func NewServer(log *zap.Logger, r Repo, s Settler, ws http.HandlerFunc) *Server {
	return &Server{log: log, repo: r, settler: s, ws: ws}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/users", s.createUser)
	r.Get("/v1/users/{id}", s.getUser)
	r.Get("/v1/users/{id}/stats", s.getUserStats)
	r.Get("/v1/users/{id}/bets", s.listUserBets)
	r.Post("/v1/bets", s.createBet)
	r.Get("/v1/bets/{id}", s.getBet)
	r.Post("/v1/matches/{id}/settle", s.settleMatch)
	if s.ws != nil {
		r.Get("/ws", s.ws)
	}
	return r
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Username == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "username and email required")
		return
	}

	initial := int64(defaultInitialBalanceCents)
	if req.TotalBalance != nil {
		cents, err := money.ParseAmount(*req.TotalBalance)
		if err != nil || cents < 0 {
			writeError(w, http.StatusBadRequest, "total_balance must be a non-negative two-decimal amount")
			return
		}
		initial = cents
	}

	u, err := s.repo.CreateUser(r.Context(), req.Username, req.Email, initial)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.FromUser(*u))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	u, err := s.repo.GetUser(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromUser(*u))
}

func (s *Server) getUserStats(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	stats, err := s.repo.GetUserStats(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromUserStats(*stats))
}

func (s *Server) listUserBets(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var status *domain.BetStatus
	if v := r.URL.Query().Get("status"); v != "" {
		st := domain.BetStatus(v)
		if !st.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		status = &st
	}
	limit, offset := 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	bets, err := s.repo.ListUserBets(r.Context(), id, status, limit, offset)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := make([]dto.BetResponse, 0, len(bets))
	for _, b := range bets {
		out = append(out, dto.FromBet(b))
	}
	writeJSON(w, http.StatusOK, out)
}

// createBet valida a carga, congela potential_return = amount × odds e
// delega pro repositório o débito + inserção atômicos
func (s *Server) createBet(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.UserID == 0 || req.PredictionID == 0 {
		writeError(w, http.StatusBadRequest, "user_id and prediction_id required")
		return
	}

	betType := domain.BetType(req.BetType)
	if !betType.Valid() {
		writeError(w, http.StatusBadRequest, "invalid bet_type")
		return
	}
	// bet_value validado contra a modalidade; o formato string é preservado
	if _, err := domain.ParseBetValue(betType, req.BetValue); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amountCents, err := money.ParseAmount(req.Amount)
	if err != nil || amountCents <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be a positive two-decimal value")
		return
	}
	if !req.Odds.IsPositive() {
		writeError(w, http.StatusBadRequest, "odds must be positive")
		return
	}

	b, err := s.repo.CreateBet(r.Context(), repo.CreateBetParams{
		UserID:               req.UserID,
		PredictionID:         req.PredictionID,
		AmountCents:          amountCents,
		BetType:              betType,
		BetValue:             req.BetValue,
		Odds:                 req.Odds,
		PotentialReturnCents: money.PotentialReturn(amountCents, req.Odds),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.FromBet(*b))
}

func (s *Server) getBet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bet id")
		return
	}
	b, err := s.repo.GetBet(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromBet(*b))
}

// settleMatch expõe a re-liquidação administrativa; repetir a chamada numa
// partida já liquidada devolve lista vazia
func (s *Server) settleMatch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	settled, err := s.settler.SettleMatch(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := dto.SettleResponse{MatchID: id, SettledBets: make([]dto.BetResponse, 0, len(settled))}
	for _, b := range settled {
		out.SettledBets = append(out.SettledBets, dto.FromBet(b))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeDomainError mapeia erros sentinela pro status HTTP adequado
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPredictionNotFound),
		errors.Is(err, domain.ErrBetNotFound),
		errors.Is(err, domain.ErrMatchNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrMatchNotSettleable),
		errors.Is(err, domain.ErrUserTaken):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
