package consumer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/radieske/football-predictions-poc/internal/domain"
)

type MockSettler struct {
	mock.Mock
}

func (m *MockSettler) SettleMatch(ctx context.Context, matchID int64) ([]domain.Bet, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bet), args.Error(1)
}

type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) ListUnsettledMatches(ctx context.Context, limit int) ([]int64, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func TestSettleWithRetry_SucceedsAfterTransientError(t *testing.T) {
	settler := new(MockSettler)
	settler.On("SettleMatch", mock.Anything, int64(1)).Return(nil, assert.AnError).Once()
	settler.On("SettleMatch", mock.Anything, int64(1)).Return([]domain.Bet{{ID: 1}}, nil).Once()

	settled := 0
	w := &Worker{
		Log:       zap.NewNop(),
		Settler:   settler,
		OnSettled: func(n int) { settled += n },
	}

	err := w.settleWithRetry(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, settled)
	settler.AssertNumberOfCalls(t, "SettleMatch", 2)
}

func TestSettleWithRetry_NoRetryOnPreconditionErrors(t *testing.T) {
	settler := new(MockSettler)
	settler.On("SettleMatch", mock.Anything, int64(2)).Return(nil, domain.ErrMatchNotFound)

	w := &Worker{Log: zap.NewNop(), Settler: settler}

	err := w.settleWithRetry(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
	settler.AssertNumberOfCalls(t, "SettleMatch", 1)
}

func TestSettleWithRetry_GivesUpAfterRetries(t *testing.T) {
	settler := new(MockSettler)
	settler.On("SettleMatch", mock.Anything, int64(3)).Return(nil, assert.AnError)

	w := &Worker{Log: zap.NewNop(), Settler: settler}

	err := w.settleWithRetry(context.Background(), 3)
	assert.ErrorIs(t, err, assert.AnError)
	settler.AssertNumberOfCalls(t, "SettleMatch", 3)
}

func TestRunSweeper_SettlesUnsettledMatches(t *testing.T) {
	settler := new(MockSettler)
	sweeper := new(MockSweeper)

	done := make(chan struct{})
	var once sync.Once
	sweeper.On("ListUnsettledMatches", mock.Anything, 50).Return([]int64{10, 11}, nil)
	settler.On("SettleMatch", mock.Anything, int64(10)).Return([]domain.Bet{}, nil)
	settler.On("SettleMatch", mock.Anything, int64(11)).Return([]domain.Bet{}, nil).Run(func(mock.Arguments) {
		once.Do(func() { close(done) })
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	swept := 0
	w := &Worker{
		Log:           zap.NewNop(),
		Settler:       settler,
		Sweeper:       sweeper,
		SweepInterval: 10 * time.Millisecond,
		OnSwept:       func() { swept++ },
	}
	go w.RunSweeper(ctx)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not settle matches in time")
	}
	cancel()

	sweeper.AssertCalled(t, "ListUnsettledMatches", mock.Anything, 50)
	settler.AssertCalled(t, "SettleMatch", mock.Anything, int64(10))
}
