package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-scores/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
	"github.com/rocketscienceinc/tictactoe-scores/internal/repository"
	"github.com/rocketscienceinc/tictactoe-scores/internal/repository/storage"
)

var errStoreDown = errors.New("store down")

type brokenStore struct {
	storage.Store
	failGet bool
	failSet bool
}

func (that *brokenStore) Get(ctx context.Context, key string) ([]byte, error) {
	if that.failGet {
		return nil, errStoreDown
	}
	return that.Store.Get(ctx, key)
}

func (that *brokenStore) Set(ctx context.Context, key string, value []byte) error {
	if that.failSet {
		return errStoreDown
	}
	return that.Store.Set(ctx, key, value)
}

func newLedger(store storage.Store) ScoreLedger {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewScoreLedger(logger, repository.NewScoreRepository(store))
}

func TestScoreLedger_LoadOnStartup(t *testing.T) {
	ctx := context.Background()

	t.Run("Nothing stored", func(t *testing.T) {
		board := newLedger(storage.NewMemoryStorage()).LoadOnStartup(ctx)

		assert.Equal(t, entity.ScoreBoard{}, board)
	})

	t.Run("Stored records", func(t *testing.T) {
		// Given: both records were persisted earlier
		store := storage.NewMemoryStorage()
		require.NoError(t, store.Set(ctx, repository.SessionScoresKey, []byte(`{"X":1,"O":2,"draw":3}`)))
		require.NoError(t, store.Set(ctx, repository.HighScoresKey, []byte(`{"X":4,"O":5,"draw":6}`)))

		// When: the ledger loads
		board := newLedger(store).LoadOnStartup(ctx)

		// Then: both are returned as stored
		assert.Equal(t, entity.Scores{X: 1, O: 2, Draw: 3}, board.Session)
		assert.Equal(t, entity.Scores{X: 4, O: 5, Draw: 6}, board.High)
	})

	t.Run("Corrupt record counts as zero", func(t *testing.T) {
		store := storage.NewMemoryStorage()
		require.NoError(t, store.Set(ctx, repository.SessionScoresKey, []byte("garbage")))
		require.NoError(t, store.Set(ctx, repository.HighScoresKey, []byte(`{"X":2}`)))

		board := newLedger(store).LoadOnStartup(ctx)

		assert.Equal(t, entity.Scores{}, board.Session)
		assert.Equal(t, entity.Scores{X: 2}, board.High)
	})

	t.Run("Unavailable storage counts as zero", func(t *testing.T) {
		store := &brokenStore{Store: storage.NewMemoryStorage(), failGet: true}

		board := newLedger(store).LoadOnStartup(ctx)

		assert.Equal(t, entity.ScoreBoard{}, board)
	})
}

func TestScoreLedger_RecordOutcome(t *testing.T) {
	ctx := context.Background()

	t.Run("Increments session and lifts high", func(t *testing.T) {
		// Given: a fresh ledger
		store := storage.NewMemoryStorage()
		ledger := newLedger(store)

		// When: X wins once
		board, err := ledger.RecordOutcome(ctx, entity.OutcomeX)

		// Then: both records show one X win and are persisted
		require.NoError(t, err)
		assert.Equal(t, entity.Scores{X: 1}, board.Session)
		assert.Equal(t, entity.Scores{X: 1}, board.High)
		assert.Equal(t, board, newLedger(store).LoadOnStartup(ctx))
	})

	t.Run("High scores never go down", func(t *testing.T) {
		// Given: a high score above the session count
		store := storage.NewMemoryStorage()
		require.NoError(t, store.Set(ctx, repository.HighScoresKey, []byte(`{"X":5,"O":0,"draw":1}`)))
		ledger := newLedger(store)

		// When: several outcomes are recorded
		var board entity.ScoreBoard
		for _, outcome := range []entity.Outcome{entity.OutcomeX, entity.OutcomeO, entity.OutcomeDraw, entity.OutcomeDraw, entity.OutcomeDraw} {
			previous := board.High

			var err error
			board, err = ledger.RecordOutcome(ctx, outcome)
			require.NoError(t, err)

			// Then: every high counter is at least its previous value and at least the session value
			assert.GreaterOrEqual(t, board.High.X, previous.X)
			assert.GreaterOrEqual(t, board.High.O, previous.O)
			assert.GreaterOrEqual(t, board.High.Draw, previous.Draw)
			assert.GreaterOrEqual(t, board.High.X, board.Session.X)
			assert.GreaterOrEqual(t, board.High.O, board.Session.O)
			assert.GreaterOrEqual(t, board.High.Draw, board.Session.Draw)
		}

		assert.Equal(t, entity.Scores{X: 1, O: 1, Draw: 3}, board.Session)
		assert.Equal(t, entity.Scores{X: 5, O: 1, Draw: 3}, board.High)
	})

	t.Run("Draw increments only the draw counter", func(t *testing.T) {
		board, err := newLedger(storage.NewMemoryStorage()).RecordOutcome(ctx, entity.OutcomeDraw)

		require.NoError(t, err)
		assert.Equal(t, entity.Scores{Draw: 1}, board.Session)
	})

	t.Run("Error on unknown outcome", func(t *testing.T) {
		store := storage.NewMemoryStorage()

		_, err := newLedger(store).RecordOutcome(ctx, entity.Outcome("Z"))

		require.ErrorIs(t, err, apperror.ErrUnknownOutcome)
		_, err = store.Get(ctx, repository.SessionScoresKey)
		require.ErrorIs(t, err, storage.ErrKeyNotFound)
	})

	t.Run("Corrupt high record is left untouched", func(t *testing.T) {
		// Given: an unreadable high score record
		store := storage.NewMemoryStorage()
		require.NoError(t, store.Set(ctx, repository.HighScoresKey, []byte("garbage")))

		// When: an outcome is recorded
		board, err := newLedger(store).RecordOutcome(ctx, entity.OutcomeO)

		// Then: the session is saved, the high record is not overwritten
		require.NoError(t, err)
		assert.Equal(t, entity.Scores{O: 1}, board.Session)

		raw, err := store.Get(ctx, repository.HighScoresKey)
		require.NoError(t, err)
		assert.Equal(t, []byte("garbage"), raw)
	})

	t.Run("Save failure still returns the updated board", func(t *testing.T) {
		store := &brokenStore{Store: storage.NewMemoryStorage(), failSet: true}

		board, err := newLedger(store).RecordOutcome(ctx, entity.OutcomeX)

		require.ErrorIs(t, err, errStoreDown)
		assert.Equal(t, 1, board.Session.X)
	})
}

func TestScoreLedger_ResetSession(t *testing.T) {
	ctx := context.Background()

	// Given: a ledger with a few recorded outcomes
	store := storage.NewMemoryStorage()
	ledger := newLedger(store)
	for _, outcome := range []entity.Outcome{entity.OutcomeX, entity.OutcomeX, entity.OutcomeO} {
		_, err := ledger.RecordOutcome(ctx, outcome)
		require.NoError(t, err)
	}

	// When: the session is reset
	board, err := ledger.ResetSession(ctx)

	// Then: session counters are zero and high scores are kept
	require.NoError(t, err)
	assert.Equal(t, entity.Scores{}, board.Session)
	assert.Equal(t, entity.Scores{X: 2, O: 1}, board.High)
	assert.Equal(t, board, ledger.LoadOnStartup(ctx))

	// Then: counting starts again from zero without lowering the high score
	board, err = ledger.RecordOutcome(ctx, entity.OutcomeX)
	require.NoError(t, err)
	assert.Equal(t, entity.Scores{X: 1}, board.Session)
	assert.Equal(t, entity.Scores{X: 2, O: 1}, board.High)
}
